package env

import (
	"fmt"
	"math"
	"math/rand"

	"gymnarium/internal/vis"
)

const (
	driveWorldWidth  = 96.0
	driveWorldHeight = 54.0
	driveCenterX     = driveWorldWidth / 2
	driveCenterY     = driveWorldHeight / 2

	// The road is the ring between two concentric ellipses.
	driveOuterA = 44.0
	driveOuterB = 24.0
	driveInnerA = 26.0
	driveInnerB = 9.0

	driveMaxSpeed    = 2.2
	driveAccel       = 0.25
	driveBrake       = 0.4
	driveFriction    = 0.06
	driveTurnRate    = 0.12
	driveSensorRange = 30.0
	driveSensorStep  = 0.5
	driveGateCount   = 16

	driveStepPenalty = 0.02
	driveGateReward  = 10.0
	driveLapReward   = 100.0
	driveCrashReward = -10.0
)

// driveSensorOffsets are the ray directions relative to the car heading.
var driveSensorOffsets = []float64{
	-math.Pi / 2, -math.Pi / 3, -math.Pi / 6, 0, math.Pi / 6, math.Pi / 3, math.Pi / 2,
}

var driveActionLabels = []string{
	"left+brake", "left+coast", "left+accelerate",
	"straight+brake", "straight+coast", "straight+accelerate",
	"right+brake", "right+coast", "right+accelerate",
}

// DriveNeutral is the straight+coast action.
const DriveNeutral Action = 4

// Drive is a top down driving task modelled on the AI-learns-to-drive
// game: a car on an elliptic ring road has to pass checkpoint gates
// counter-clockwise without touching a wall. Distance sensor rays tell the
// agent how far the walls are.
type Drive struct {
	sensorLinesVisible bool
	trackVisible       bool

	x, y    float64
	heading float64
	speed   float64

	nextGate int
	crashed  bool
	rng      *rand.Rand
	closed   bool
}

// NewDrive returns a driving task. The two flags only affect the rendered
// scene, not the physics.
func NewDrive(sensorLinesVisible, trackVisible bool) *Drive {
	d := &Drive{
		sensorLinesVisible: sensorLinesVisible,
		trackVisible:       trackVisible,
		rng:                rand.New(rand.NewSource(0)),
	}
	d.resetPose()
	return d
}

func (d *Drive) Name() string {
	return "code_bullet_ai_learns_to_drive"
}

func (d *Drive) ActionSpace() ActionSpace {
	return ActionSpace{
		Size:   len(driveActionLabels),
		Labels: append([]string(nil), driveActionLabels...),
	}
}

func (d *Drive) Reseed(seed []byte) error {
	d.rng = seededRNG(seed)
	return nil
}

func (d *Drive) resetPose() {
	d.x = driveCenterX + (driveOuterA+driveInnerA)/2
	d.y = driveCenterY
	d.heading = math.Pi / 2
	d.speed = 0
	d.nextGate = 1
	d.crashed = false
}

// Reset places the car at the start line with a slight heading jitter.
func (d *Drive) Reset() (Observation, error) {
	d.resetPose()
	d.heading += (d.rng.Float64() - 0.5) * 0.1
	return d.Observation(), nil
}

func (d *Drive) Observation() Observation {
	obs := make(Observation, 0, 1+len(driveSensorOffsets))
	obs = append(obs, d.speed/driveMaxSpeed)
	for _, offset := range driveSensorOffsets {
		obs = append(obs, d.rayDistance(d.heading+offset)/driveSensorRange)
	}
	return obs
}

func (d *Drive) Step(action Action) (StepResult, error) {
	if d.closed {
		return StepResult{}, fmt.Errorf("environment is closed")
	}
	if action < 0 || int(action) >= len(driveActionLabels) {
		return StepResult{}, fmt.Errorf("invalid action %d for action space of size %d", action, len(driveActionLabels))
	}

	steer := float64(int(action)/3 - 1)
	throttle := int(action)%3 - 1

	switch throttle {
	case 1:
		d.speed += driveAccel
	case -1:
		d.speed -= driveBrake
	default:
		d.speed -= driveFriction
	}
	d.speed = clamp(d.speed, 0, driveMaxSpeed)

	// Steering authority grows with speed; a standing car cannot turn.
	d.heading = normalizeAngle(d.heading - steer*driveTurnRate*(d.speed/driveMaxSpeed))
	d.x += math.Cos(d.heading) * d.speed
	d.y += math.Sin(d.heading) * d.speed

	reward := -driveStepPenalty
	done := false
	if !driveOnRoad(d.x, d.y) {
		d.crashed = true
		reward = driveCrashReward
		done = true
	} else if d.gatePassed() {
		reward += driveGateReward
		d.nextGate++
		if d.nextGate > driveGateCount {
			reward += driveLapReward
			done = true
		}
	}

	return StepResult{
		Observation: d.Observation(),
		Reward:      reward,
		Done:        done,
		Info: map[string]any{
			"speed":        d.speed,
			"gates_passed": d.nextGate - 1,
			"crash":        d.crashed,
		},
	}, nil
}

func (d *Drive) Close() error {
	d.closed = true
	return nil
}

func (d *Drive) gatePassed() bool {
	gate := float64(d.nextGate%driveGateCount) * 2 * math.Pi / driveGateCount
	return angularDistance(d.trackAngle(), gate) < math.Pi/driveGateCount
}

func (d *Drive) trackAngle() float64 {
	return math.Atan2(d.y-driveCenterY, d.x-driveCenterX)
}

func (d *Drive) rayDistance(angle float64) float64 {
	sin, cos := math.Sincos(angle)
	for dist := driveSensorStep; dist <= driveSensorRange; dist += driveSensorStep {
		if !driveOnRoad(d.x+cos*dist, d.y+sin*dist) {
			return dist
		}
	}
	return driveSensorRange
}

func driveOnRoad(x, y float64) bool {
	dx := x - driveCenterX
	dy := y - driveCenterY
	outer := (dx/driveOuterA)*(dx/driveOuterA) + (dy/driveOuterB)*(dy/driveOuterB)
	inner := (dx/driveInnerA)*(dx/driveInnerA) + (dy/driveInnerB)*(dy/driveInnerB)
	return outer <= 1 && inner >= 1
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func angularDistance(a, b float64) float64 {
	return math.Abs(normalizeAngle(a - b))
}

// InputMapper drives the car with w/a/s/d keys.
func (d *Drive) InputMapper() InputMapper {
	return func(inputs []vis.Input) Action {
		steer, throttle := 1, 1
		for _, in := range inputs {
			switch in.Key {
			case 'a':
				steer = 0
			case 'd':
				steer = 2
			case 'w':
				throttle = 2
			case 's':
				throttle = 0
			}
		}
		return Action(steer*3 + throttle)
	}
}

func (d *Drive) SuggestedStepsPerSecond() float64 {
	return 60
}

func (d *Drive) Scene() vis.Scene {
	var shapes []vis.Shape
	if d.trackVisible {
		shapes = append(shapes,
			vis.Polyline(ellipsePoints(driveOuterA, driveOuterB), '.'),
			vis.Polyline(ellipsePoints(driveInnerA, driveInnerB), '.'),
		)
	}
	if d.sensorLinesVisible {
		for _, offset := range driveSensorOffsets {
			angle := d.heading + offset
			dist := d.rayDistance(angle)
			sin, cos := math.Sincos(angle)
			shapes = append(shapes, vis.Polyline([]vis.Point{
				{X: d.x, Y: d.y},
				{X: d.x + cos*dist, Y: d.y + sin*dist},
			}, ':'))
		}
	}
	shapes = append(shapes,
		vis.Marker(vis.Point{X: d.x, Y: d.y}, '@'),
		vis.Label(vis.Point{X: 1, Y: driveWorldHeight - 1},
			fmt.Sprintf("speed %.2f  gates %d/%d", d.speed, d.nextGate-1, driveGateCount)),
	)
	if d.crashed {
		shapes = append(shapes, vis.Label(vis.Point{X: driveCenterX - 4, Y: driveCenterY}, "CRASHED"))
	}
	return vis.Scene{
		Bounds: vis.Rect{MinX: 0, MinY: 0, MaxX: driveWorldWidth, MaxY: driveWorldHeight},
		Shapes: shapes,
	}
}

func ellipsePoints(a, b float64) []vis.Point {
	const samples = 64
	points := make([]vis.Point, 0, samples+1)
	for i := 0; i <= samples; i++ {
		theta := 2 * math.Pi * float64(i) / samples
		points = append(points, vis.Point{
			X: driveCenterX + a*math.Cos(theta),
			Y: driveCenterY + b*math.Sin(theta),
		})
	}
	return points
}

// DriveState is the serialized form of the environment.
type DriveState struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Heading  float64 `json:"heading"`
	Speed    float64 `json:"speed"`
	NextGate int     `json:"next_gate"`
}

// SnapshotState returns a copy of the current state, usable for encoding
// or as a decode target.
func (d *Drive) SnapshotState() any {
	return &DriveState{
		X:        d.x,
		Y:        d.y,
		Heading:  d.heading,
		Speed:    d.speed,
		NextGate: d.nextGate,
	}
}

func (d *Drive) RestoreState(state any) error {
	s, ok := state.(*DriveState)
	if !ok {
		return fmt.Errorf("unexpected state type %T", state)
	}
	if !driveOnRoad(s.X, s.Y) {
		return fmt.Errorf("position (%v, %v) is off the road", s.X, s.Y)
	}
	if s.NextGate < 1 || s.NextGate > driveGateCount {
		return fmt.Errorf("next gate %d out of range", s.NextGate)
	}
	d.x = s.X
	d.y = s.Y
	d.heading = normalizeAngle(s.Heading)
	d.speed = clamp(s.Speed, 0, driveMaxSpeed)
	d.nextGate = s.NextGate
	d.crashed = false
	return nil
}
