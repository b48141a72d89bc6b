package env

import (
	"fmt"
	"math"
	"math/rand"

	"gymnarium/internal/vis"
)

const (
	mountainCarMinPosition  = -1.2
	mountainCarMaxPosition  = 0.6
	mountainCarMaxSpeed     = 0.07
	mountainCarGoalPosition = 0.5
	mountainCarForce        = 0.001
	mountainCarGravity      = 0.0025
)

// Mountain car actions.
const (
	MountainCarPushLeft Action = iota
	MountainCarCoast
	MountainCarPushRight
)

// MountainCar is the classic underpowered car task: the car starts in the
// valley between two hills and has to build up momentum by swinging back
// and forth until it can reach the flag on the right hill.
type MountainCar struct {
	goalVelocity float64
	position     float64
	velocity     float64
	rng          *rand.Rand
	closed       bool
}

// NewMountainCar returns a mountain car task. goalVelocity is the minimum
// velocity the car has to carry past the flag; zero disables the check.
func NewMountainCar(goalVelocity float64) (*MountainCar, error) {
	if goalVelocity < 0 {
		return nil, fmt.Errorf("goal velocity must not be negative, got %v", goalVelocity)
	}
	return &MountainCar{
		goalVelocity: goalVelocity,
		rng:          rand.New(rand.NewSource(0)),
	}, nil
}

func (m *MountainCar) Name() string {
	return "gym_mountaincar"
}

func (m *MountainCar) ActionSpace() ActionSpace {
	return ActionSpace{
		Size:   3,
		Labels: []string{"push_left", "coast", "push_right"},
	}
}

func (m *MountainCar) Reseed(seed []byte) error {
	m.rng = seededRNG(seed)
	return nil
}

// Reset places the car at a uniformly random position in the valley with
// zero velocity.
func (m *MountainCar) Reset() (Observation, error) {
	m.position = -0.6 + m.rng.Float64()*0.2
	m.velocity = 0
	return m.Observation(), nil
}

func (m *MountainCar) Observation() Observation {
	return Observation{m.position, m.velocity}
}

func (m *MountainCar) Step(action Action) (StepResult, error) {
	if m.closed {
		return StepResult{}, fmt.Errorf("environment is closed")
	}
	if action < MountainCarPushLeft || action > MountainCarPushRight {
		return StepResult{}, fmt.Errorf("invalid action %d for action space of size 3", action)
	}

	m.velocity += float64(action-MountainCarCoast)*mountainCarForce + math.Cos(3*m.position)*-mountainCarGravity
	m.velocity = clamp(m.velocity, -mountainCarMaxSpeed, mountainCarMaxSpeed)
	m.position += m.velocity
	m.position = clamp(m.position, mountainCarMinPosition, mountainCarMaxPosition)
	if m.position <= mountainCarMinPosition && m.velocity < 0 {
		m.velocity = 0
	}

	done := m.position >= mountainCarGoalPosition && m.velocity >= m.goalVelocity
	return StepResult{
		Observation: m.Observation(),
		Reward:      -1.0,
		Done:        done,
		Info: map[string]any{
			"position": m.position,
			"velocity": m.velocity,
		},
	}, nil
}

func (m *MountainCar) Close() error {
	m.closed = true
	return nil
}

// InputMapper steers the car with the a and d keys.
func (m *MountainCar) InputMapper() InputMapper {
	return func(inputs []vis.Input) Action {
		action := MountainCarCoast
		for _, in := range inputs {
			switch in.Key {
			case 'a':
				action = MountainCarPushLeft
			case 'd':
				action = MountainCarPushRight
			}
		}
		return action
	}
}

func (m *MountainCar) SuggestedStepsPerSecond() float64 {
	return 30
}

// Scene draws the hill profile, the car and the goal flag. The hill height
// is sin(3x), matching the slope term of the physics.
func (m *MountainCar) Scene() vis.Scene {
	const samples = 64
	hill := make([]vis.Point, 0, samples+1)
	for i := 0; i <= samples; i++ {
		x := mountainCarMinPosition + (mountainCarMaxPosition-mountainCarMinPosition)*float64(i)/samples
		hill = append(hill, vis.Point{X: x, Y: math.Sin(3 * x)})
	}
	return vis.Scene{
		Bounds: vis.Rect{MinX: mountainCarMinPosition, MinY: -1.1, MaxX: mountainCarMaxPosition, MaxY: 1.35},
		Shapes: []vis.Shape{
			vis.Polyline(hill, '.'),
			vis.Marker(vis.Point{X: mountainCarGoalPosition, Y: math.Sin(3*mountainCarGoalPosition) + 0.18}, 'F'),
			vis.Marker(vis.Point{X: m.position, Y: math.Sin(3*m.position) + 0.09}, '@'),
			vis.Label(vis.Point{X: mountainCarMinPosition, Y: 1.3}, fmt.Sprintf("pos %+.3f  vel %+.3f", m.position, m.velocity)),
		},
	}
}

// MountainCarState is the serialized form of the environment.
type MountainCarState struct {
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	GoalVelocity float64 `json:"goal_velocity"`
}

// SnapshotState returns a copy of the current state, usable for encoding
// or as a decode target.
func (m *MountainCar) SnapshotState() any {
	return &MountainCarState{
		Position:     m.position,
		Velocity:     m.velocity,
		GoalVelocity: m.goalVelocity,
	}
}

func (m *MountainCar) RestoreState(state any) error {
	s, ok := state.(*MountainCarState)
	if !ok {
		return fmt.Errorf("unexpected state type %T", state)
	}
	if s.Position < mountainCarMinPosition || s.Position > mountainCarMaxPosition {
		return fmt.Errorf("position %v is outside the track", s.Position)
	}
	if s.GoalVelocity < 0 {
		return fmt.Errorf("goal velocity must not be negative, got %v", s.GoalVelocity)
	}
	m.position = s.Position
	m.velocity = clamp(s.Velocity, -mountainCarMaxSpeed, mountainCarMaxSpeed)
	m.goalVelocity = s.GoalVelocity
	return nil
}
