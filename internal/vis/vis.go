// Package vis defines the visualiser contract, the scene primitives
// environments describe themselves with, and a terminal renderer.
package vis

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned region of the scene plane.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// ShapeKind selects how a shape's points are interpreted.
type ShapeKind int

const (
	ShapePolyline ShapeKind = iota
	ShapeMarker
	ShapeLabel
)

// Shape is one drawable element of a scene.
type Shape struct {
	Kind   ShapeKind
	Points []Point
	Glyph  rune
	Text   string
}

// Polyline connects the given points with strokes of the given glyph.
func Polyline(points []Point, glyph rune) Shape {
	return Shape{Kind: ShapePolyline, Points: points, Glyph: glyph}
}

// Marker places a single glyph at p.
func Marker(p Point, glyph rune) Shape {
	return Shape{Kind: ShapeMarker, Points: []Point{p}, Glyph: glyph}
}

// Label writes text starting at p.
func Label(p Point, text string) Shape {
	return Shape{Kind: ShapeLabel, Points: []Point{p}, Text: text}
}

// Scene is a resolution independent description of one frame. Shapes are
// drawn in order; coordinates live inside Bounds with Y growing upwards.
type Scene struct {
	Bounds Rect
	Shapes []Shape
}

// Drawable is implemented by environments that can describe their current
// state as a scene.
type Drawable interface {
	Scene() Scene
}

// Input is one key event sourced from a visualiser.
type Input struct {
	Key rune
}

// InputProvider is implemented by visualisers that can forward key input.
type InputProvider interface {
	// PendingInputs drains the events collected since the last call.
	PendingInputs() []Input
}

// Visualiser renders scenes until it is closed.
type Visualiser interface {
	Render(d Drawable) error
	IsOpen() bool
	Close() error
}
