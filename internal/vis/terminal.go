package vis

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
)

// quitKey closes the terminal visualiser when read from the input stream.
const quitKey = 'q'

// Terminal renders scenes as ANSI frames on a character cell canvas. Key
// presses are read line buffered from an input stream; every rune of a line
// becomes an input event and the q key closes the visualiser. Reaching the
// end of the input stream also closes it.
type Terminal struct {
	title string
	cols  int
	rows  int
	out   io.Writer

	mu     sync.Mutex
	open   bool
	inputs []Input
}

// NewTerminal returns a terminal visualiser with a canvas of cols x rows
// cells writing to out. in may be nil when no key input is wanted.
func NewTerminal(title string, cols, rows uint64, out io.Writer, in io.Reader) (*Terminal, error) {
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("window dimension must not be zero, got (%d, %d)", cols, rows)
	}
	if out == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	t := &Terminal{
		title: title,
		cols:  int(cols),
		rows:  int(rows),
		out:   out,
		open:  true,
	}
	if in != nil {
		go t.watchInput(in)
	}
	return t, nil
}

func (t *Terminal) watchInput(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, r := range strings.ToLower(scanner.Text()) {
			if r == quitKey {
				_ = t.Close()
				return
			}
			t.mu.Lock()
			t.inputs = append(t.inputs, Input{Key: r})
			t.mu.Unlock()
		}
	}
	_ = t.Close()
}

func (t *Terminal) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// PendingInputs drains the key events collected since the last call.
func (t *Terminal) PendingInputs() []Input {
	t.mu.Lock()
	defer t.mu.Unlock()
	drained := t.inputs
	t.inputs = nil
	return drained
}

// Close marks the visualiser as closed. Frames rendered afterwards are
// dropped.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = false
	return nil
}

// Render rasterises the drawable's current scene and writes one frame.
func (t *Terminal) Render(d Drawable) error {
	if !t.IsOpen() {
		return nil
	}
	canvas := t.rasterise(d.Scene())

	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")
	b.WriteString(t.title)
	b.WriteByte('\n')
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	return nil
}

func (t *Terminal) rasterise(scene Scene) [][]rune {
	canvas := make([][]rune, t.rows)
	for i := range canvas {
		canvas[i] = make([]rune, t.cols)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	if scene.Bounds.Width() <= 0 || scene.Bounds.Height() <= 0 {
		return canvas
	}

	for _, shape := range scene.Shapes {
		switch shape.Kind {
		case ShapePolyline:
			if len(shape.Points) == 1 {
				col, row := t.cell(scene.Bounds, shape.Points[0])
				t.set(canvas, col, row, shape.Glyph)
			}
			for i := 1; i < len(shape.Points); i++ {
				t.stroke(canvas, scene.Bounds, shape.Points[i-1], shape.Points[i], shape.Glyph)
			}
		case ShapeMarker:
			if len(shape.Points) == 1 {
				col, row := t.cell(scene.Bounds, shape.Points[0])
				t.set(canvas, col, row, shape.Glyph)
			}
		case ShapeLabel:
			if len(shape.Points) != 1 {
				continue
			}
			col, row := t.cell(scene.Bounds, shape.Points[0])
			if row < 0 || row >= t.rows {
				continue
			}
			for i, r := range shape.Text {
				if col+i < 0 || col+i >= t.cols {
					continue
				}
				canvas[row][col+i] = r
			}
		}
	}
	return canvas
}

// cell maps a scene point to canvas coordinates. The result may lie outside
// the canvas; set clips.
func (t *Terminal) cell(bounds Rect, p Point) (col, row int) {
	col = int(math.Round((p.X - bounds.MinX) / bounds.Width() * float64(t.cols-1)))
	row = t.rows - 1 - int(math.Round((p.Y-bounds.MinY)/bounds.Height()*float64(t.rows-1)))
	return col, row
}

func (t *Terminal) stroke(canvas [][]rune, bounds Rect, a, b Point, glyph rune) {
	acol, arow := t.cell(bounds, a)
	bcol, brow := t.cell(bounds, b)
	steps := absInt(bcol - acol)
	if dy := absInt(brow - arow); dy > steps {
		steps = dy
	}
	if steps == 0 {
		t.set(canvas, acol, arow, glyph)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		col := acol + int(math.Round(f*float64(bcol-acol)))
		row := arow + int(math.Round(f*float64(brow-arow)))
		t.set(canvas, col, row, glyph)
	}
}

func (t *Terminal) set(canvas [][]rune, col, row int, glyph rune) {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return
	}
	if glyph == 0 {
		glyph = '*'
	}
	canvas[row][col] = glyph
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
