package render

import (
	"fmt"

	"github.com/pushon/game/internal/geom"
)

// Color is a small fixed palette; each backend maps it to what it can show.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWhite
	ColorLightGray
	ColorGray
	ColorDarkGray
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorOrange
	ColorPurple
	ColorGold
)

// PlayerColors are indexed by player number modulo 4.
var PlayerColors = [4]Color{ColorBlue, ColorGreen, ColorPurple, ColorOrange}

// Canvas is the drawing surface entities draw onto. All coordinates are
// world units; backends scale to their own resolution.
type Canvas interface {
	Circle(center geom.Vec2, radius float32, c Color)
	Line(from, to geom.Vec2, c Color)
	Text(at geom.Vec2, s string, c Color)
	// Bar draws a horizontal gauge centered on at, filled to fraction (0..1).
	Bar(at geom.Vec2, width, fraction float32, c Color)
}

// Surface is a Canvas that is redrawn from scratch every frame.
type Surface interface {
	Canvas
	Clear()
	Show()
}

// Op is one recorded draw call.
type Op struct {
	Kind  string
	At    geom.Vec2
	To    geom.Vec2
	Size  float32
	Text  string
	Color Color
}

func (o Op) String() string {
	return fmt.Sprintf("%s@(%.0f,%.0f) %s", o.Kind, o.At.X, o.At.Y, o.Text)
}

// Recorder is a Canvas that keeps every call. Used by headless runs and tests.
type Recorder struct {
	Ops    []Op
	Frames int
}

func (r *Recorder) Circle(center geom.Vec2, radius float32, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", At: center, Size: radius, Color: c})
}

func (r *Recorder) Line(from, to geom.Vec2, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", At: from, To: to, Color: c})
}

func (r *Recorder) Text(at geom.Vec2, s string, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", At: at, Text: s, Color: c})
}

func (r *Recorder) Bar(at geom.Vec2, width, fraction float32, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "bar", At: at, Size: width * geom.Clampf(fraction, 0, 1), Color: c})
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) Clear() { r.Reset() }
func (r *Recorder) Show()  { r.Frames++ }

// Texts returns the strings of all recorded text ops, in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
