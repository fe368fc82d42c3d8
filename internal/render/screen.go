package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/pushon/game/internal/geom"
)

var tcellColors = map[Color]tcell.Color{
	ColorDefault:   tcell.ColorDefault,
	ColorWhite:     tcell.ColorWhite,
	ColorLightGray: tcell.ColorLightGray,
	ColorGray:      tcell.ColorGray,
	ColorDarkGray:  tcell.ColorDarkGray,
	ColorRed:       tcell.ColorRed,
	ColorGreen:     tcell.ColorGreen,
	ColorBlue:      tcell.ColorBlue,
	ColorYellow:    tcell.ColorYellow,
	ColorOrange:    tcell.ColorOrange,
	ColorPurple:    tcell.ColorPurple,
	ColorGold:      tcell.ColorGold,
}

func styleOf(c Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColors[c])
}

// Screen draws the world onto a terminal. World coordinates are scaled to
// the current terminal size, so the whole arena is always visible.
type Screen struct {
	scr   tcell.Screen
	world geom.Vec2
	cols  int
	rows  int

	once   sync.Once
	events chan tcell.Event
}

// NewScreen takes over the terminal. Call Fini to give it back.
func NewScreen(world geom.Vec2) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	scr.EnableMouse()
	scr.HideCursor()
	return NewScreenOn(scr, world), nil
}

// NewScreenOn wraps an already initialized tcell screen.
func NewScreenOn(scr tcell.Screen, world geom.Vec2) *Screen {
	s := &Screen{scr: scr, world: world}
	s.cols, s.rows = scr.Size()
	return s
}

// Events starts the input pump on first use. The channel is fed by its own
// goroutine; only the game loop reads it.
func (s *Screen) Events() <-chan tcell.Event {
	s.once.Do(func() {
		s.events = make(chan tcell.Event, 100)
		go func() {
			for {
				ev := s.scr.PollEvent()
				if ev == nil {
					close(s.events)
					return
				}
				s.events <- ev
			}
		}()
	})
	return s.events
}

// Resize picks up a new terminal size.
func (s *Screen) Resize() {
	s.scr.Sync()
	s.cols, s.rows = s.scr.Size()
}

func (s *Screen) Fini() { s.scr.Fini() }

func (s *Screen) Clear() { s.scr.Clear() }
func (s *Screen) Show()  { s.scr.Show() }

// Cell maps a world point to a terminal cell.
func (s *Screen) Cell(p geom.Vec2) (int, int) {
	if s.world.X <= 0 || s.world.Y <= 0 {
		return 0, 0
	}
	return int(p.X / s.world.X * float32(s.cols)), int(p.Y / s.world.Y * float32(s.rows))
}

// ToWorld maps a terminal cell back to the world point at its center.
func (s *Screen) ToWorld(x, y int) geom.Vec2 {
	if s.cols == 0 || s.rows == 0 {
		return geom.Vec2{}
	}
	return geom.V(
		(float32(x)+0.5)/float32(s.cols)*s.world.X,
		(float32(y)+0.5)/float32(s.rows)*s.world.Y,
	)
}

func (s *Screen) put(x, y int, r rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	s.scr.SetContent(x, y, r, nil, st)
}

func (s *Screen) Circle(center geom.Vec2, radius float32, c Color) {
	st := styleOf(c)
	cx, cy := s.Cell(center)
	rx := radius / s.world.X * float32(s.cols)
	ry := radius / s.world.Y * float32(s.rows)
	if rx < 1 && ry < 1 {
		s.put(cx, cy, '●', st)
		return
	}
	for dy := -int(ry); dy <= int(ry); dy++ {
		for dx := -int(rx); dx <= int(rx); dx++ {
			nx, ny := float32(dx)/max(rx, 0.5), float32(dy)/max(ry, 0.5)
			if nx*nx+ny*ny <= 1 {
				s.put(cx+dx, cy+dy, '█', st)
			}
		}
	}
}

func (s *Screen) Line(from, to geom.Vec2, c Color) {
	st := styleOf(c)
	x0, y0 := s.Cell(from)
	x1, y1 := s.Cell(to)
	n := max(abs(x1-x0), abs(y1-y0))
	if n == 0 {
		s.put(x0, y0, '·', st)
		return
	}
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		s.put(x0+int(t*float32(x1-x0)+0.5), y0+int(t*float32(y1-y0)+0.5), '·', st)
	}
}

func (s *Screen) Text(at geom.Vec2, text string, c Color) {
	st := styleOf(c)
	x, y := s.Cell(at)
	for _, r := range text {
		s.put(x, y, r, st)
		x++
	}
}

func (s *Screen) Bar(at geom.Vec2, width, fraction float32, c Color) {
	st := styleOf(c)
	cells := int(width / s.world.X * float32(s.cols))
	if cells < 3 {
		cells = 3
	}
	filled := int(geom.Clampf(fraction, 0, 1)*float32(cells) + 0.5)
	x, y := s.Cell(at)
	x -= cells / 2
	for i := 0; i < cells; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		s.put(x+i, y, r, st)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
