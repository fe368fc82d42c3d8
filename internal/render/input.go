package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pushon/game/internal/geom"
)

// DefaultHold is how long a key counts as held after its last press.
// Terminals report no key releases, only auto-repeat.
const DefaultHold = 150 * time.Millisecond

// Input turns terminal events into a player controller: WASD or arrows to
// move, mouse to aim, left button or space to fire, E to pick up, 1-9 to
// switch weapons.
type Input struct {
	toWorld func(x, y int) geom.Vec2
	hold    time.Duration
	now     func() time.Time

	held      map[rune]time.Time
	aim       geom.Vec2
	mouseDown bool
	slot      int
	switching bool
	quit      bool
}

func NewInput(toWorld func(x, y int) geom.Vec2) *Input {
	return &Input{
		toWorld: toWorld,
		hold:    DefaultHold,
		now:     time.Now,
		held:    make(map[rune]time.Time),
	}
}

// Handle consumes one terminal event. Returns false for events it ignores.
func (in *Input) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.aim = in.toWorld(x, y)
		in.mouseDown = ev.Buttons()&tcell.Button1 != 0
		return true
	}
	return false
}

func (in *Input) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.quit = true
		return true
	case tcell.KeyUp:
		in.press('w')
		return true
	case tcell.KeyDown:
		in.press('s')
		return true
	case tcell.KeyLeft:
		in.press('a')
		return true
	case tcell.KeyRight:
		in.press('d')
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	switch {
	case r == 'w' || r == 'a' || r == 's' || r == 'd' || r == ' ':
		in.press(r)
	case r == 'e':
		in.press(r)
	case r == 'q':
		in.quit = true
	case r >= '1' && r <= '9':
		in.slot = int(r - '1')
		in.switching = true
	default:
		return false
	}
	return true
}

func (in *Input) press(r rune) { in.held[r] = in.now() }

func (in *Input) down(r rune) bool {
	t, ok := in.held[r]
	return ok && in.now().Sub(t) < in.hold
}

func (in *Input) Move() geom.Vec2 {
	var v geom.Vec2
	if in.down('w') {
		v.Y--
	}
	if in.down('s') {
		v.Y++
	}
	if in.down('a') {
		v.X--
	}
	if in.down('d') {
		v.X++
	}
	return v
}

func (in *Input) Aim() geom.Vec2 { return in.aim }
func (in *Input) Firing() bool   { return in.mouseDown || in.down(' ') }

// Interact consumes an E press. A press nothing consumed lapses like a held
// key, so it cannot fire on a pickup reached later.
func (in *Input) Interact() bool {
	if !in.down('e') {
		return false
	}
	delete(in.held, 'e')
	return true
}

func (in *Input) Switch() (int, bool) {
	v, ok := in.slot, in.switching
	in.switching = false
	return v, ok
}

// Quit reports whether the player asked to leave.
func (in *Input) Quit() bool { return in.quit }
