package system

import (
	"slices"
	"time"
)

// Runner steps the frame pipeline: every registered system, grouped by
// phase, in registration order within a phase. It also keeps how much wall
// time each phase has consumed.
type Runner struct {
	systems []System
	dirty   bool
	frames  uint64
	spent   [phaseCount]time.Duration
	now     func() time.Time
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		now:     time.Now,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.dirty = true
}

// Tick runs one full frame.
func (r *Runner) Tick(dt time.Duration) {
	r.order()
	for _, s := range r.systems {
		r.run(s, dt)
	}
	r.frames++
}

// TickPhase runs only the systems of one phase without counting a frame.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.order()
	for _, s := range r.systems {
		if s.Phase() == phase {
			r.run(s, dt)
		}
	}
}

func (r *Runner) run(s System, dt time.Duration) {
	start := r.now()
	s.Update(dt)
	if p := s.Phase(); p >= 0 && p < phaseCount {
		r.spent[p] += r.now().Sub(start)
	}
}

// Frames returns how many full frames have run.
func (r *Runner) Frames() uint64 { return r.frames }

// Spent returns the wall time consumed by a phase since the runner started.
func (r *Runner) Spent(p Phase) time.Duration {
	if p < 0 || p >= phaseCount {
		return 0
	}
	return r.spent[p]
}

func (r *Runner) order() {
	if !r.dirty {
		return
	}
	slices.SortStableFunc(r.systems, func(a, b System) int {
		return int(a.Phase()) - int(b.Phase())
	})
	r.dirty = false
}
