package system

import (
	"time"

	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/core/event"
	coresys "github.com/pushon/game/internal/core/system"
	"github.com/pushon/game/internal/world"
)

type bountied interface {
	Bounty() int
	Health() float32
	LastHitBy() ecs.EntityID
}

// Score keeps the tally of the run from Removed events: bounty of killed
// enemies (credited to whoever landed the last hit) and lost players.
// Phase 5 (PostCleanup) advances the survival clock.
type Score struct {
	world    *world.Manager
	kills    int
	points   int
	byPlayer map[ecs.EntityID]int
	lost     int
	wave     int
	elapsed  time.Duration
}

func NewScore(m *world.Manager) *Score {
	s := &Score{world: m, byPlayer: make(map[ecs.EntityID]int)}
	event.Subscribe(m.Bus(), s.onRemoved)
	event.Subscribe(m.Bus(), func(ev world.WaveStarted) { s.wave = ev.Wave })
	return s
}

func (s *Score) onRemoved(ev world.Removed) {
	if _, ok := ev.Entity.(world.Player); ok {
		s.lost++
		return
	}
	b, ok := ev.Entity.(bountied)
	if !ok || b.Health() > 0 {
		return
	}
	s.kills++
	s.points += b.Bounty()
	if by := b.LastHitBy(); !by.IsZero() {
		s.byPlayer[by] += b.Bounty()
	}
}

func (s *Score) Phase() coresys.Phase { return coresys.PhasePostCleanup }

func (s *Score) Update(dt time.Duration) {
	if len(s.world.Players()) > 0 {
		s.elapsed += dt
	}
}

func (s *Score) Kills() int                       { return s.kills }
func (s *Score) Points() int                      { return s.points }
func (s *Score) PlayerPoints(id ecs.EntityID) int { return s.byPlayer[id] }
func (s *Score) PlayersLost() int                 { return s.lost }
func (s *Score) LastWave() int                    { return s.wave }
func (s *Score) Elapsed() time.Duration           { return s.elapsed }

// GameOver reports whether every player that joined has been removed.
func (s *Score) GameOver() bool {
	return s.lost > 0 && len(s.world.Players()) == 0
}
