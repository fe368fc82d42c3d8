package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/pushon/game/internal/actor"
	"github.com/pushon/game/internal/core/event"
	"github.com/pushon/game/internal/world"
)

// Loot drops the weapon of a dead enemy as a pickup where it fell.
type Loot struct {
	world   *world.Manager
	chance  float64
	rng     *rand.Rand
	log     *zap.Logger
	dropped int
}

func NewLoot(m *world.Manager, chance float64, rng *rand.Rand, log *zap.Logger) *Loot {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Loot{world: m, chance: chance, rng: rng, log: log}
	event.Subscribe(m.Bus(), l.onRemoved)
	return l
}

func (l *Loot) onRemoved(ev world.Removed) {
	if ev.Entity.Kind() != actor.KindEnemy || !ev.Entity.Weapon().Has() {
		return
	}
	if l.chance <= 0 || l.rng.Float64() >= l.chance {
		return
	}
	w := ev.Entity.Weapon().Take()
	l.world.QueueEntity(actor.NewPickup(l.world, ev.Entity.Position(), w, l.log))
	l.dropped++
	l.log.Debug("weapon dropped", zap.String("weapon", w.Name()), zap.Stringer("from", ev.ID))
}

// Dropped counts pickups created so far.
func (l *Loot) Dropped() int { return l.dropped }
