package actor

import (
	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindHazard = "hazard"

// Hazard is a static zone that hurts everyone standing in it, a fixed amount
// per second. Lifetime <= 0 keeps it forever.
type Hazard struct {
	*world.Base
	dps      float32
	lifetime float32
	step     float32
}

func NewHazard(pos geom.Vec2, radius, dps, lifetime float32) *Hazard {
	return &Hazard{
		Base:     world.NewBase(KindHazard, pos, radius, collision.LayerNeutralHazard, collision.LayerAllPlayers|collision.LayerEnemy, world.NoOwner),
		dps:      dps,
		lifetime: lifetime,
	}
}

func (h *Hazard) Update(dt float32) {
	h.step = dt
	if h.lifetime > 0 {
		h.lifetime -= dt
		if h.lifetime <= 0 {
			h.Kill()
		}
	}
}

// OnCollision deals this frame's share of damage.
func (h *Hazard) OnCollision(other world.Entity) {
	if d, ok := other.(world.Damageable); ok && h.step > 0 {
		d.TakeDamage(h.dps*h.step, h.ID())
	}
}

func (h *Hazard) Draw(c render.Canvas) {
	c.Circle(h.Position(), h.Radius(), render.ColorPurple)
}
