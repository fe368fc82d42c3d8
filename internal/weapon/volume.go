package weapon

import (
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

type trailPoint struct {
	pos  geom.Vec2
	life float32
}

// volume is the shared part of melee hit-volumes: a circle of radius = reach
// that follows its owner for a fixed duration and hits each target once.
type volume struct {
	*world.Base
	host     world.Resolver
	damage   float32
	duration float32
	lifetime float32
	hit      map[ecs.EntityID]struct{}

	trail      []trailPoint
	trailTimer float32
	trailEvery float32
	trailLife  float32
}

func newVolume(kind string, host world.Resolver, owner world.Entity, reach, damage, duration float32) volume {
	layer, mask := world.AttackFilter(owner)
	return volume{
		Base:     world.NewBase(kind, owner.Position(), reach, layer, mask, owner.ID()),
		host:     host,
		damage:   damage,
		duration: duration,
		hit:      make(map[ecs.EntityID]struct{}),
	}
}

// Progress is lifetime / duration in [0,1].
func (v *volume) Progress() float32 {
	if v.duration <= 0 {
		return 1
	}
	return geom.Clampf(v.lifetime/v.duration, 0, 1)
}

func (v *volume) Damage() float32 { return v.damage }

// HitCount is how many distinct targets this volume has damaged.
func (v *volume) HitCount() int { return len(v.hit) }

// advance moves time forward, kills the volume once its duration is over and
// snaps it onto its owner. Returns false when the volume expired.
func (v *volume) advance(dt float32) bool {
	v.lifetime += dt
	if v.lifetime >= v.duration {
		v.Kill()
		return false
	}
	v.follow()
	return true
}

func (v *volume) follow() {
	if o, ok := v.host.ResolveAlive(v.Owner()); ok {
		v.SetPosition(o.Position())
	}
}

func (v *volume) updateTrail(dt float32, tip geom.Vec2) {
	v.trailTimer -= dt
	if v.trailTimer <= 0 {
		v.trail = append(v.trail, trailPoint{pos: tip, life: v.trailLife})
		v.trailTimer = v.trailEvery
	}
	kept := v.trail[:0]
	for _, p := range v.trail {
		p.life -= dt
		if p.life > 0 {
			kept = append(kept, p)
		}
	}
	v.trail = kept
}

func (v *volume) drawTrail(c render.Canvas, col render.Color) {
	for _, p := range v.trail {
		c.Circle(p.pos, 3*p.life/v.trailLife, col)
	}
}

// strike damages other once per volume lifetime. The owner is never hit.
func (v *volume) strike(other world.Entity) {
	if !v.IsAlive() {
		return
	}
	id := other.ID()
	if id == v.Owner() {
		return
	}
	if _, done := v.hit[id]; done {
		return
	}
	d, ok := other.(world.Damageable)
	if !ok {
		return
	}
	v.hit[id] = struct{}{}
	d.TakeDamage(v.damage, v.Owner())
}
