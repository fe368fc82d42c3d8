package weapon

import (
	"github.com/pushon/game/internal/data"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

// Gun fires one bullet per shot from a muzzle point ahead of its owner.
type Gun struct {
	world.WeaponBase
	host   world.Host
	tmpl   data.WeaponTemplate
	bounds geom.Vec2
	scale  DamageScaler
}

func NewGun(host world.Host, t data.WeaponTemplate, bounds geom.Vec2) *Gun {
	return &Gun{
		WeaponBase: world.NewWeaponBase(t.Name, t.Cooldown),
		host:       host,
		tmpl:       t,
		bounds:     bounds,
	}
}

// Fire spawns a bullet travelling from the owner towards target. A target on
// top of the owner fires along +X.
func (g *Gun) Fire(owner world.Entity, target geom.Vec2) {
	if !g.CanFire() || owner == nil || !owner.IsAlive() {
		return
	}
	dir, _ := geom.Direction(owner.Position(), target)
	if dir.IsZero() {
		dir = geom.V(1, 0)
	}
	layer, mask := world.AttackFilter(owner)
	g.host.QueueEntity(NewBullet(BulletParams{
		Owner:    owner.ID(),
		Position: owner.Position().Add(dir.Scale(g.tmpl.MuzzleOffset)),
		Velocity: dir.Scale(g.tmpl.ProjectileSpeed),
		Radius:   g.tmpl.ProjectileRadius,
		Damage:   scaled(g.scale, g.Name(), g.tmpl.Damage),
		Layer:    layer,
		Mask:     mask,
		Bounds:   g.bounds,
	}))
	g.ResetCooldown()
}

func (g *Gun) Update(_ world.Entity, dt float32) {
	g.TickCooldown(dt)
}

func (g *Gun) Draw(c render.Canvas, ownerPos, aimDir geom.Vec2) {
	c.Line(ownerPos, ownerPos.Add(aimDir.Scale(20)), render.ColorDarkGray)
}
