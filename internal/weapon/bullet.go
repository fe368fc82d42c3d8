package weapon

import (
	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindBullet = "bullet"

type BulletParams struct {
	Owner    ecs.EntityID
	Position geom.Vec2
	Velocity geom.Vec2
	Radius   float32
	Damage   float32
	Layer    collision.Layer
	Mask     collision.Layer
	Bounds   geom.Vec2 // world size; the bullet dies outside [0,W]x[0,H]
}

// Bullet is a straight-line projectile. It dies on its first hit or when it
// leaves the world.
type Bullet struct {
	*world.Base
	vel    geom.Vec2
	damage float32
	bounds geom.Vec2
}

func NewBullet(p BulletParams) *Bullet {
	return &Bullet{
		Base:   world.NewBase(KindBullet, p.Position, p.Radius, p.Layer, p.Mask, p.Owner),
		vel:    p.Velocity,
		damage: p.Damage,
		bounds: p.Bounds,
	}
}

func (b *Bullet) Damage() float32     { return b.damage }
func (b *Bullet) Velocity() geom.Vec2 { return b.vel }

func (b *Bullet) Update(dt float32) {
	pos := b.Position().Add(b.vel.Scale(dt))
	b.SetPosition(pos)
	if pos.X < 0 || pos.X > b.bounds.X || pos.Y < 0 || pos.Y > b.bounds.Y {
		b.Kill()
	}
}

// OnCollision damages the first damageable thing it touches and dies. Later
// candidates in the same frame see a dead bullet and are ignored.
func (b *Bullet) OnCollision(other world.Entity) {
	if !b.IsAlive() || other.ID() == b.Owner() {
		return
	}
	if d, ok := other.(world.Damageable); ok {
		d.TakeDamage(b.damage, b.Owner())
	}
	b.Kill()
}

func (b *Bullet) Draw(c render.Canvas) {
	c.Circle(b.Position(), b.Radius(), render.ColorYellow)
}
