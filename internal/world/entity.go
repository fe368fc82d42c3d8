package world

import (
	"fmt"
	"math"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
)

// NoOwner is the owner handle of entities nobody spawned.
const NoOwner = ecs.NoEntity

// Entity is any simulated object: player, enemy, projectile, melee swing,
// pickup. Concrete kinds embed *Base (through NewBase) and override Update,
// Draw, OnCollision and Register as needed.
type Entity interface {
	ID() ecs.EntityID
	Kind() string
	Position() geom.Vec2
	Radius() float32
	IsAlive() bool
	Kill()

	Layer() collision.Layer
	Mask() collision.Layer
	ShouldCollideWith(other Entity) bool
	CollidesWith(other Entity) bool

	// Owner is a non-owning handle; resolve it through the Manager and check
	// IsAlive before every use.
	Owner() ecs.EntityID
	Weapon() *WeaponSlot

	Update(dt float32)
	Draw(c render.Canvas)
	// OnCollision is invoked once per confirmed pair, per entity, per frame.
	OnCollision(other Entity)
	// Register enlists the entity into the typed caches of its kind. Called
	// once when the entity is promoted from pending to live.
	Register(c *Caches)

	base() *Base
}

// Base carries the state every entity shares and the default (no-op)
// behavior. It satisfies Entity on its own, so kinds only override what they
// need.
type Base struct {
	id     ecs.EntityID
	kind   string
	pos    geom.Vec2
	radius float32
	alive  bool
	layer  collision.Layer
	mask   collision.Layer
	owner  ecs.EntityID
	weapon WeaponSlot
}

// NewBase builds the shared entity state. A negative or NaN radius is a
// programming error and panics.
func NewBase(kind string, pos geom.Vec2, radius float32, layer, mask collision.Layer, owner ecs.EntityID) *Base {
	if radius < 0 || math.IsNaN(float64(radius)) {
		panic(fmt.Sprintf("world: %s created with invalid radius %v", kind, radius))
	}
	return &Base{
		kind:   kind,
		pos:    pos,
		radius: radius,
		alive:  true,
		layer:  layer,
		mask:   mask,
		owner:  owner,
	}
}

func (b *Base) base() *Base { return b }

func (b *Base) ID() ecs.EntityID          { return b.id }
func (b *Base) Kind() string              { return b.kind }
func (b *Base) Position() geom.Vec2       { return b.pos }
func (b *Base) SetPosition(p geom.Vec2)   { b.pos = p }
func (b *Base) Radius() float32           { return b.radius }
func (b *Base) IsAlive() bool             { return b.alive }
func (b *Base) Layer() collision.Layer    { return b.layer }
func (b *Base) Mask() collision.Layer     { return b.mask }
func (b *Base) SetMask(m collision.Layer) { b.mask = m }
func (b *Base) Owner() ecs.EntityID       { return b.owner }
func (b *Base) Weapon() *WeaponSlot       { return &b.weapon }

// Kill flags the entity for removal at the next sweep. Idempotent; there is
// no way back to alive.
func (b *Base) Kill() { b.alive = false }

// ShouldCollideWith requires both masks to accept the other's layer.
func (b *Base) ShouldCollideWith(other Entity) bool {
	return collision.Accepts(b.layer, b.mask, other.Layer(), other.Mask())
}

// CollidesWith is the strict circle-overlap test.
func (b *Base) CollidesWith(other Entity) bool {
	return collision.Overlaps(b.pos, b.radius, other.Position(), other.Radius())
}

func (b *Base) Update(float32)     {}
func (b *Base) Draw(render.Canvas) {}
func (b *Base) OnCollision(Entity) {}
func (b *Base) Register(*Caches)   {}

func (b *Base) String() string {
	return fmt.Sprintf("%s %s", b.kind, b.id)
}
