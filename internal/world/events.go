package world

import (
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/geom"
)

// Removed is emitted once per entity erased by DeleteDeadEntities.
type Removed struct {
	ID     ecs.EntityID
	Entity Entity
}

// WeaponEquipped is emitted when an entity takes a weapon into its slot.
type WeaponEquipped struct {
	Owner  ecs.EntityID
	Weapon string
}

// Damageable is implemented by entities that have health.
type Damageable interface {
	Entity
	TakeDamage(amount float32, from ecs.EntityID)
}

// Player is the typed view held in the player cache.
type Player interface {
	Entity
	Number() int
	Health() float32
	MaxHealth() float32
}

// Enemy is the typed view held in the enemy cache.
type Enemy interface {
	Entity
	SetTarget(p geom.Vec2)
}

// WaveStarted is emitted when the director spawns a new enemy wave.
type WaveStarted struct {
	Wave  int
	Count int
}
