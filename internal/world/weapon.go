package world

import (
	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
)

// Resolver turns handles into alive entities.
type Resolver interface {
	ResolveAlive(id ecs.EntityID) (Entity, bool)
}

// Host is what weapons and hit-volumes need from the entity manager.
type Host interface {
	Spawner
	Resolver
}

// Spawner accepts new entities for the next flush. The Manager is the only
// production implementation; weapons receive it explicitly.
type Spawner interface {
	QueueEntity(e Entity)
}

// Weapon is a cooldown-driven behavior attached to at most one entity. It is
// not collidable itself: firing spawns entities (projectiles, hit-volumes)
// through a Spawner.
type Weapon interface {
	Name() string
	CanFire() bool
	// Fire does nothing unless CanFire. Spawned entities appear after the
	// next AddWaitingEntities.
	Fire(owner Entity, target geom.Vec2)
	Update(owner Entity, dt float32)
	Draw(c render.Canvas, ownerPos, aimDir geom.Vec2)
}

// WeaponBase holds the cooldown timer shared by every weapon.
type WeaponBase struct {
	name          string
	cooldown      float32
	cooldownTimer float32
}

func NewWeaponBase(name string, cooldown float32) WeaponBase {
	if cooldown < 0 {
		cooldown = 0
	}
	return WeaponBase{name: name, cooldown: cooldown}
}

func (w *WeaponBase) Name() string               { return w.name }
func (w *WeaponBase) CanFire() bool              { return w.cooldownTimer <= 0 }
func (w *WeaponBase) Cooldown() float32          { return w.cooldown }
func (w *WeaponBase) CooldownRemaining() float32 { return w.cooldownTimer }

// ResetCooldown arms the timer with the configured cooldown.
func (w *WeaponBase) ResetCooldown() { w.cooldownTimer = w.cooldown }

// TickCooldown decrements the timer, clamped at zero.
func (w *WeaponBase) TickCooldown(dt float32) {
	if w.cooldownTimer <= 0 {
		return
	}
	w.cooldownTimer -= dt
	if w.cooldownTimer < 0 {
		w.cooldownTimer = 0
	}
}

// WeaponSlot is an optional, exclusively owned weapon. Moves go through Take
// and Equip so a weapon is never held by two slots at once.
type WeaponSlot struct {
	w Weapon
}

func (s *WeaponSlot) Has() bool   { return s.w != nil }
func (s *WeaponSlot) Get() Weapon { return s.w }

// Equip puts w into the slot and returns whatever was there before (the
// caller now owns it).
func (s *WeaponSlot) Equip(w Weapon) Weapon {
	prev := s.w
	s.w = w
	return prev
}

// Take moves the weapon out of the slot, leaving it empty.
func (s *WeaponSlot) Take() Weapon {
	w := s.w
	s.w = nil
	return w
}

// TransferWeapon moves from's weapon into to. The weapon to previously held
// is returned to the caller, who must re-home it (e.g. drop it as a pickup).
// Transferring from an empty slot leaves both slots unchanged.
func TransferWeapon(from, to *WeaponSlot) (displaced Weapon) {
	if from == nil || to == nil || from == to || !from.Has() {
		return nil
	}
	return to.Equip(from.Take())
}

// AttackFilter derives the layer and mask of a hit-volume from its owner:
// enemy-owned attacks hit players (and the enemies that opted into friendly
// fire by accepting LayerEnemyAttack), everything else hits enemies and their
// attacks.
func AttackFilter(owner Entity) (layer, mask collision.Layer) {
	if owner != nil && owner.Layer().Has(collision.LayerEnemy) {
		return collision.LayerEnemyAttack, collision.LayerAllPlayers | collision.LayerEnemy
	}
	return collision.LayerPlayerAttack, collision.LayerEnemy | collision.LayerEnemyAttack
}
