package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
)

type stubWeapon struct {
	WeaponBase
	fired int
}

func newStubWeapon(name string) *stubWeapon {
	return &stubWeapon{WeaponBase: NewWeaponBase(name, 0.5)}
}

func (w *stubWeapon) Fire(Entity, geom.Vec2) {
	if !w.CanFire() {
		return
	}
	w.fired++
	w.ResetCooldown()
}

func (w *stubWeapon) Update(_ Entity, dt float32)              { w.TickCooldown(dt) }
func (w *stubWeapon) Draw(render.Canvas, geom.Vec2, geom.Vec2) {}

func TestWeaponCooldown(t *testing.T) {
	w := newStubWeapon("stub")
	assert.True(t, w.CanFire())
	w.Fire(nil, geom.Vec2{})
	w.Fire(nil, geom.Vec2{})
	assert.Equal(t, 1, w.fired)
	assert.False(t, w.CanFire())

	w.Update(nil, 0.3)
	assert.InDelta(t, 0.2, w.CooldownRemaining(), 1e-6)
	w.Update(nil, 1)
	assert.Equal(t, float32(0), w.CooldownRemaining(), "clamped at zero")
	assert.True(t, w.CanFire())
}

func TestWeaponSlotTransferNeverDuplicates(t *testing.T) {
	var pickup, player WeaponSlot
	sword := newStubWeapon("sword")
	gun := newStubWeapon("gun")
	pickup.Equip(sword)
	player.Equip(gun)

	displaced := TransferWeapon(&pickup, &player)
	require.NotNil(t, displaced)
	assert.Equal(t, "gun", displaced.Name())
	assert.False(t, pickup.Has())
	assert.Same(t, Weapon(sword), player.Get())

	assert.Nil(t, TransferWeapon(&pickup, &player), "empty source is a no-op")
	assert.Same(t, Weapon(sword), player.Get())
	assert.Nil(t, TransferWeapon(&player, &player))
	assert.True(t, player.Has())
}

func TestWeaponSlotTake(t *testing.T) {
	var s WeaponSlot
	assert.Nil(t, s.Take())
	gun := newStubWeapon("gun")
	assert.Nil(t, s.Equip(gun))
	assert.Same(t, Weapon(gun), s.Take())
	assert.False(t, s.Has())
}

func TestAttackFilter(t *testing.T) {
	enemy := NewBase("enemy", geom.Vec2{}, 15, collision.LayerEnemy, collision.LayerPlayerAttack, NoOwner)
	player := NewBase("player", geom.Vec2{}, 20, collision.LayerPlayer1, collision.LayerEnemy, NoOwner)

	layer, mask := AttackFilter(enemy)
	assert.Equal(t, collision.LayerEnemyAttack, layer)
	assert.Equal(t, collision.LayerAllPlayers|collision.LayerEnemy, mask)

	layer, mask = AttackFilter(player)
	assert.Equal(t, collision.LayerPlayerAttack, layer)
	assert.Equal(t, collision.LayerEnemy|collision.LayerEnemyAttack, mask)

	layer, _ = AttackFilter(nil)
	assert.Equal(t, collision.LayerPlayerAttack, layer)
}
