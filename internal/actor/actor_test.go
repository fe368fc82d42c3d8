package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/event"
	"github.com/pushon/game/internal/data"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/weapon"
	"github.com/pushon/game/internal/world"
)

type scripted struct {
	move     geom.Vec2
	aim      geom.Vec2
	fire     bool
	interact bool
	slot     int
	switchOK bool
}

func (s *scripted) Move() geom.Vec2 { return s.move }
func (s *scripted) Aim() geom.Vec2  { return s.aim }
func (s *scripted) Firing() bool    { return s.fire }

func (s *scripted) Interact() bool {
	v := s.interact
	s.interact = false
	return v
}

func (s *scripted) Switch() (int, bool) {
	v, ok := s.slot, s.switchOK
	s.switchOK = false
	return v, ok
}

type fixedBrain struct {
	intent Intent
	ok     bool
	seen   []Sense
}

func (b *fixedBrain) Decide(s Sense) (Intent, bool) {
	b.seen = append(b.seen, s)
	return b.intent, b.ok
}

func newWorld(t *testing.T) (*world.Manager, *event.Bus, *weapon.Factory) {
	t.Helper()
	bus := event.NewBus()
	m := world.NewManager(100, bus, nil)
	tbl, err := data.NewWeaponTable(data.BuiltinWeapons())
	require.NoError(t, err)
	return m, bus, weapon.NewFactory(m, tbl, geom.V(1280, 720), nil)
}

func mustWeapon(t *testing.T, f *weapon.Factory, name string) world.Weapon {
	t.Helper()
	w, err := f.New(name)
	require.NoError(t, err)
	return w
}

func grunt() data.EnemyTemplate { return data.BuiltinEnemies()[0] }

func frame(m *world.Manager, dt float32) {
	m.AddWaitingEntities()
	m.UpdateEntities(dt)
	m.CheckCollisions()
	m.DeleteDeadEntities()
}

func TestPlayerMovesAndClamps(t *testing.T) {
	m, _, _ := newWorld(t)
	ctrl := &scripted{move: geom.V(1, 1)}
	p := NewPlayer(DefaultPlayerParams(0, geom.V(640, 360)), ctrl, nil, nil)
	m.QueueEntity(p)
	frame(m, 0.1)

	step := float32(300 * 0.1 / 1.41421356)
	assert.InDelta(t, 640+step, p.Position().X, 0.01)
	assert.InDelta(t, 360+step, p.Position().Y, 0.01)

	ctrl.move = geom.V(-1, 0)
	for i := 0; i < 100; i++ {
		frame(m, 0.1)
	}
	assert.Equal(t, float32(20), p.Position().X, "clamped to radius")
}

func TestPlayerLayers(t *testing.T) {
	p := NewPlayer(DefaultPlayerParams(2, geom.V(0, 0)), nil, nil, nil)
	assert.Equal(t, collision.LayerPlayer3, p.Layer())
	assert.True(t, p.Mask().Has(collision.LayerPickup))
	assert.True(t, p.Mask().Has(collision.LayerEnemyAttack))
	assert.False(t, p.Mask().Has(collision.LayerPlayerAttack))
}

func TestPlayerFiresThroughController(t *testing.T) {
	m, _, f := newWorld(t)
	ctrl := &scripted{aim: geom.V(900, 360), fire: true}
	p := NewPlayer(DefaultPlayerParams(0, geom.V(640, 360)), ctrl, nil, nil)
	p.Equip(mustWeapon(t, f, "Gun"))
	m.QueueEntity(p)
	frame(m, 0.016)
	assert.Equal(t, 1, m.PendingLen(), "bullet waits for the next flush")
	m.AddWaitingEntities()
	assert.Equal(t, weapon.KindBullet, m.Entities()[1].Kind())
}

func TestContactDamageRespectsImmunity(t *testing.T) {
	m, _, _ := newWorld(t)
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), nil, nil, nil)
	e := NewEnemy(grunt(), geom.V(310, 300), nil, nil)
	m.QueueEntity(p)
	m.QueueEntity(e)

	frame(m, 0.1)
	assert.Equal(t, float32(90), p.Health())
	assert.True(t, p.Immune())
	assert.Equal(t, e.ID(), p.LastHitBy())
	frame(m, 0.1)
	frame(m, 0.1)
	assert.Equal(t, float32(90), p.Health())
	for i := 0; i < 4; i++ {
		frame(m, 0.1)
	}
	assert.Equal(t, float32(80), p.Health(), "hit once more after the window")
	assert.Equal(t, float32(100), e.Health(), "contact does not hurt the enemy")
}

func TestPlayerDeathIsSwept(t *testing.T) {
	m, _, _ := newWorld(t)
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), nil, nil, nil)
	m.QueueEntity(p)
	m.AddWaitingEntities()
	p.TakeDamage(150, world.NoOwner)
	assert.False(t, p.IsAlive())
	assert.Equal(t, float32(0), p.Health())
	require.Len(t, m.Players(), 1)
	m.DeleteDeadEntities()
	assert.Empty(t, m.Players())
	_, ok := m.Player(0)
	assert.False(t, ok)
}

func TestInventory(t *testing.T) {
	_, bus, f := newWorld(t)
	var equipped []string
	event.Subscribe(bus, func(ev world.WeaponEquipped) { equipped = append(equipped, ev.Weapon) })

	ctrl := &scripted{}
	p := NewPlayer(DefaultPlayerParams(0, geom.V(0, 0)), ctrl, bus, nil)
	p.AddToInventory(mustWeapon(t, f, "Gun"))
	p.AddToInventory(mustWeapon(t, f, "Sword"))
	p.AddToInventory(nil)
	require.True(t, p.Weapon().Has())
	assert.Equal(t, "Gun", p.Weapon().Get().Name())
	require.Len(t, p.Inventory(), 1)

	p.SwitchWeapon(0)
	assert.Equal(t, "Sword", p.Weapon().Get().Name())
	assert.Equal(t, "Gun", p.Inventory()[0].Name())
	p.SwitchWeapon(5)
	assert.Equal(t, "Sword", p.Weapon().Get().Name())

	ctrl.slot, ctrl.switchOK = 0, true
	p.Update(0.016)
	assert.Equal(t, "Gun", p.Weapon().Get().Name())

	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Equal(t, []string{"Gun", "Sword", "Gun"}, equipped)
}

func TestEnemyChasesAndStops(t *testing.T) {
	m, _, _ := newWorld(t)
	e := NewEnemy(grunt(), geom.V(0, 100), nil, nil)
	m.QueueEntity(e)
	m.AddWaitingEntities()
	e.SetTarget(geom.V(100, 100))

	m.UpdateEntities(0.5)
	assert.InDelta(t, 60, e.Position().X, 0.01)
	m.UpdateEntities(0.3)
	assert.InDelta(t, 96, e.Position().X, 0.01)
	m.UpdateEntities(0.1)
	assert.InDelta(t, 96, e.Position().X, 0.01, "within stop distance")
}

func TestEnemyAttacksInRange(t *testing.T) {
	m, _, f := newWorld(t)
	e := NewEnemy(grunt(), geom.V(100, 100), nil, nil)
	e.Equip(mustWeapon(t, f, "Gun"))
	m.QueueEntity(e)
	m.AddWaitingEntities()

	e.SetTarget(geom.V(500, 100))
	m.UpdateEntities(0.016)
	assert.Equal(t, 0, m.PendingLen(), "target out of attack range")

	e.SetTarget(geom.V(250, 100))
	m.UpdateEntities(0.016)
	require.Equal(t, 1, m.PendingLen())
	m.AddWaitingEntities()
	b := m.Entities()[1]
	assert.Equal(t, collision.LayerEnemyAttack, b.Layer())
	assert.Equal(t, e.ID(), b.Owner())
}

func TestEnemyBrain(t *testing.T) {
	m, _, _ := newWorld(t)
	brain := &fixedBrain{intent: Intent{Move: geom.V(0, 1)}, ok: true}
	e := NewEnemy(grunt(), geom.V(100, 100), brain, nil)
	m.QueueEntity(e)
	m.AddWaitingEntities()
	e.SetTarget(geom.V(300, 100))

	m.UpdateEntities(0.5)
	assert.Equal(t, geom.V(100, 160), e.Position(), "brain overrides the chase")
	require.Len(t, brain.seen, 1)
	assert.Equal(t, float32(200), brain.seen[0].TargetDist)
	assert.Equal(t, "grunt", brain.seen[0].Template)

	brain.ok = false
	m.UpdateEntities(0.5)
	assert.Greater(t, e.Position().X, float32(100), "falls back to the chase")
}

func TestEnemyFriendlyFireOptIn(t *testing.T) {
	tmpl := grunt()
	assert.False(t, NewEnemy(tmpl, geom.V(0, 0), nil, nil).Mask().Has(collision.LayerEnemyAttack))
	tmpl.HitsEnemies = true
	assert.True(t, NewEnemy(tmpl, geom.V(0, 0), nil, nil).Mask().Has(collision.LayerEnemyAttack))
}

func TestEnemyTakesBulletDamage(t *testing.T) {
	m, _, f := newWorld(t)
	ctrl := &scripted{aim: geom.V(400, 300), fire: true}
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), ctrl, nil, nil)
	p.Equip(mustWeapon(t, f, "Gun"))
	e := NewEnemy(grunt(), geom.V(360, 300), nil, nil)
	m.QueueEntity(p)
	m.QueueEntity(e)

	frame(m, 0.016) // fire
	frame(m, 0.016) // bullet joins at x=325 and moves to 337.8
	assert.Equal(t, float32(100), e.Health())
	frame(m, 0.016) // 350.6 overlaps
	assert.Equal(t, float32(75), e.Health())
	assert.Equal(t, p.ID(), e.LastHitBy())
}

func TestPickupSwap(t *testing.T) {
	m, bus, f := newWorld(t)
	var equipped []string
	event.Subscribe(bus, func(ev world.WeaponEquipped) { equipped = append(equipped, ev.Weapon) })

	ctrl := &scripted{}
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), ctrl, bus, nil)
	p.Equip(mustWeapon(t, f, "Gun"))
	pickup := NewPickup(m, geom.V(305, 300), mustWeapon(t, f, "Sword"), nil)
	m.QueueEntity(p)
	m.QueueEntity(pickup)

	frame(m, 0.016)
	assert.Equal(t, p.ID(), pickup.Nearby())
	frame(m, 0.016)
	assert.True(t, pickup.IsAlive(), "no interaction, no swap")
	assert.Equal(t, "Gun", p.Weapon().Get().Name())

	ctrl.interact = true
	frame(m, 0.016)
	assert.False(t, pickup.IsAlive())
	assert.Equal(t, "Sword", p.Weapon().Get().Name())
	assert.False(t, pickup.Weapon().Has())

	m.AddWaitingEntities()
	var dropped *Pickup
	for _, e := range m.Entities() {
		if pk, ok := e.(*Pickup); ok {
			dropped = pk
		}
	}
	require.NotNil(t, dropped)
	assert.Equal(t, "Gun", dropped.Weapon().Get().Name())
	assert.Equal(t, p.Position(), dropped.Position())

	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Equal(t, []string{"Gun", "Sword"}, equipped)
}

func TestPickupIntoEmptyHands(t *testing.T) {
	m, _, f := newWorld(t)
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), &scripted{}, nil, nil)
	pickup := NewPickup(m, geom.V(300, 300), mustWeapon(t, f, "Sword"), nil)
	m.QueueEntity(p)
	m.QueueEntity(pickup)
	m.AddWaitingEntities()

	pickup.GiveTo(p)
	assert.Equal(t, "Sword", p.Weapon().Get().Name())
	assert.Equal(t, 0, m.PendingLen(), "nothing to drop")
	pickup.GiveTo(p)
	assert.Equal(t, "Sword", p.Weapon().Get().Name())
}

func TestPickupDrawsPrompt(t *testing.T) {
	m, _, f := newWorld(t)
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), nil, nil, nil)
	pickup := NewPickup(m, geom.V(300, 300), mustWeapon(t, f, "Gun"), nil)
	m.QueueEntity(p)
	m.QueueEntity(pickup)
	frame(m, 0.016)

	var rec render.Recorder
	pickup.Draw(&rec)
	assert.Equal(t, 2, rec.Count("text"))
}

func TestHazardDamagesOverTime(t *testing.T) {
	m, _, _ := newWorld(t)
	p := NewPlayer(DefaultPlayerParams(0, geom.V(300, 300)), nil, nil, nil)
	h := NewHazard(geom.V(300, 300), 40, 20, 1)
	m.QueueEntity(p)
	m.QueueEntity(h)
	for i := 0; i < 5; i++ {
		frame(m, 0.1)
	}
	assert.InDelta(t, 90, p.Health(), 0.01)
	for i := 0; i < 6; i++ {
		frame(m, 0.1)
	}
	assert.False(t, h.IsAlive())
}
