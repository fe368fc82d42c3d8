// Package actor implements the gameplay entities: players, enemies and
// weapon pickups.
package actor

import (
	"go.uber.org/zap"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/core/event"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindPlayer = "player"

// Controller is the input abstraction a player reads each frame.
type Controller interface {
	// Move is the desired direction; any length, normalized by the player.
	Move() geom.Vec2
	// Aim is the world point the player aims at.
	Aim() geom.Vec2
	Firing() bool
	// Interact reports a pending interact press and clears it.
	Interact() bool
	// Switch reports a pending inventory slot request and clears it.
	Switch() (int, bool)
}

// ContactDamager is implemented by entities that hurt players on touch.
type ContactDamager interface {
	ContactDamage() float32
}

type PlayerParams struct {
	Number          int
	Position        geom.Vec2
	Radius          float32
	Speed           float32
	Health          float32
	ContactImmunity float32 // seconds of immunity after a contact hit
	Bounds          geom.Vec2
}

// DefaultPlayerParams returns the stock player for slot n.
func DefaultPlayerParams(n int, pos geom.Vec2) PlayerParams {
	return PlayerParams{
		Number:          n,
		Position:        pos,
		Radius:          20,
		Speed:           300,
		Health:          100,
		ContactImmunity: 0.5,
		Bounds:          geom.V(1280, 720),
	}
}

// Player is a controllable fighter. It holds one equipped weapon plus an
// inventory of spares.
type Player struct {
	*world.Base
	n         int
	speed     float32
	health    float32
	maxHealth float32
	immunity  float32
	immune    float32
	bounds    geom.Vec2

	ctrl      Controller
	inventory []world.Weapon
	aim       geom.Vec2
	lastHitBy ecs.EntityID

	bus *event.Bus
	log *zap.Logger
}

func NewPlayer(p PlayerParams, ctrl Controller, bus *event.Bus, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	mask := collision.LayerEnemy | collision.LayerEnemyAttack | collision.LayerNeutralHazard | collision.LayerPickup
	return &Player{
		Base:      world.NewBase(KindPlayer, p.Position, p.Radius, collision.PlayerLayer(p.Number), mask, world.NoOwner),
		n:         p.Number,
		speed:     p.Speed,
		health:    p.Health,
		maxHealth: p.Health,
		immunity:  p.ContactImmunity,
		bounds:    p.Bounds,
		ctrl:      ctrl,
		aim:       p.Position.Add(geom.V(1, 0)),
		bus:       bus,
		log:       log.With(zap.Int("player", p.Number)),
	}
}

func (p *Player) Register(c *world.Caches) { c.Players.Add(p) }

func (p *Player) Number() int                { return p.n }
func (p *Player) Health() float32            { return p.health }
func (p *Player) MaxHealth() float32         { return p.maxHealth }
func (p *Player) Immune() bool               { return p.immune > 0 }
func (p *Player) Inventory() []world.Weapon  { return p.inventory }
func (p *Player) LastHitBy() ecs.EntityID    { return p.lastHitBy }
func (p *Player) Controller() Controller     { return p.ctrl }
func (p *Player) SetController(c Controller) { p.ctrl = c }

// Interacting consumes the controller's interact press, if any.
func (p *Player) Interacting() bool {
	return p.ctrl != nil && p.IsAlive() && p.ctrl.Interact()
}

func (p *Player) Update(dt float32) {
	if p.immune > 0 {
		p.immune -= dt
	}
	if p.ctrl != nil {
		p.handleInput(dt)
	}
	if w := p.Weapon().Get(); w != nil {
		w.Update(p, dt)
	}
}

func (p *Player) handleInput(dt float32) {
	move := p.ctrl.Move().Normalize()
	pos := p.Position().Add(move.Scale(p.speed * dt))
	r := p.Radius()
	p.SetPosition(pos.Clamp(geom.V(r, r), geom.V(p.bounds.X-r, p.bounds.Y-r)))

	p.aim = p.ctrl.Aim()
	if i, ok := p.ctrl.Switch(); ok {
		p.SwitchWeapon(i)
	}
	if p.ctrl.Firing() {
		p.Shoot(p.aim)
	}
}

// Shoot fires the equipped weapon at target if it is ready.
func (p *Player) Shoot(target geom.Vec2) {
	w := p.Weapon().Get()
	if w == nil {
		p.log.Debug("player has no weapon equipped")
		return
	}
	if w.CanFire() {
		w.Fire(p, target)
	}
}

// OnCollision handles enemy contact. Projectiles and swings apply their own
// damage.
func (p *Player) OnCollision(other world.Entity) {
	if !p.IsAlive() || !other.Layer().Has(collision.LayerEnemy) {
		return
	}
	cd, ok := other.(ContactDamager)
	if !ok || p.immune > 0 {
		return
	}
	p.TakeDamage(cd.ContactDamage(), other.ID())
	p.immune = p.immunity
}

func (p *Player) TakeDamage(amount float32, from ecs.EntityID) {
	if !p.IsAlive() || amount <= 0 {
		return
	}
	p.lastHitBy = from
	p.health -= amount
	if p.health <= 0 {
		p.health = 0
		p.Kill()
		p.log.Info("player died", zap.Stringer("killer", from))
	}
}

// Equip puts w into the weapon slot and returns the weapon it replaced.
func (p *Player) Equip(w world.Weapon) world.Weapon {
	prev := p.Weapon().Equip(w)
	p.equipped(w)
	return prev
}

func (p *Player) equipped(w world.Weapon) {
	if w == nil {
		return
	}
	p.log.Info("player equipped weapon", zap.String("weapon", w.Name()))
	if p.bus != nil {
		event.Emit(p.bus, world.WeaponEquipped{Owner: p.ID(), Weapon: w.Name()})
	}
}

// AddToInventory equips w when the hands are empty, otherwise stores it.
func (p *Player) AddToInventory(w world.Weapon) {
	if w == nil {
		return
	}
	if !p.Weapon().Has() {
		p.Equip(w)
		return
	}
	p.log.Debug("weapon added to inventory", zap.String("weapon", w.Name()))
	p.inventory = append(p.inventory, w)
}

// SwitchWeapon swaps the equipped weapon with inventory slot i. Out of range
// requests are ignored.
func (p *Player) SwitchWeapon(i int) {
	if i < 0 || i >= len(p.inventory) {
		return
	}
	next := p.inventory[i]
	prev := p.Weapon().Equip(next)
	if prev != nil {
		p.inventory[i] = prev
	} else {
		p.inventory = append(p.inventory[:i], p.inventory[i+1:]...)
	}
	p.equipped(next)
}

func (p *Player) Draw(c render.Canvas) {
	col := render.PlayerColors[p.n%len(render.PlayerColors)]
	pos := p.Position()
	c.Circle(pos, p.Radius(), col)

	aimDir, _ := geom.Direction(pos, p.aim)
	if w := p.Weapon().Get(); w != nil {
		w.Draw(c, pos, aimDir)
	}
	c.Line(pos, p.aim, render.ColorDarkGray)
	c.Bar(pos.Add(geom.V(0, -p.Radius()-15)), 50, p.health/p.maxHealth, render.ColorGreen)
}
