package actor

import (
	"go.uber.org/zap"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/data"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindEnemy = "enemy"

// Sense is what an enemy knows when it decides.
type Sense struct {
	ID          ecs.EntityID
	Template    string
	Position    geom.Vec2
	Target      geom.Vec2
	TargetDist  float32
	Health      float32
	MaxHealth   float32
	Speed       float32
	AttackRange float32
	HasWeapon   bool
	CanFire     bool
}

// Intent is a brain's decision for one frame.
type Intent struct {
	Move     geom.Vec2 // direction; zero holds position
	Attack   bool
	AttackAt geom.Vec2
}

// Brain decides an enemy's frame. ok=false falls back to the built-in chase.
type Brain interface {
	Decide(s Sense) (Intent, bool)
}

// Enemy chases its target and attacks with whatever weapon it carries.
type Enemy struct {
	*world.Base
	tmpl      data.EnemyTemplate
	health    float32
	target    geom.Vec2
	brain     Brain
	bounds    geom.Vec2 // zero = unbounded
	lastHitBy ecs.EntityID
	log       *zap.Logger
}

func NewEnemy(t data.EnemyTemplate, pos geom.Vec2, brain Brain, log *zap.Logger) *Enemy {
	if log == nil {
		log = zap.NewNop()
	}
	// players are in the mask so contact damage can be dispatched to them
	mask := collision.LayerAllPlayers | collision.LayerPlayerAttack | collision.LayerNeutralHazard
	if t.HitsEnemies {
		mask |= collision.LayerEnemyAttack
	}
	return &Enemy{
		Base:   world.NewBase(KindEnemy, pos, t.Radius, collision.LayerEnemy, mask, world.NoOwner),
		tmpl:   t,
		health: t.Health,
		target: pos,
		brain:  brain,
		log:    log,
	}
}

func (e *Enemy) Register(c *world.Caches) { c.Enemies.Add(e) }

func (e *Enemy) SetTarget(p geom.Vec2)   { e.target = p }
func (e *Enemy) SetBounds(b geom.Vec2)   { e.bounds = b }
func (e *Enemy) Target() geom.Vec2       { return e.target }
func (e *Enemy) Health() float32         { return e.health }
func (e *Enemy) MaxHealth() float32      { return e.tmpl.Health }
func (e *Enemy) ContactDamage() float32  { return e.tmpl.ContactDamage }
func (e *Enemy) Bounty() int             { return e.tmpl.Bounty }
func (e *Enemy) Template() string        { return e.tmpl.Name }
func (e *Enemy) LastHitBy() ecs.EntityID { return e.lastHitBy }
func (e *Enemy) Equip(w world.Weapon) world.Weapon {
	return e.Weapon().Equip(w)
}

func (e *Enemy) Update(dt float32) {
	dir, dist := geom.Direction(e.Position(), e.target)
	w := e.Weapon().Get()

	intent, ok := e.think(dist, w)
	if !ok {
		intent = e.chase(dir, dist, w)
	}
	if !intent.Move.IsZero() {
		e.move(intent.Move.Normalize().Scale(e.tmpl.Speed * dt))
	}
	if w != nil {
		w.Update(e, dt)
		if intent.Attack && w.CanFire() {
			w.Fire(e, intent.AttackAt)
		}
	}
}

// move keeps the enemy inside the arena, if it has one, like the player.
func (e *Enemy) move(delta geom.Vec2) {
	pos := e.Position().Add(delta)
	if !e.bounds.IsZero() {
		r := e.Radius()
		pos = pos.Clamp(geom.V(r, r), geom.V(e.bounds.X-r, e.bounds.Y-r))
	}
	e.SetPosition(pos)
}

func (e *Enemy) think(dist float32, w world.Weapon) (Intent, bool) {
	if e.brain == nil {
		return Intent{}, false
	}
	return e.brain.Decide(Sense{
		ID:          e.ID(),
		Template:    e.tmpl.Name,
		Position:    e.Position(),
		Target:      e.target,
		TargetDist:  dist,
		Health:      e.health,
		MaxHealth:   e.tmpl.Health,
		Speed:       e.tmpl.Speed,
		AttackRange: e.tmpl.AttackRange,
		HasWeapon:   w != nil,
		CanFire:     w != nil && w.CanFire(),
	})
}

// chase walks towards the target until within stop distance and attacks
// once inside attack range.
func (e *Enemy) chase(dir geom.Vec2, dist float32, w world.Weapon) Intent {
	var in Intent
	if dist > e.tmpl.StopDistance {
		in.Move = dir
	}
	if w != nil && dist < e.tmpl.AttackRange {
		in.Attack = true
		in.AttackAt = e.target
	}
	return in
}

func (e *Enemy) TakeDamage(amount float32, from ecs.EntityID) {
	if !e.IsAlive() || amount <= 0 {
		return
	}
	e.lastHitBy = from
	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		e.Kill()
		e.log.Debug("enemy killed", zap.Stringer("id", e.ID()), zap.Stringer("by", from))
	}
}

func (e *Enemy) Draw(c render.Canvas) {
	pos := e.Position()
	c.Circle(pos, e.Radius(), render.ColorRed)
	if w := e.Weapon().Get(); w != nil {
		aimDir, _ := geom.Direction(pos, e.target)
		w.Draw(c, pos, aimDir)
	}
	c.Bar(pos.Add(geom.V(0, -e.Radius()-10)), 40, e.health/e.tmpl.Health, render.ColorRed)
}
