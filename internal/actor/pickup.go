package actor

import (
	"math"

	"go.uber.org/zap"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

const KindPickup = "weapon_pickup"

// Pickup is a weapon lying on the floor. A player standing on it swaps it
// for the weapon in hand by interacting; the old weapon drops in its place.
type Pickup struct {
	*world.Base
	host   world.Host
	bob    float32
	nearby ecs.EntityID
	log    *zap.Logger
}

func NewPickup(host world.Host, pos geom.Vec2, w world.Weapon, log *zap.Logger) *Pickup {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pickup{
		Base: world.NewBase(KindPickup, pos, 15, collision.LayerPickup, collision.LayerAllPlayers, world.NoOwner),
		host: host,
		log:  log,
	}
	p.Weapon().Equip(w)
	return p
}

// Nearby is the player that touched the pickup during the last collision pass.
func (p *Pickup) Nearby() ecs.EntityID { return p.nearby }

func (p *Pickup) Update(dt float32) {
	p.bob += dt * 2
	if !p.nearby.IsZero() {
		if e, ok := p.host.ResolveAlive(p.nearby); ok {
			if pl, ok := e.(*Player); ok && pl.Interacting() {
				p.GiveTo(pl)
			}
		}
	}
	// set again by OnCollision while the player stays on top
	p.nearby = world.NoOwner
}

func (p *Pickup) OnCollision(other world.Entity) {
	if !p.IsAlive() || !p.Weapon().Has() {
		return
	}
	if pl, ok := other.(*Player); ok {
		p.nearby = pl.ID()
	}
}

// GiveTo moves the weapon into the player's hands, drops whatever the player
// held as a new pickup at the player's feet and kills this pickup.
func (p *Pickup) GiveTo(pl *Player) {
	if !p.IsAlive() || !p.Weapon().Has() || pl == nil {
		return
	}
	name := p.Weapon().Get().Name()
	dropped := world.TransferWeapon(p.Weapon(), pl.Weapon())
	pl.equipped(pl.Weapon().Get())
	if dropped != nil {
		p.log.Info("weapon dropped", zap.String("weapon", dropped.Name()))
		p.host.QueueEntity(NewPickup(p.host, pl.Position(), dropped, p.log))
	}
	p.log.Info("weapon picked up", zap.String("weapon", name), zap.Int("player", pl.Number()))
	p.Kill()
}

func (p *Pickup) Draw(c render.Canvas) {
	w := p.Weapon().Get()
	if w == nil {
		return
	}
	pos := p.Position().Add(geom.V(0, float32(math.Sin(float64(p.bob)))*5))
	c.Circle(pos, p.Radius(), render.ColorGold)
	c.Text(pos.Add(geom.V(0, 20)), w.Name(), render.ColorWhite)
	if !p.nearby.IsZero() {
		c.Text(pos.Add(geom.V(0, -30)), "Press E", render.ColorYellow)
	}
}
