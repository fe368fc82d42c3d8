package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/ecs"
	"github.com/pushon/game/internal/core/event"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
)

// Caches are the derived, non-owning typed views over the live set. Kinds
// enlist themselves through Entity.Register; the Manager sweeps every cache
// in the same pass that erases dead entities.
type Caches struct {
	Players *ecs.Cache[Player]
	Enemies *ecs.Cache[Enemy]
}

var _ Host = (*Manager)(nil)

// FrameStats counts the work done by the last frame's manager phases.
type FrameStats struct {
	Flushed    int // pending → live
	Updated    int // Update calls
	Indexed    int // entities in the spatial hash
	Candidates int // broad-phase candidates returned
	Tests      int // narrow-phase circle tests
	Collisions int // OnCollision calls
	Removed    int // entities erased by the sweep
}

// Manager owns every dynamic entity. It is constructed explicitly and passed
// to whatever needs it (weapons, systems, the main loop).
//
// Lifecycle: QueueEntity (pending) → AddWaitingEntities (live) → Kill (dead,
// still reachable) → DeleteDeadEntities (erased). The live sequence is only
// mutated by AddWaitingEntities and DeleteDeadEntities, so no iteration is
// ever invalidated mid-update or mid-collision.
// Accessed only from the game loop goroutine, no locks.
type Manager struct {
	log *zap.Logger
	bus *event.Bus

	pool     *ecs.EntityPool
	slots    []Entity // slot index → live entity, for handle resolution
	entities []Entity // live set, canonical order
	pending  []Entity // FIFO of entities waiting for the next flush

	caches   Caches
	registry *ecs.Registry

	hash      *collision.SpatialHash[Entity]
	scratch   []Entity
	maxRadius float32

	stats FrameStats
}

// NewManager creates a manager whose broad phase uses the given cell size.
// bus may be nil, in which case no Removed events are emitted.
func NewManager(cellSize float32, bus *event.Bus, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		log:      log.Named("entities"),
		bus:      bus,
		pool:     ecs.NewEntityPool(),
		slots:    make([]Entity, 0, 256),
		entities: make([]Entity, 0, 256),
		pending:  make([]Entity, 0, 64),
		caches: Caches{
			Players: ecs.NewCache[Player]("players"),
			Enemies: ecs.NewCache[Enemy]("enemies"),
		},
		registry: ecs.NewRegistry(),
		hash:     collision.NewSpatialHash[Entity](cellSize),
		scratch:  make([]Entity, 0, 64),
	}
	m.registry.Register(m.caches.Players)
	m.registry.Register(m.caches.Enemies)
	return m
}

// QueueEntity schedules e for the next AddWaitingEntities. The handle is
// assigned immediately so weapons and pickups can reference it. A nil entity
// is ignored; queueing the same entity twice is ignored with a warning.
func (m *Manager) QueueEntity(e Entity) {
	if e == nil {
		return
	}
	b := e.base()
	if b == nil {
		return
	}
	if !b.id.IsZero() {
		m.log.Warn("entity queued twice", zap.Stringer("id", b.id), zap.String("kind", b.kind))
		return
	}
	b.id = m.pool.Create()
	m.pending = append(m.pending, e)
}

// AddWaitingEntities drains the pending queue into the live set in FIFO
// order and lets each entity enlist in its typed caches. Must run before any
// cache query of the frame.
func (m *Manager) AddWaitingEntities() {
	m.stats = FrameStats{}
	for i := 0; i < len(m.pending); i++ {
		e := m.pending[i]
		m.pending[i] = nil
		if e == nil {
			panic("world: nil entity in pending queue")
		}
		idx := int(e.ID().Index())
		for len(m.slots) <= idx {
			m.slots = append(m.slots, nil)
		}
		m.slots[idx] = e
		e.Register(&m.caches)
		m.entities = append(m.entities, e)
		m.stats.Flushed++
	}
	m.pending = m.pending[:0]
	if m.stats.Flushed > 0 {
		m.log.Debug("flushed pending entities", zap.Int("count", m.stats.Flushed), zap.Int("live", len(m.entities)))
	}
}

// UpdateEntities calls Update on every live entity that is still alive when
// reached. Entities killed earlier in the pass are skipped; entities queued
// during the pass wait for the next flush.
func (m *Manager) UpdateEntities(dt float32) {
	for _, e := range m.entities {
		if e.IsAlive() {
			e.Update(dt)
			m.stats.Updated++
		}
	}
}

// CheckCollisions runs the broad phase (rebuild the hash from alive live
// entities) and then the narrow phase. For each alive A, every alive
// candidate B that passes the mask filter and the circle test gets
// A.OnCollision(B) exactly once. B.OnCollision(A) happens when B is itself
// the outer subject, so both sides fire independently, in live-set order.
func (m *Manager) CheckCollisions() {
	m.hash.Clear()
	m.maxRadius = 0
	for _, e := range m.entities {
		if !e.IsAlive() {
			continue
		}
		m.hash.Insert(e)
		if r := e.Radius(); r > m.maxRadius {
			m.maxRadius = r
		}
		m.stats.Indexed++
	}

	for _, a := range m.entities {
		if !a.IsAlive() {
			continue
		}
		m.scratch = m.hash.AppendQuery(m.scratch[:0], a.Position(), m.queryRadius(a))
		m.stats.Candidates += len(m.scratch)
		for _, b := range m.scratch {
			if a == b || !b.IsAlive() {
				continue
			}
			if !a.ShouldCollideWith(b) {
				continue
			}
			m.stats.Tests++
			if a.CollidesWith(b) {
				a.OnCollision(b)
				m.stats.Collisions++
			}
		}
	}

	var zero Entity
	for i := range m.scratch {
		m.scratch[i] = zero
	}
}

// queryRadius is twice the entity radius, widened to radius plus the largest
// radius indexed this frame so a small entity next to a cell border still
// sees a large neighbour.
func (m *Manager) queryRadius(e Entity) float32 {
	r := e.Radius()
	q := r * 2
	if w := r + m.maxRadius; w > q {
		q = w
	}
	return q
}

// DeleteDeadEntities erases every dead entity from the live set and from all
// typed caches in one pass, keeping the order of survivors. Handles of erased
// entities stop resolving.
func (m *Manager) DeleteDeadEntities() int {
	kept := m.entities[:0]
	removed := 0
	for _, e := range m.entities {
		if e.IsAlive() {
			kept = append(kept, e)
			continue
		}
		id := e.ID()
		if idx := int(id.Index()); idx < len(m.slots) && m.slots[idx] == e {
			m.slots[idx] = nil
		}
		m.pool.Destroy(id)
		if m.bus != nil {
			event.Emit(m.bus, Removed{ID: id, Entity: e})
		}
		removed++
	}
	for i := len(kept); i < len(m.entities); i++ {
		m.entities[i] = nil
	}
	m.entities = kept

	if swept := m.registry.SweepAll(); removed > 0 || swept > 0 {
		m.log.Debug("swept dead entities", zap.Int("removed", removed), zap.Int("cache_entries", swept), zap.Int("live", len(m.entities)))
	}
	m.stats.Removed = removed
	return removed
}

// DrawEntities hands the canvas to every alive live entity.
func (m *Manager) DrawEntities(c render.Canvas) {
	for _, e := range m.entities {
		if e.IsAlive() {
			e.Draw(c)
		}
	}
}

// Resolve turns a handle into a live-set entity. Stale handles (erased, or
// slot reused) and pending entities do not resolve. The entity may already be
// dead but not yet swept: callers check IsAlive.
func (m *Manager) Resolve(id ecs.EntityID) (Entity, bool) {
	if !m.pool.Alive(id) {
		return nil, false
	}
	idx := int(id.Index())
	if idx >= len(m.slots) || m.slots[idx] == nil {
		return nil, false
	}
	return m.slots[idx], true
}

// ResolveAlive is Resolve plus the IsAlive check.
func (m *Manager) ResolveAlive(id ecs.EntityID) (Entity, bool) {
	e, ok := m.Resolve(id)
	if !ok || !e.IsAlive() {
		return nil, false
	}
	return e, true
}

// Players returns the player cache in registration order.
func (m *Manager) Players() []Player { return m.caches.Players.Items() }

// Enemies returns the enemy cache in registration order.
func (m *Manager) Enemies() []Enemy { return m.caches.Enemies.Items() }

// ClosestPlayer returns the alive player nearest to pos by squared distance.
// Ties go to the first player in cache order.
func (m *Manager) ClosestPlayer(pos geom.Vec2) (Player, bool) {
	var closest Player
	var best float32
	for _, p := range m.caches.Players.Items() {
		if !p.IsAlive() {
			continue
		}
		d := p.Position().DistSq(pos)
		if closest == nil || d < best {
			closest, best = p, d
		}
	}
	return closest, closest != nil
}

// Player returns the alive player whose layer carries bit 1<<n.
func (m *Manager) Player(n int) (Player, bool) {
	if n < 0 || n >= collision.MaxPlayers {
		return nil, false
	}
	target := collision.PlayerLayer(n)
	for _, p := range m.caches.Players.Items() {
		if p.IsAlive() && p.Layer().Has(target) {
			return p, true
		}
	}
	return nil, false
}

// Entities returns the live set in canonical order. Callers must not keep it
// across AddWaitingEntities or DeleteDeadEntities.
func (m *Manager) Entities() []Entity { return m.entities }

// Each applies fn to every live entity, dead-but-unswept ones included.
func (m *Manager) Each(fn func(Entity)) {
	for _, e := range m.entities {
		fn(e)
	}
}

func (m *Manager) Len() int            { return len(m.entities) }
func (m *Manager) PendingLen() int     { return len(m.pending) }
func (m *Manager) Stats() FrameStats   { return m.stats }
func (m *Manager) CellSize() float32   { return m.hash.CellSize() }
func (m *Manager) Bus() *event.Bus     { return m.bus }
func (m *Manager) Logger() *zap.Logger { return m.log }

func (m *Manager) String() string {
	return fmt.Sprintf("manager(live=%d pending=%d players=%d enemies=%d)",
		len(m.entities), len(m.pending), m.caches.Players.Len(), m.caches.Enemies.Len())
}
