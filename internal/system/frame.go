package system

import (
	"time"

	"github.com/pushon/game/internal/core/event"
	coresys "github.com/pushon/game/internal/core/system"
	"github.com/pushon/game/internal/world"
)

func seconds(dt time.Duration) float32 { return float32(dt.Seconds()) }

// EventSystem delivers last frame's events. Register it before any other
// input-phase system so they see a settled world. Phase 0 (Input).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem { return &EventSystem{bus: bus} }

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// SpawnSystem promotes entities queued since the last flush. Phase 1 (Spawn).
type SpawnSystem struct {
	world *world.Manager
}

func NewSpawnSystem(m *world.Manager) *SpawnSystem { return &SpawnSystem{world: m} }

func (s *SpawnSystem) Phase() coresys.Phase   { return coresys.PhaseSpawn }
func (s *SpawnSystem) Update(_ time.Duration) { s.world.AddWaitingEntities() }

// UpdateSystem advances every live entity. Phase 2 (Update).
type UpdateSystem struct {
	world *world.Manager
}

func NewUpdateSystem(m *world.Manager) *UpdateSystem { return &UpdateSystem{world: m} }

func (s *UpdateSystem) Phase() coresys.Phase    { return coresys.PhaseUpdate }
func (s *UpdateSystem) Update(dt time.Duration) { s.world.UpdateEntities(seconds(dt)) }

// CollideSystem runs the broad and narrow phase. Phase 3 (Collide).
type CollideSystem struct {
	world *world.Manager
}

func NewCollideSystem(m *world.Manager) *CollideSystem { return &CollideSystem{world: m} }

func (s *CollideSystem) Phase() coresys.Phase   { return coresys.PhaseCollide }
func (s *CollideSystem) Update(_ time.Duration) { s.world.CheckCollisions() }
