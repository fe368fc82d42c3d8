package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/pushon/game/internal/core/system"
	"github.com/pushon/game/internal/world"
)

// CleanupSystem erases dead entities at frame end and drops them from every
// typed cache. Phase 4 (Cleanup).
type CleanupSystem struct {
	world *world.Manager
	log   *zap.Logger
}

func NewCleanupSystem(m *world.Manager, log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupSystem{world: m, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if n := s.world.DeleteDeadEntities(); n > 0 {
		s.log.Debug("entities removed", zap.Int("count", n), zap.Int("live", s.world.Len()))
	}
}
