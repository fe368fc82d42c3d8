package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput       Phase = iota // 0: dispatch last frame's events, AI targeting, wave spawns
	PhaseSpawn                    // 1: promote pending entities to live
	PhaseUpdate                   // 2: entity simulation, weapon fire
	PhaseCollide                  // 3: broad + narrow phase, collision callbacks
	PhaseCleanup                  // 4: sweep dead entities out of every cache
	PhasePostCleanup              // 5: wave bookkeeping, scoring
	PhaseOutput                   // 6: draw

	phaseCount = iota
)

// Phases lists every phase in execution order.
var Phases = [...]Phase{PhaseInput, PhaseSpawn, PhaseUpdate, PhaseCollide, PhaseCleanup, PhasePostCleanup, PhaseOutput}

var phaseNames = [...]string{"input", "spawn", "update", "collide", "cleanup", "post_cleanup", "output"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is one step of the frame pipeline.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
