package system

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pushon/game/internal/actor"
	"github.com/pushon/game/internal/config"
	"github.com/pushon/game/internal/core/event"
	coresys "github.com/pushon/game/internal/core/system"
	"github.com/pushon/game/internal/data"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/weapon"
	"github.com/pushon/game/internal/world"
)

// WaveScript lets scripts own the wave progression.
type WaveScript interface {
	// WaveSize returns the enemy count of a wave, or < 1 for no opinion.
	WaveSize(wave int) int
	SetWave(n int)
}

// Director points every enemy at its closest player and starts a new wave
// once the arena is clear. Phase 0 (Input).
type Director struct {
	world   *world.Manager
	factory *weapon.Factory
	tmpl    data.EnemyTemplate
	cfg     config.WavesConfig
	script  WaveScript
	brain   actor.Brain
	arena   geom.Vec2
	rng     *rand.Rand
	log     *zap.Logger

	wave int
	wait float32
}

func NewDirector(m *world.Manager, f *weapon.Factory, enemies *data.EnemyTable, cfg config.WavesConfig, rng *rand.Rand, log *zap.Logger) (*Director, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := enemies.Get(cfg.Enemy)
	if t == nil {
		return nil, fmt.Errorf("waves: unknown enemy template %q", cfg.Enemy)
	}
	if len(cfg.SpawnPoints) == 0 {
		return nil, fmt.Errorf("waves: no spawn points")
	}
	return &Director{
		world:   m,
		factory: f,
		tmpl:    *t,
		cfg:     cfg,
		rng:     rng,
		log:     log,
	}, nil
}

func (d *Director) SetScript(s WaveScript) { d.script = s }

// SetBrain installs the brain given to enemies spawned afterwards.
func (d *Director) SetBrain(b actor.Brain) { d.brain = b }

// SetArena keeps enemies spawned afterwards inside [0,size].
func (d *Director) SetArena(size geom.Vec2) { d.arena = size }

// Wave is the number of the current wave; 0 before the first spawn.
func (d *Director) Wave() int { return d.wave }

func (d *Director) Phase() coresys.Phase { return coresys.PhaseInput }

func (d *Director) Update(dt time.Duration) {
	d.retarget()
	if len(d.world.Enemies()) > 0 {
		return
	}
	if d.wave > 0 {
		d.wait += seconds(dt)
		if d.wait < d.cfg.Delay {
			return
		}
	}
	d.wait = 0
	d.startWave()
}

func (d *Director) retarget() {
	for _, e := range d.world.Enemies() {
		if !e.IsAlive() {
			continue
		}
		if p, ok := d.world.ClosestPlayer(e.Position()); ok {
			e.SetTarget(p.Position())
		}
	}
}

func (d *Director) startWave() {
	d.wave++
	if d.script != nil {
		d.script.SetWave(d.wave)
	}
	n := d.size(d.wave)
	pool := d.cfg.RandomWeapons
	if len(pool) == 0 {
		pool = d.tmpl.Weapons
	}
	for i := 0; i < n; i++ {
		e := actor.NewEnemy(d.tmpl, d.spawnPoint(i), d.brain, d.log)
		e.SetBounds(d.arena)
		if w, err := d.factory.Random(d.rng, pool); err != nil {
			d.log.Warn("enemy spawned unarmed", zap.Error(err))
		} else {
			e.Equip(w)
		}
		if p, ok := d.world.ClosestPlayer(e.Position()); ok {
			e.SetTarget(p.Position())
		}
		d.world.QueueEntity(e)
	}
	event.Emit(d.world.Bus(), world.WaveStarted{Wave: d.wave, Count: n})
	d.log.Info("wave started", zap.Int("wave", d.wave), zap.Int("enemies", n))
}

func (d *Director) size(wave int) int {
	if d.script != nil {
		if n := d.script.WaveSize(wave); n > 0 {
			return n
		}
	}
	n := d.cfg.BaseCount + d.cfg.Growth*(wave-1)
	if d.cfg.MaxCount > 0 && n > d.cfg.MaxCount {
		n = d.cfg.MaxCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// spawnPoint cycles through the configured points; enemies sharing a point
// are fanned out on a spiral so they do not start stacked.
func (d *Director) spawnPoint(i int) geom.Vec2 {
	pts := d.cfg.SpawnPoints
	p := pts[i%len(pts)]
	pos := geom.V(p.X, p.Y)
	ring := i / len(pts)
	if ring == 0 {
		return pos
	}
	return pos.Add(geom.FromAngle(float32(ring) * 137.5).Scale(float32(ring) * 2 * d.tmpl.Radius))
}
