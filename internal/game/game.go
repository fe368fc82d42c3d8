// Package game assembles a playable arena from configuration: tables,
// scripts, the entity manager, players and the frame systems.
package game

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
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/scripting"
	"github.com/pushon/game/internal/system"
	"github.com/pushon/game/internal/weapon"
	"github.com/pushon/game/internal/world"
)

// Game owns one run: the world, its systems and the optional Lua engine.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	bus      *event.Bus
	world    *world.Manager
	weapons  *data.WeaponTable
	enemies  *data.EnemyTable
	engine   *scripting.Engine
	factory  *weapon.Factory
	runner   *coresys.Runner
	director *system.Director
	score    *system.Score
	loot     *system.Loot
	players  []*actor.Player
}

// New builds a game. Player i is driven by ctrls[i]; players without a
// controller stand still. surface may be nil for runs nobody watches.
func New(cfg *config.Config, surface render.Surface, ctrls []actor.Controller, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{cfg: cfg, log: log, bus: event.NewBus()}

	var err error
	if g.weapons, err = loadWeapons(cfg.Data.Weapons); err != nil {
		return nil, fmt.Errorf("load weapons: %w", err)
	}
	if g.enemies, err = loadEnemies(cfg.Data.Enemies); err != nil {
		return nil, fmt.Errorf("load enemies: %w", err)
	}
	log.Info("tables loaded", zap.Int("weapons", g.weapons.Count()), zap.Int("enemies", g.enemies.Count()))

	if cfg.Scripts.Enabled {
		if g.engine, err = scripting.NewEngine(cfg.Scripts.Dir, log); err != nil {
			return nil, fmt.Errorf("load scripts: %w", err)
		}
		log.Info("lua engine ready", zap.String("dir", cfg.Scripts.Dir))
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	bounds := geom.V(cfg.Game.Width, cfg.Game.Height)

	g.world = world.NewManager(cfg.Game.CellSize, g.bus, log)
	g.factory = weapon.NewFactory(g.world, g.weapons, bounds, log)
	if g.engine != nil {
		g.factory.SetScaler(g.engine)
	}

	if err := g.populate(ctrls, bounds); err != nil {
		g.Close()
		return nil, err
	}
	// players must be live before the director looks for targets
	g.world.AddWaitingEntities()

	g.director, err = system.NewDirector(g.world, g.factory, g.enemies, cfg.Waves, rng, log)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.director.SetArena(bounds)
	if g.engine != nil {
		g.director.SetScript(g.engine)
		g.director.SetBrain(system.NewScriptBrain(g.engine))
	}
	g.score = system.NewScore(g.world)
	g.loot = system.NewLoot(g.world, cfg.Pickups.DropChance, rng, log)

	if surface == nil {
		surface = &render.Recorder{}
	}
	hud := system.NewRenderSystem(g.world, surface, bounds)
	hud.Track(g.director, g.score)

	g.runner = coresys.NewRunner()
	g.runner.Register(system.NewEventSystem(g.bus))
	g.runner.Register(g.director)
	g.runner.Register(system.NewSpawnSystem(g.world))
	g.runner.Register(system.NewUpdateSystem(g.world))
	g.runner.Register(system.NewCollideSystem(g.world))
	g.runner.Register(system.NewCleanupSystem(g.world, log))
	g.runner.Register(g.score)
	g.runner.Register(hud)

	return g, nil
}

func (g *Game) populate(ctrls []actor.Controller, bounds geom.Vec2) error {
	pc := g.cfg.Player
	center := bounds.Scale(0.5)
	for i := 0; i < pc.Count; i++ {
		p := actor.DefaultPlayerParams(i, center.Add(geom.V(float32(i)*60-float32(pc.Count-1)*30, 0)))
		p.Speed = pc.Speed
		p.Health = pc.Health
		p.Radius = pc.Radius
		p.ContactImmunity = pc.ContactImmunity
		p.Bounds = bounds

		var ctrl actor.Controller
		if i < len(ctrls) {
			ctrl = ctrls[i]
		}
		pl := actor.NewPlayer(p, ctrl, g.bus, g.log)
		if pc.StartWeapon != "" {
			w, err := g.factory.New(pc.StartWeapon)
			if err != nil {
				return fmt.Errorf("player start weapon: %w", err)
			}
			pl.Equip(w)
		}
		g.players = append(g.players, pl)
		g.world.QueueEntity(pl)
	}

	for _, ps := range g.cfg.Pickups.Initial {
		w, err := g.factory.New(ps.Weapon)
		if err != nil {
			return fmt.Errorf("pickup: %w", err)
		}
		g.world.QueueEntity(actor.NewPickup(g.world, geom.V(ps.X, ps.Y), w, g.log))
	}

	for _, hs := range g.cfg.Hazards {
		g.world.QueueEntity(actor.NewHazard(geom.V(hs.X, hs.Y), hs.Radius, hs.DPS, hs.Lifetime))
	}
	return nil
}

func loadWeapons(path string) (*data.WeaponTable, error) {
	if path == "" {
		return data.NewWeaponTable(data.BuiltinWeapons())
	}
	return data.LoadWeaponTable(path)
}

func loadEnemies(path string) (*data.EnemyTable, error) {
	if path == "" {
		return data.NewEnemyTable(data.BuiltinEnemies())
	}
	return data.LoadEnemyTable(path)
}

// Step runs one frame. Long frames are clamped so a stall does not tunnel
// entities through each other.
func (g *Game) Step(dt time.Duration) {
	if limit := g.cfg.Game.MaxFrameDT; limit > 0 && dt > limit {
		dt = limit
	}
	g.runner.Tick(dt)
}

// Over reports whether every player is gone.
func (g *Game) Over() bool { return g.score.GameOver() }

func (g *Game) World() *world.Manager      { return g.world }
func (g *Game) Director() *system.Director { return g.director }
func (g *Game) Score() *system.Score       { return g.score }
func (g *Game) Loot() *system.Loot         { return g.loot }
func (g *Game) Players() []*actor.Player   { return g.players }
func (g *Game) Frames() uint64             { return g.runner.Frames() }
func (g *Game) Factory() *weapon.Factory   { return g.factory }

// Summary logs the outcome of the run.
func (g *Game) Summary() {
	g.log.Info("run finished",
		zap.Uint64("frames", g.Frames()),
		zap.Int("wave", g.director.Wave()),
		zap.Int("kills", g.score.Kills()),
		zap.Int("points", g.score.Points()),
		zap.Int("drops", g.loot.Dropped()),
		zap.Duration("survived", g.score.Elapsed()),
	)
	fields := make([]zap.Field, 0, len(coresys.Phases))
	for _, p := range coresys.Phases {
		fields = append(fields, zap.Duration(p.String(), g.runner.Spent(p)))
	}
	g.log.Debug("phase time", fields...)
}

func (g *Game) Close() {
	if g.engine != nil {
		g.engine.Close()
		g.engine = nil
	}
}
