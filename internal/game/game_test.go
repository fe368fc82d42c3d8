package game

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushon/game/internal/actor"
	"github.com/pushon/game/internal/config"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/render"
	"github.com/pushon/game/internal/world"
)

// autopilot aims at the closest enemy and holds the trigger.
type autopilot struct {
	g *Game
}

func (a *autopilot) Move() geom.Vec2 { return geom.Vec2{} }
func (a *autopilot) Firing() bool    { return len(a.g.World().Enemies()) > 0 }
func (a *autopilot) Interact() bool  { return false }

func (a *autopilot) Switch() (int, bool) { return 0, false }

func (a *autopilot) Aim() geom.Vec2 {
	from := a.g.Players()[0].Position()
	best, bestD := from, float32(-1)
	for _, e := range a.g.World().Enemies() {
		if d := e.Position().DistSq(from); bestD < 0 || d < bestD {
			best, bestD = e.Position(), d
		}
	}
	return best
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Game.Seed = 7
	return cfg
}

func count(m *world.Manager, kind string) int {
	n := 0
	m.Each(func(e world.Entity) {
		if e.Kind() == kind {
			n++
		}
	})
	return n
}

func TestHeadlessRun(t *testing.T) {
	rec := &render.Recorder{}
	g, err := New(testConfig(), rec, nil, nil)
	require.NoError(t, err)
	defer g.Close()

	require.Len(t, g.Players(), 1)
	assert.Equal(t, 2, count(g.World(), actor.KindPickup))

	for i := 0; i < 120; i++ {
		g.Step(16 * time.Millisecond)
	}
	assert.Equal(t, uint64(120), g.Frames())
	assert.Equal(t, 120, rec.Frames)
	assert.Equal(t, 1, g.Director().Wave())
	assert.Len(t, g.World().Enemies(), 1)
	assert.Contains(t, strings.Join(rec.Texts(), "|"), "Wave 1")
}

func TestPlayerClearsWaves(t *testing.T) {
	cfg := testConfig()
	cfg.Player.StartWeapon = "Gun"
	cfg.Waves.RandomWeapons = []string{"Sword"}
	cfg.Waves.Delay = 0
	cfg.Pickups.DropChance = 1

	ap := &autopilot{}
	g, err := New(cfg, nil, []actor.Controller{ap}, nil)
	require.NoError(t, err)
	defer g.Close()
	ap.g = g

	for i := 0; i < 300 && g.Score().Kills() == 0; i++ {
		g.Step(16 * time.Millisecond)
	}
	require.Positive(t, g.Score().Kills())
	assert.Equal(t, 100, g.Score().PlayerPoints(g.Players()[0].ID()))

	// the kill is dispatched next frame: the director restarts and the
	// sword drops where the enemy fell
	g.Step(16 * time.Millisecond)
	g.Step(16 * time.Millisecond)
	assert.GreaterOrEqual(t, g.Director().Wave(), 2)
	assert.Equal(t, 1, g.Loot().Dropped())
	assert.Equal(t, 3, count(g.World(), actor.KindPickup))
	assert.False(t, g.Over())
}

func TestLongFramesAreClamped(t *testing.T) {
	cfg := testConfig()
	cfg.Waves.SpawnPoints = []config.Point{{X: 640, Y: 100}}
	g, err := New(cfg, nil, nil, nil)
	require.NoError(t, err)
	defer g.Close()

	g.Step(16 * time.Millisecond) // spawn
	e := g.World().Enemies()[0].(*actor.Enemy)
	start := e.Position()
	g.Step(10 * time.Second)
	moved := e.Position().Sub(start).Len()
	assert.InDelta(t, 120*0.1, moved, 0.5, "speed x max frame")
}

func TestShippedContent(t *testing.T) {
	cfg := testConfig()
	root := filepath.Join("..", "..")
	cfg.Data.Weapons = filepath.Join(root, "data", "yaml", "weapons.yaml")
	cfg.Data.Enemies = filepath.Join(root, "data", "yaml", "enemies.yaml")
	cfg.Scripts.Enabled = true
	cfg.Scripts.Dir = filepath.Join(root, "scripts")
	cfg.Player.Count = 2

	g, err := New(cfg, nil, nil, nil)
	require.NoError(t, err)
	defer g.Close()

	require.Len(t, g.World().Players(), 2)
	assert.NotEqual(t, g.Players()[0].Position(), g.Players()[1].Position())
	for i := 0; i < 10; i++ {
		g.Step(16 * time.Millisecond)
	}
	assert.Equal(t, 1, g.Director().Wave())
	assert.NotEmpty(t, g.World().Enemies())
}

func TestNewErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Weapons = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg, nil, nil, nil)
	assert.ErrorContains(t, err, "load weapons")

	cfg = testConfig()
	cfg.Player.StartWeapon = "Bazooka"
	_, err = New(cfg, nil, nil, nil)
	assert.ErrorContains(t, err, "player start weapon")

	cfg = testConfig()
	cfg.Waves.Enemy = "dragon"
	_, err = New(cfg, nil, nil, nil)
	assert.ErrorContains(t, err, "dragon")
}
