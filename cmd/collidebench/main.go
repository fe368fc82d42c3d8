// Collidebench floods an arena with drifting bodies and measures the
// broad/narrow phase.
//
// Profiling:
//
//	go build ./cmd/collidebench
//	./collidebench -profile mem
//	go tool pprof -http=":8000" ./collidebench mem.pprof
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/pushon/game/internal/core/collision"
	"github.com/pushon/game/internal/core/event"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/world"
)

// drifter bounces around the arena. Half are enemies, half are player
// attacks, so both one- and two-sided pairs occur.
type drifter struct {
	*world.Base
	vel    geom.Vec2
	bounds geom.Vec2
	hits   *int
}

func (d *drifter) Update(dt float32) {
	p := d.Position().Add(d.vel.Scale(dt))
	if p.X < 0 || p.X > d.bounds.X {
		d.vel.X = -d.vel.X
	}
	if p.Y < 0 || p.Y > d.bounds.Y {
		d.vel.Y = -d.vel.Y
	}
	d.SetPosition(p.Clamp(geom.Vec2{}, d.bounds))
}

func (d *drifter) OnCollision(world.Entity) { *d.hits++ }

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	entities := flag.Int("entities", 2000, "bodies in the arena")
	frames := flag.Int("frames", 600, "frames to simulate")
	cell := flag.Float64("cell", 100, "spatial hash cell size")
	prof := flag.String("profile", "", "cpu or mem")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *prof)
	}

	bounds := geom.V(1280, 720)
	m := world.NewManager(float32(*cell), event.NewBus(), log)
	rng := rand.New(rand.NewSource(1))
	hits := 0
	for i := 0; i < *entities; i++ {
		layer, mask := collision.LayerEnemy, collision.LayerPlayerAttack
		if i%2 == 1 {
			layer, mask = collision.LayerPlayerAttack, collision.LayerEnemy
		}
		pos := geom.V(rng.Float32()*bounds.X, rng.Float32()*bounds.Y)
		m.QueueEntity(&drifter{
			Base:   world.NewBase("drifter", pos, 3+rng.Float32()*12, layer, mask, world.NoOwner),
			vel:    geom.FromAngle(rng.Float32() * 360).Scale(50 + rng.Float32()*150),
			bounds: bounds,
			hits:   &hits,
		})
	}

	var total time.Duration
	var candidates, tests int
	for f := 0; f < *frames; f++ {
		start := time.Now()
		m.AddWaitingEntities()
		m.UpdateEntities(1.0 / 60)
		m.CheckCollisions()
		m.DeleteDeadEntities()
		total += time.Since(start)

		st := m.Stats()
		candidates += st.Candidates
		tests += st.Tests
	}

	n := *frames
	if n == 0 {
		n = 1
	}
	log.Info("collision benchmark",
		zap.Int("entities", m.Len()),
		zap.Int("frames", *frames),
		zap.Float64("cell", *cell),
		zap.Duration("per_frame", total/time.Duration(n)),
		zap.Int("candidates_per_frame", candidates/n),
		zap.Int("tests_per_frame", tests/n),
		zap.Int("callbacks", hits),
	)
	return nil
}
