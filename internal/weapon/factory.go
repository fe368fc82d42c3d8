// Package weapon implements the concrete weapons (Gun, Sword) and the
// entities they spawn (bullets, sword swings and slams).
package weapon

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/pushon/game/internal/data"
	"github.com/pushon/game/internal/geom"
	"github.com/pushon/game/internal/world"
)

// DamageScaler adjusts base damage at fire time (wave scaling, difficulty).
type DamageScaler interface {
	ScaleDamage(weapon string, base float32) float32
}

func scaled(s DamageScaler, name string, base float32) float32 {
	if s == nil {
		return base
	}
	if d := s.ScaleDamage(name, base); d >= 0 {
		return d
	}
	return 0
}

// Factory builds weapons from templates. Everything it creates shares the
// same host (entity manager) and world bounds.
type Factory struct {
	host   world.Host
	table  *data.WeaponTable
	bounds geom.Vec2
	scaler DamageScaler
	log    *zap.Logger
}

func NewFactory(host world.Host, table *data.WeaponTable, bounds geom.Vec2, log *zap.Logger) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{host: host, table: table, bounds: bounds, log: log}
}

// SetScaler installs the damage scaler used by weapons created afterwards.
func (f *Factory) SetScaler(s DamageScaler) { f.scaler = s }

// New builds the weapon named by a template.
func (f *Factory) New(name string) (world.Weapon, error) {
	t := f.table.Get(name)
	if t == nil {
		return nil, fmt.Errorf("unknown weapon %q", name)
	}
	switch t.Kind {
	case data.KindGun:
		g := NewGun(f.host, *t, f.bounds)
		g.scale = f.scaler
		return g, nil
	case data.KindSword:
		s := NewSword(f.host, *t)
		s.scale = f.scaler
		s.log = f.log
		return s, nil
	}
	return nil, fmt.Errorf("weapon %q: unknown kind %q", name, t.Kind)
}

// Random builds a weapon picked uniformly from pool, or from the whole table
// when pool is empty.
func (f *Factory) Random(rng *rand.Rand, pool []string) (world.Weapon, error) {
	if len(pool) == 0 {
		pool = f.table.Names()
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("no weapons to pick from")
	}
	name := pool[rng.Intn(len(pool))]
	f.log.Debug("random weapon", zap.String("weapon", name))
	return f.New(name)
}

// Names lists the weapons this factory can build.
func (f *Factory) Names() []string { return f.table.Names() }
