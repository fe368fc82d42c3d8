package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyTemplate holds static data for an enemy type loaded from YAML.
type EnemyTemplate struct {
	Name          string   `yaml:"name"`
	Health        float32  `yaml:"health"`
	Speed         float32  `yaml:"speed"`
	Radius        float32  `yaml:"radius"`
	ContactDamage float32  `yaml:"contact_damage"`
	StopDistance  float32  `yaml:"stop_distance"`
	AttackRange   float32  `yaml:"attack_range"`
	HitsEnemies   bool     `yaml:"can_hit_enemies"` // accepts other enemies' attacks
	Bounty        int      `yaml:"bounty"`
	Weapons       []string `yaml:"weapons"` // random pool; empty = any weapon
}

type enemyListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// EnemyTable holds enemy templates by name, in file order.
type EnemyTable struct {
	templates map[string]*EnemyTemplate
	names     []string
}

// LoadEnemyTable loads enemy templates from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy_list: %w", err)
	}
	var f enemyListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse enemy_list: %w", err)
	}
	return NewEnemyTable(f.Enemies)
}

// NewEnemyTable fills defaults, validates and indexes the given templates.
func NewEnemyTable(list []EnemyTemplate) (*EnemyTable, error) {
	t := &EnemyTable{templates: make(map[string]*EnemyTemplate, len(list))}
	for i := range list {
		e := list[i]
		if e.Name == "" {
			return nil, fmt.Errorf("enemy %d: missing name", i)
		}
		if _, dup := t.templates[e.Name]; dup {
			return nil, fmt.Errorf("enemy %q: duplicate name", e.Name)
		}
		e.fillDefaults()
		if e.Health <= 0 || e.Radius < 0 || e.Speed < 0 {
			return nil, fmt.Errorf("enemy %q: health must be positive, radius and speed non-negative", e.Name)
		}
		t.templates[e.Name] = &e
		t.names = append(t.names, e.Name)
	}
	return t, nil
}

func (e *EnemyTemplate) fillDefaults() {
	def := BuiltinEnemies()[0]
	if e.Health == 0 {
		e.Health = def.Health
	}
	if e.Speed == 0 {
		e.Speed = def.Speed
	}
	if e.Radius == 0 {
		e.Radius = def.Radius
	}
	if e.StopDistance == 0 {
		e.StopDistance = def.StopDistance
	}
	if e.AttackRange == 0 {
		e.AttackRange = def.AttackRange
	}
}

// Get returns an enemy template by name, or nil if not found.
func (t *EnemyTable) Get(name string) *EnemyTemplate {
	return t.templates[name]
}

// Names returns template names in file order.
func (t *EnemyTable) Names() []string {
	return t.names
}

// Count returns the number of loaded templates.
func (t *EnemyTable) Count() int {
	return len(t.templates)
}

// BuiltinEnemies is the stock roster.
func BuiltinEnemies() []EnemyTemplate {
	return []EnemyTemplate{
		{
			Name:          "grunt",
			Health:        100,
			Speed:         120,
			Radius:        15,
			ContactDamage: 10,
			StopDistance:  5,
			AttackRange:   200,
			Bounty:        100,
		},
	}
}
