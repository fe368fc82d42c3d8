package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeaponKind selects the behavior a template is built into.
type WeaponKind string

const (
	KindGun   WeaponKind = "gun"
	KindSword WeaponKind = "sword"
)

// ComboStyle is the hit-volume a sword combo step spawns.
type ComboStyle string

const (
	StyleSwing ComboStyle = "swing" // horizontal arc, cubic in-out
	StyleSlam  ComboStyle = "slam"  // overhead wind-up then crash
)

// ComboStep is one stage of a melee combo. Angles are degrees relative to the
// aim direction.
type ComboStep struct {
	Style      ComboStyle `yaml:"style"`
	Duration   float32    `yaml:"duration"`
	StartAngle float32    `yaml:"start_angle"`
	EndAngle   float32    `yaml:"end_angle"`
	Damage     float32    `yaml:"damage"`
	Range      float32    `yaml:"range"`
}

// WeaponTemplate holds static data for a weapon type loaded from YAML.
type WeaponTemplate struct {
	Name     string     `yaml:"name"`
	Kind     WeaponKind `yaml:"kind"`
	Cooldown float32    `yaml:"cooldown"`
	Damage   float32    `yaml:"damage"`

	// gun
	ProjectileSpeed  float32 `yaml:"projectile_speed"`
	ProjectileRadius float32 `yaml:"projectile_radius"`
	MuzzleOffset     float32 `yaml:"muzzle_offset"`

	// sword
	Range       float32     `yaml:"range"`
	ComboWindow float32     `yaml:"combo_window"`
	Combo       []ComboStep `yaml:"combo"`
}

type weaponListFile struct {
	Weapons []WeaponTemplate `yaml:"weapons"`
}

// WeaponTable holds weapon templates by name, in file order.
type WeaponTable struct {
	templates map[string]*WeaponTemplate
	names     []string
}

// LoadWeaponTable loads weapon templates from a YAML file.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapon_list: %w", err)
	}
	var f weaponListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse weapon_list: %w", err)
	}
	return NewWeaponTable(f.Weapons)
}

// NewWeaponTable validates and indexes the given templates.
func NewWeaponTable(list []WeaponTemplate) (*WeaponTable, error) {
	t := &WeaponTable{templates: make(map[string]*WeaponTemplate, len(list))}
	for i := range list {
		w := list[i]
		if err := w.validate(); err != nil {
			return nil, fmt.Errorf("weapon %q: %w", w.Name, err)
		}
		if _, dup := t.templates[w.Name]; dup {
			return nil, fmt.Errorf("weapon %q: duplicate name", w.Name)
		}
		t.templates[w.Name] = &w
		t.names = append(t.names, w.Name)
	}
	return t, nil
}

func (w *WeaponTemplate) validate() error {
	if w.Name == "" {
		return fmt.Errorf("missing name")
	}
	if w.Cooldown < 0 {
		return fmt.Errorf("negative cooldown %v", w.Cooldown)
	}
	switch w.Kind {
	case KindGun:
		if w.ProjectileSpeed <= 0 {
			return fmt.Errorf("projectile_speed must be positive")
		}
		if w.ProjectileRadius < 0 {
			return fmt.Errorf("negative projectile_radius")
		}
	case KindSword:
		if len(w.Combo) == 0 {
			return fmt.Errorf("sword needs at least one combo step")
		}
		for i, step := range w.Combo {
			if step.Style != StyleSwing && step.Style != StyleSlam {
				return fmt.Errorf("combo step %d: unknown style %q", i, step.Style)
			}
			if step.Range < 0 || step.Duration <= 0 {
				return fmt.Errorf("combo step %d: range must be >= 0 and duration > 0", i)
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", w.Kind)
	}
	return nil
}

// Get returns a weapon template by name, or nil if not found.
func (t *WeaponTable) Get(name string) *WeaponTemplate {
	return t.templates[name]
}

// Names returns template names in file order.
func (t *WeaponTable) Names() []string {
	return t.names
}

// Count returns the number of loaded templates.
func (t *WeaponTable) Count() int {
	return len(t.templates)
}

// BuiltinWeapons is the stock arsenal: a rapid-fire gun and a sword with a
// three-hit combo.
func BuiltinWeapons() []WeaponTemplate {
	return []WeaponTemplate{
		{
			Name:             "Gun",
			Kind:             KindGun,
			Cooldown:         0.15,
			Damage:           25,
			ProjectileSpeed:  800,
			ProjectileRadius: 5,
			MuzzleOffset:     25,
		},
		{
			Name:        "Sword",
			Kind:        KindSword,
			Cooldown:    0.5,
			Damage:      40,
			Range:       60,
			ComboWindow: 0.8,
			Combo: []ComboStep{
				{Style: StyleSwing, Duration: 0.3, StartAngle: -60, EndAngle: 60, Damage: 40, Range: 60},
				{Style: StyleSwing, Duration: 0.3, StartAngle: 60, EndAngle: -60, Damage: 40, Range: 60},
				{Style: StyleSlam, Duration: 0.5, Damage: 70, Range: 70},
			},
		},
	}
}
