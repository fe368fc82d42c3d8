package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Player  PlayerConfig  `toml:"player"`
	Waves   WavesConfig   `toml:"waves"`
	Pickups PickupsConfig `toml:"pickups"`
	Hazards []HazardSpec  `toml:"hazards"`
	Data    DataConfig    `toml:"data"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`
}

type GameConfig struct {
	Title      string        `toml:"title"`
	Width      float32       `toml:"width"`
	Height     float32       `toml:"height"`
	TickRate   time.Duration `toml:"tick_rate"`
	CellSize   float32       `toml:"cell_size"`    // spatial hash cell, world units
	MaxFrameDT time.Duration `toml:"max_frame_dt"` // clamp for long frames (debugger, resize)
	Seed       int64         `toml:"seed"`         // 0 = time based
}

type PlayerConfig struct {
	Count           int     `toml:"count"`
	Speed           float32 `toml:"speed"`
	Health          float32 `toml:"health"`
	Radius          float32 `toml:"radius"`
	ContactImmunity float32 `toml:"contact_immunity"` // seconds
	StartWeapon     string  `toml:"start_weapon"`     // empty = bare hands
}

type WavesConfig struct {
	SpawnPoints   []Point  `toml:"spawn_points"`
	BaseCount     int      `toml:"base_count"`
	Growth        int      `toml:"growth"` // extra enemies per wave
	MaxCount      int      `toml:"max_count"`
	Enemy         string   `toml:"enemy"`          // template name
	RandomWeapons []string `toml:"random_weapons"` // empty = template pool, then any
	Delay         float32  `toml:"delay"`          // seconds between a cleared wave and the next
}

type PickupsConfig struct {
	Initial    []PickupSpec `toml:"initial"`
	DropChance float64      `toml:"drop_chance"` // chance a dead enemy drops its weapon
}

type PickupSpec struct {
	Weapon string  `toml:"weapon"`
	X      float32 `toml:"x"`
	Y      float32 `toml:"y"`
}

type HazardSpec struct {
	X        float32 `toml:"x"`
	Y        float32 `toml:"y"`
	Radius   float32 `toml:"radius"`
	DPS      float32 `toml:"dps"`
	Lifetime float32 `toml:"lifetime"` // <= 0 = permanent
}

type Point struct {
	X float32 `toml:"x"`
	Y float32 `toml:"y"`
}

type DataConfig struct {
	Weapons string `toml:"weapons"` // YAML path; empty = built-in table
	Enemies string `toml:"enemies"`
}

type ScriptsConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("game: width and height must be positive")
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("game: tick_rate must be positive")
	}
	if c.Game.CellSize < 0 {
		return fmt.Errorf("game: cell_size must not be negative")
	}
	if c.Player.Count < 0 || c.Player.Count > 4 {
		return fmt.Errorf("player: count must be between 0 and 4, got %d", c.Player.Count)
	}
	if c.Player.Radius < 0 {
		return fmt.Errorf("player: radius must not be negative")
	}
	if len(c.Waves.SpawnPoints) == 0 {
		return fmt.Errorf("waves: at least one spawn point is required")
	}
	if c.Waves.BaseCount < 1 {
		return fmt.Errorf("waves: base_count must be at least 1")
	}
	if c.Pickups.DropChance < 0 || c.Pickups.DropChance > 1 {
		return fmt.Errorf("pickups: drop_chance must be within [0,1]")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Title:      "Push On",
			Width:      1280,
			Height:     720,
			TickRate:   time.Second / 60,
			CellSize:   100,
			MaxFrameDT: 100 * time.Millisecond,
		},
		Player: PlayerConfig{
			Count:           1,
			Speed:           300,
			Health:          100,
			Radius:          20,
			ContactImmunity: 0.5,
		},
		Waves: WavesConfig{
			SpawnPoints:   []Point{{X: 200, Y: 200}},
			BaseCount:     1,
			Growth:        0,
			MaxCount:      1,
			Enemy:         "grunt",
			RandomWeapons: []string{"Gun", "Sword"},
		},
		Pickups: PickupsConfig{
			Initial: []PickupSpec{
				{Weapon: "Gun", X: 640, Y: 260},
				{Weapon: "Sword", X: 790, Y: 260},
			},
		},
		Scripts: ScriptsConfig{
			Enabled: false,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
