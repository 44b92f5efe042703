package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/model"
)

var (
	// ErrInvalidTemplate is returned by Validate for a broken unit/building template.
	ErrInvalidTemplate = errors.New("invalid template")
	// ErrUnknownTemplate is returned when a spawn or activity names a missing template.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrInvalidConfig is returned by Validate for broken top-level settings.
	ErrInvalidConfig = errors.New("invalid config")
)

// MaxTeam mirrors the highest player team.
const MaxTeam = 2

// maxCatalogue - максимум активностей у здания.
const maxCatalogue = 8

// WeaponConfig describes a weapon.
type WeaponConfig struct {
	Damage float64       `yaml:"damage"`
	Period time.Duration `yaml:"period"`
	Range  float64       `yaml:"range"` // 0 = melee
}

// AutoAttackConfig describes auto-attack distances.
type AutoAttackConfig struct {
	AttackRange float64 `yaml:"attack_range"`
	ChaseRange  float64 `yaml:"chase_range"`
}

// UnitTemplate describes a spawnable unit.
type UnitTemplate struct {
	MaxHP float64 `yaml:"max_hp"`
	// Speed in units/second; 0 makes the unit immovable.
	Speed        float64           `yaml:"speed"`
	Weapon       *WeaponConfig     `yaml:"weapon"`
	Sensing      float64           `yaml:"sensing"` // detection radius (default: auto attack range or weapon range)
	AutoAttack   *AutoAttackConfig `yaml:"auto_attack"`
	PlayerAttack bool              `yaml:"player_attack"`
}

// ActivityConfig describes a building activity.
type ActivityConfig struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Duration    time.Duration `yaml:"duration"`
	Cost        int           `yaml:"cost"`
	// Spawn names a unit template spawned next to the building on completion.
	Spawn string `yaml:"spawn"`
}

// TurretConfig arms a building.
type TurretConfig struct {
	Weapon     WeaponConfig     `yaml:"weapon"`
	AutoAttack AutoAttackConfig `yaml:"auto_attack"`
}

// BuildingTemplate describes a spawnable building.
type BuildingTemplate struct {
	MaxHP      float64          `yaml:"max_hp"`
	Turret     *TurretConfig    `yaml:"turret"`
	Activities []ActivityConfig `yaml:"activities"`
}

// SpawnEntry places entities at startup.
type SpawnEntry struct {
	Template string  `yaml:"template"`
	Building bool    `yaml:"building"`
	Team     int32   `yaml:"team"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Count    int     `yaml:"count"` // default 1, extra ones are placed in a row
}

// BoundsConfig is the navigable rectangle.
type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// RecorderConfig controls the combat event writer.
type RecorderConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	Buffer        int           `yaml:"buffer"`
}

// Simulation holds all configuration for a skirmish run.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Loop
	TickInterval time.Duration `yaml:"tick_interval"`
	Duration     time.Duration `yaml:"duration"` // 0 = until interrupted

	// World
	CellSize      float64      `yaml:"cell_size"`
	Bounds        BoundsConfig `yaml:"bounds"`
	LocalTeam     int32        `yaml:"local_team"`
	StartingFunds int          `yaml:"starting_funds"`

	// Content
	Units     map[string]UnitTemplate     `yaml:"units"`
	Buildings map[string]BuildingTemplate `yaml:"buildings"`
	Spawns    []SpawnEntry                `yaml:"spawns"`

	// Persistence
	Database DatabaseConfig `yaml:"database"`
	Recorder RecorderConfig `yaml:"recorder"`
}

// DefaultSimulation returns a small two-team skirmish.
func DefaultSimulation() Simulation {
	melee := WeaponConfig{Damage: 2, Period: time.Second, Range: 1.5}
	arrows := WeaponConfig{Damage: 1, Period: 1500 * time.Millisecond, Range: 6}

	return Simulation{
		LogLevel:      "info",
		TickInterval:  50 * time.Millisecond,
		Duration:      30 * time.Second,
		CellSize:      16,
		Bounds:        BoundsConfig{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		LocalTeam:     1,
		StartingFunds: 100,
		Units: map[string]UnitTemplate{
			"soldier": {
				MaxHP:        10,
				Speed:        3,
				Weapon:       &melee,
				AutoAttack:   &AutoAttackConfig{AttackRange: 8, ChaseRange: 10},
				PlayerAttack: true,
			},
			"archer": {
				MaxHP:        6,
				Speed:        3.5,
				Weapon:       &arrows,
				AutoAttack:   &AutoAttackConfig{AttackRange: 8, ChaseRange: 4},
				PlayerAttack: true,
			},
			"worker": {
				MaxHP: 5,
				Speed: 4,
			},
		},
		Buildings: map[string]BuildingTemplate{
			"barracks": {
				MaxHP: 50,
				Activities: []ActivityConfig{
					{Title: "Soldier", Description: "Melee infantry", Duration: 3 * time.Second, Cost: 10, Spawn: "soldier"},
					{Title: "Archer", Description: "Ranged infantry", Duration: 4 * time.Second, Cost: 15, Spawn: "archer"},
				},
			},
			"tower": {
				MaxHP: 40,
				Turret: &TurretConfig{
					Weapon:     arrows,
					AutoAttack: AutoAttackConfig{AttackRange: 6, ChaseRange: 1},
				},
			},
		},
		Spawns: []SpawnEntry{
			{Template: "barracks", Building: true, Team: 1, X: -20, Y: 0},
			{Template: "soldier", Team: 1, X: -10, Y: -2, Count: 3},
			{Template: "soldier", Team: 2, X: 10, Y: -2, Count: 2},
			{Template: "archer", Team: 2, X: 12, Y: 4},
			{Template: "tower", Building: true, Team: 2, X: 20, Y: 0},
		},
		Database: DefaultDatabase(),
		Recorder: RecorderConfig{
			BatchSize:     64,
			FlushInterval: time.Second,
			Buffer:        1024,
		},
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks loop settings, templates and spawns.
func (c Simulation) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	}
	if c.LocalTeam < 1 || c.LocalTeam > MaxTeam {
		return fmt.Errorf("%w: local_team %d out of [1, %d]", ErrInvalidConfig, c.LocalTeam, MaxTeam)
	}

	for name, t := range c.Units {
		if err := t.validate(); err != nil {
			return fmt.Errorf("unit %q: %w", name, err)
		}
	}
	for name, t := range c.Buildings {
		if err := c.validateBuilding(t); err != nil {
			return fmt.Errorf("building %q: %w", name, err)
		}
	}

	for i, s := range c.Spawns {
		known := false
		if s.Building {
			_, known = c.Buildings[s.Template]
		} else {
			_, known = c.Units[s.Template]
		}
		if !known {
			return fmt.Errorf("spawn #%d: %w: %q", i, ErrUnknownTemplate, s.Template)
		}
		if s.Team < 0 || s.Team > MaxTeam {
			return fmt.Errorf("spawn #%d: %w: team %d", i, ErrInvalidConfig, s.Team)
		}
	}
	return nil
}

func (t UnitTemplate) validate() error {
	if t.MaxHP <= 0 {
		return fmt.Errorf("%w: max_hp must be positive", ErrInvalidTemplate)
	}
	if t.Speed < 0 {
		return fmt.Errorf("%w: negative speed", ErrInvalidTemplate)
	}
	if t.Weapon == nil {
		if t.AutoAttack != nil || t.PlayerAttack {
			return fmt.Errorf("%w: attack without weapon", ErrInvalidTemplate)
		}
		return nil
	}
	if err := t.Weapon.validate(); err != nil {
		return err
	}
	if t.AutoAttack != nil {
		return t.AutoAttack.validate(*t.Weapon)
	}
	return nil
}

func (c Simulation) validateBuilding(t BuildingTemplate) error {
	if t.MaxHP <= 0 {
		return fmt.Errorf("%w: max_hp must be positive", ErrInvalidTemplate)
	}
	if len(t.Activities) > maxCatalogue {
		return fmt.Errorf("%w: %d activities, max %d", ErrInvalidTemplate, len(t.Activities), maxCatalogue)
	}
	for _, a := range t.Activities {
		if a.Duration < 0 || a.Cost < 0 {
			return fmt.Errorf("%w: activity %q: negative duration or cost", ErrInvalidTemplate, a.Title)
		}
		if a.Spawn != "" {
			if _, ok := c.Units[a.Spawn]; !ok {
				return fmt.Errorf("activity %q: %w: %q", a.Title, ErrUnknownTemplate, a.Spawn)
			}
		}
	}
	if t.Turret != nil {
		if err := t.Turret.Weapon.validate(); err != nil {
			return err
		}
		return t.Turret.AutoAttack.validate(t.Turret.Weapon)
	}
	return nil
}

// EffectiveRange returns the strike distance; an omitted range means melee.
func (w WeaponConfig) EffectiveRange() float64 {
	if w.Range == 0 {
		return model.MeleeRange
	}
	return w.Range
}

func (w WeaponConfig) validate() error {
	if w.Damage < 0 || w.Period <= 0 || w.Range < 0 {
		return fmt.Errorf("%w: weapon needs damage >= 0, period > 0, range >= 0", ErrInvalidTemplate)
	}
	return nil
}

func (a AutoAttackConfig) validate(w WeaponConfig) error {
	if a.ChaseRange+w.EffectiveRange() <= a.AttackRange {
		return fmt.Errorf("%w: chase_range + weapon range must exceed attack_range", ErrInvalidTemplate)
	}
	return nil
}
