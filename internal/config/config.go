package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BattleSim holds all configuration for the battle simulator.
type BattleSim struct {
	LogLevel    string `yaml:"log_level"` // debug, info, warn, error
	CatalogPath string `yaml:"catalog_path"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	Simulation SimulationConfig `yaml:"simulation"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"` // outcomes are persisted only when set
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// SimulationConfig controls the batch of sessions battlesim runs.
type SimulationConfig struct {
	Workers       int      `yaml:"workers"`        // concurrent sessions
	Sessions      int      `yaml:"sessions"`       // sessions per player/enemy pairing
	MaxCycles     int      `yaml:"max_cycles"`     // sessions still running are aborted
	BaseSeed      uint64   `yaml:"base_seed"`      // 0: random seed per session
	TerrainHazard int      `yaml:"terrain_hazard"` // TRUE damage to both sides per cycle
	Players       []string `yaml:"players"`        // empty: every non-enemy combatant
	Enemies       []string `yaml:"enemies"`        // empty: every enemy combatant
}

// DefaultBattleSim returns BattleSim config with sensible defaults.
func DefaultBattleSim() BattleSim {
	return BattleSim{
		LogLevel:    "info",
		CatalogPath: "config/catalog.yaml",
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "battlecore",
			Password: "battlecore",
			DBName:   "battlecore",
			SSLMode:  "disable",
		},
		Simulation: SimulationConfig{
			Workers:   4,
			Sessions:  10,
			MaxCycles: 200,
		},
	}
}

// Validate rejects values the simulator cannot run with.
func (c BattleSim) Validate() error {
	switch {
	case c.CatalogPath == "":
		return errors.New("catalog_path must be set")
	case c.Simulation.Workers < 1:
		return fmt.Errorf("simulation.workers must be positive, got %d", c.Simulation.Workers)
	case c.Simulation.Sessions < 1:
		return fmt.Errorf("simulation.sessions must be positive, got %d", c.Simulation.Sessions)
	case c.Simulation.MaxCycles < 1:
		return fmt.Errorf("simulation.max_cycles must be positive, got %d", c.Simulation.MaxCycles)
	case c.Simulation.TerrainHazard < 0:
		return fmt.Errorf("simulation.terrain_hazard must not be negative, got %d", c.Simulation.TerrainHazard)
	}
	return nil
}

// LoadBattleSim loads battlesim config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBattleSim(path string) (BattleSim, error) {
	cfg := DefaultBattleSim()

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
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
