package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	yaml "github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config mirrors config.yml
type Config struct {
	Algorithm  string    `yaml:"algorithm"`   // fcfs (by default)
	Quantum    int64     `yaml:"quantum"`     // 4 (by default)
	MaxHorizon int64     `yaml:"max_horizon"` // 100000 (by default)
	LogLevel   string    `yaml:"log_level"`   // info (by default)
	LogFormat  string    `yaml:"log_format"`  // text (by default)
	Trace      bool      `yaml:"trace"`       // print every status event
	TraceCSV   string    `yaml:"trace_csv"`   // empty = no CSV event log
	CSVDir     string    `yaml:"csv_dir"`     // empty = no CSV export
	SQLitePath string    `yaml:"sqlite_path"` // empty = no SQLite recording
	Generator  Generator `yaml:"generator"`
}

// Generator configures random workloads.
type Generator struct {
	Difficulty int    `yaml:"difficulty"` // 1..4
	Seed       uint64 `yaml:"seed"`
	Periodic   bool   `yaml:"periodic"` // force a period on every task
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Algorithm:  "fcfs",
		Quantum:    4,
		MaxHorizon: 100000,
		LogLevel:   "info",
		LogFormat:  "text",
		Generator: Generator{
			Difficulty: 1,
			Seed:       1,
		},
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only. A
// missing file is not an error, a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.clamp()

	return cfg, nil
}

// sanity clamps
func (c *Config) clamp() {
	d := Default()
	if c.Quantum <= 0 {
		c.Quantum = d.Quantum
	}
	if c.MaxHorizon <= 0 {
		c.MaxHorizon = d.MaxHorizon
	}
	if c.Algorithm == "" {
		c.Algorithm = d.Algorithm
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.Generator.Difficulty < 1 {
		c.Generator.Difficulty = 1
	} else if c.Generator.Difficulty > 4 {
		c.Generator.Difficulty = 4
	}
}

// Environment variables that override the file.
const (
	EnvAlgorithm  = "TICKSCHED_ALGORITHM"
	EnvQuantum    = "TICKSCHED_QUANTUM"
	EnvLogLevel   = "TICKSCHED_LOG_LEVEL"
	EnvSQLitePath = "TICKSCHED_SQLITE_PATH"
)

// LoadDotEnv loads the given .env files into the process environment
// without overwriting variables that are already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TICKSCHED_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAlgorithm); v != "" {
		c.Algorithm = v
	}
	if v := os.Getenv(EnvQuantum); v != "" {
		q, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvQuantum, err)
		}
		c.Quantum = q
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.SQLitePath = v
	}

	c.clamp()

	return nil
}
