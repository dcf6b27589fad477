// Package config handles run configuration: defaults, an optional YAML
// file and command-line overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lifewatch/pkg/cluster"
	"lifewatch/pkg/seed"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration structure.
type Config struct {
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	Generations int              `yaml:"generations"`
	Adjacency   string           `yaml:"adjacency"`
	Workers     int              `yaml:"workers"`
	Density     float64          `yaml:"density"`
	Seed        int64            `yaml:"seed"`
	SeedFile    string           `yaml:"seed_file"`
	Structures  []seed.Placement `yaml:"structures"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Scale and TPS only matter to the GUI build.
	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Width:       42,
		Height:      42,
		Generations: 200,
		Adjacency:   cluster.Orthogonal.String(),
		Workers:     1,
		Density:     seed.DefaultDensity,
		Seed:        42,
		LogLevel:    "info",
		LogFormat:   "text",
		Scale:       8,
		TPS:         12,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the defaults when path
// is empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Bind attaches the configuration to the provided FlagSet. Flag defaults
// are the current field values, so bind after loading the file.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width for random soups")
	fs.IntVar(&c.Height, "height", c.Height, "grid height for random soups")
	fs.IntVar(&c.Generations, "gens", c.Generations, "generations to simulate")
	fs.StringVar(&c.Adjacency, "adjacency", c.Adjacency, "cluster adjacency: orthogonal, bridged or moore")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per step (1 = serial)")
	fs.Float64Var(&c.Density, "density", c.Density, "live-cell density of random soups")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random soups")
	fs.StringVar(&c.SeedFile, "seed-file", c.SeedFile, "seed file to load instead of a random soup")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier (GUI)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (GUI)")
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid size must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must be non-negative, got %d", ErrInvalid, c.Generations)
	}
	if _, err := cluster.ParseAdjacency(c.Adjacency); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("%w: density must be in [0,1], got %g", ErrInvalid, c.Density)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// AdjacencyMode returns the parsed adjacency. Call Validate first.
func (c *Config) AdjacencyMode() cluster.Adjacency {
	a, _ := cluster.ParseAdjacency(c.Adjacency)
	return a
}

// Logger builds a slog.Logger writing to w with the configured level and
// format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse registers -config and the Config flags on fs, parses args, loads the
// named YAML file over the defaults and re-applies the flags given on the
// command line, so flags beat the file and the file beats the defaults.
// Callers may register extra flags on fs beforehand. The returned set holds
// the names of flags present in args.
func Parse(fs *flag.FlagSet, args []string) (*Config, map[string]bool, error) {
	path := fs.String("config", "", "YAML run file")
	Default().Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := Default()
	if *path != "" {
		loaded, err := Load(*path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	overlay := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	cfg.Bind(overlay)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		if overlay.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = overlay.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return nil, nil, setErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, set, nil
}
