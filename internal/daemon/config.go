// Package daemon loads configuration and runs the HTTP service.
package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/zaibaitech/asrar-sub001/internal/abjad"
	"github.com/zaibaitech/asrar-sub001/internal/app/calculator"
	"github.com/zaibaitech/asrar-sub001/internal/compat"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

// Config is the full contents of config.toml.
type Config struct {
	API       APIConfig       `toml:"api"`
	Engine    EngineConfig    `toml:"engine"`
	Planetary PlanetaryConfig `toml:"planetary"`
	Tables    TablesConfig    `toml:"tables"`
	Log       LogConfig       `toml:"log"`
	Tracing   TracingConfig   `toml:"tracing"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Metrics        bool   `toml:"metrics"`
	RequestTimeout string `toml:"request_timeout"`
}

// EngineConfig selects letter tables and sizes the calculator.
type EngineConfig struct {
	DefaultVariant string   `toml:"default_variant"`
	CacheSize      int      `toml:"cache_size"`
	MaxConcurrent  int      `toml:"max_concurrent"`
	VariantFiles   []string `toml:"variant_files"` // extra TOML letter tables
}

// PlanetaryConfig selects the timekeeping mode.
type PlanetaryConfig struct {
	Mode   string `toml:"mode"`   // fixed | temporal
	Origin string `toml:"origin"` // midnight | sunrise (fixed mode)
}

// TablesConfig overrides the element cycle and compatibility percentages.
type TablesConfig struct {
	CycleVersion  string         `toml:"cycle_version"`
	ElementCycle  []string       `toml:"element_cycle"` // elements for remainders 1..4
	MotherDefault int            `toml:"mother_default"`
	Relations     map[string]int `toml:"relations"` // same, complementary, neutral, opposing
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// TracingConfig sizes the in-memory span buffer.
type TracingConfig struct {
	Enabled  bool `toml:"enabled"`
	MaxSpans int  `toml:"max_spans"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	relations := make(map[string]int, 4)
	for r, p := range compat.DefaultTable.Percentages {
		relations[string(r)] = p
	}
	cycle := make([]string, 0, 4)
	for _, e := range element.DefaultCycle.Order() {
		cycle = append(cycle, string(e))
	}

	return Config{
		API: APIConfig{
			Host:           "127.0.0.1",
			Port:           7860,
			Metrics:        true,
			RequestTimeout: "30s",
		},
		Engine: EngineConfig{
			DefaultVariant: abjad.DefaultVariant,
			CacheSize:      1024,
			MaxConcurrent:  4,
		},
		Planetary: PlanetaryConfig{
			Mode:   string(planetary.ModeFixed),
			Origin: string(planetary.OriginMidnight),
		},
		Tables: TablesConfig{
			CycleVersion:  element.DefaultCycle.Version(),
			ElementCycle:  cycle,
			MotherDefault: compat.DefaultTable.MotherDefault,
			Relations:     relations,
		},
		Log:     LogConfig{Level: "info"},
		Tracing: TracingConfig{Enabled: true, MaxSpans: 1024},
	}
}

// ─── Locations ──────────────────────────────────────────────────────────────

// Home returns $ASRAR_HOME, or ~/.asrar.
func Home() string {
	if env := os.Getenv("ASRAR_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".asrar"
	}
	return filepath.Join(home, ".asrar")
}

// ConfigPath returns the default config file location.
func ConfigPath() string { return filepath.Join(Home(), "config.toml") }

// ─── Loading ────────────────────────────────────────────────────────────────

// Load reads path (ConfigPath() when empty) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		cfg.Tables.Relations = nil
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, &domain.ConfigurationError{Table: "config", Name: path, Reason: fmt.Sprintf("unknown key %s", undecoded[0])}
		}
		for k, v := range DefaultConfig().Tables.Relations {
			if cfg.Tables.Relations == nil {
				cfg.Tables.Relations = make(map[string]int, 4)
			}
			if _, ok := cfg.Tables.Relations[k]; !ok {
				cfg.Tables.Relations[k] = v
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from ASRAR_HOST, ASRAR_PORT, ASRAR_VARIANT and
// ASRAR_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ASRAR_HOST"); v != "" {
		c.API.Host = v
	}
	if v := os.Getenv("ASRAR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &domain.ConfigurationError{Table: "env", Name: "ASRAR_PORT", Reason: fmt.Sprintf("not a number: %q", v)}
		}
		c.API.Port = port
	}
	if v := os.Getenv("ASRAR_VARIANT"); v != "" {
		c.Engine.DefaultVariant = v
	}
	if v := os.Getenv("ASRAR_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Save writes c to path as TOML, creating the directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// ─── Validation ─────────────────────────────────────────────────────────────

// Validate checks every field that would otherwise fail at first use.
func (c Config) Validate() error {
	bad := func(name, format string, args ...any) error {
		return &domain.ConfigurationError{Table: "config", Name: name, Reason: fmt.Sprintf(format, args...)}
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		return bad("api.port", "%d is not a valid port", c.API.Port)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return bad("api.request_timeout", "%v", err)
	}
	if c.Engine.CacheSize < 1 {
		return bad("engine.cache_size", "must be positive, got %d", c.Engine.CacheSize)
	}
	if c.Engine.MaxConcurrent < 1 {
		return bad("engine.max_concurrent", "must be positive, got %d", c.Engine.MaxConcurrent)
	}
	if _, err := planetary.ParseMode(c.Planetary.Mode); err != nil {
		return err
	}
	if _, err := planetary.ParseOrigin(c.Planetary.Origin); err != nil {
		return err
	}
	if _, err := element.ParseCycle(c.Tables.CycleVersion, c.Tables.ElementCycle); err != nil {
		return err
	}
	if _, err := c.CompatTable(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return bad("log.level", "%v", err)
	}
	if c.Tracing.Enabled && c.Tracing.MaxSpans < 1 {
		return bad("tracing.max_spans", "must be positive, got %d", c.Tracing.MaxSpans)
	}
	return nil
}

// ─── Derived Values ─────────────────────────────────────────────────────────

// Addr returns host:port.
func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port) }

// RequestTimeout parses api.request_timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.API.RequestTimeout == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(c.API.RequestTimeout)
	if err == nil && d <= 0 {
		err = fmt.Errorf("must be positive, got %s", d)
	}
	return d, err
}

// LogLevel parses log.level.
func (c Config) LogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(strings.ToLower(c.Log.Level))
}

// CompatTable builds the compatibility percentage table.
func (c Config) CompatTable() (compat.Table, error) {
	t := compat.Table{
		Version:       "config",
		Percentages:   make(map[domain.Relation]int, len(c.Tables.Relations)),
		MotherDefault: c.Tables.MotherDefault,
	}
	for k, v := range c.Tables.Relations {
		t.Percentages[domain.Relation(strings.ToLower(k))] = v
	}
	return t, t.Validate()
}

// Registry returns the built-in variants plus every configured variant file.
func (c Config) Registry() (*abjad.Registry, error) {
	reg := abjad.DefaultRegistry()
	if err := reg.RegisterFiles(c.Engine.VariantFiles...); err != nil {
		return nil, err
	}
	return reg, nil
}

// CalculatorConfig translates c for the calculator.
func (c Config) CalculatorConfig() (calculator.Config, error) {
	cycle, err := element.ParseCycle(c.Tables.CycleVersion, c.Tables.ElementCycle)
	if err != nil {
		return calculator.Config{}, err
	}
	table, err := c.CompatTable()
	if err != nil {
		return calculator.Config{}, err
	}
	mode, err := planetary.ParseMode(c.Planetary.Mode)
	if err != nil {
		return calculator.Config{}, err
	}
	origin, err := planetary.ParseOrigin(c.Planetary.Origin)
	if err != nil {
		return calculator.Config{}, err
	}
	return calculator.Config{
		DefaultVariant:  c.Engine.DefaultVariant,
		CacheSize:       c.Engine.CacheSize,
		PlanetaryMode:   mode,
		PlanetaryOrigin: origin,
		Cycle:           cycle,
		Relations:       element.DefaultRelations,
		CompatTable:     table,
		MaxConcurrent:   c.Engine.MaxConcurrent,
	}, nil
}
