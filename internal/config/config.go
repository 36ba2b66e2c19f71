package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"lantern/internal/dispatch"
	"lantern/internal/level"
)

//go:embed sample_config.toml
var sampleConfig string

// Engine mirrors dispatch.Options in file form.
type Engine struct {
	BufferCapacity     int `toml:"buffer_capacity"`
	LocationReserve    int `toml:"location_reserve"`
	SubscriberCapacity int `toml:"subscriber_capacity"`
	ModuleCapacity     int `toml:"module_capacity"`
	LockTimeoutMS      int `toml:"lock_timeout_ms"`
}

// Levels selects which severity levels the deployment enables. The lowest
// enabled level becomes the auto threshold.
type Levels struct {
	Trace    bool `toml:"trace"`
	Debug    bool `toml:"debug"`
	Info     bool `toml:"info"`
	Warning  bool `toml:"warning"`
	Error    bool `toml:"error"`
	Critical bool `toml:"critical"`
	Always   bool `toml:"always"`
}

// ConsoleSink configures the built-in console subscriber.
type ConsoleSink struct {
	Enabled   bool   `toml:"enabled"`
	Threshold string `toml:"threshold"`
}

// FileSink configures the append-only file subscriber.
type FileSink struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path"`
	Threshold string `toml:"threshold"`
}

// StoreSink configures the SQLite-backed subscriber.
type StoreSink struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path"`
	Threshold string `toml:"threshold"`
}

// Sinks groups the built-in subscriber configurations.
type Sinks struct {
	Console ConsoleSink `toml:"console"`
	File    FileSink    `toml:"file"`
	Store   StoreSink   `toml:"store"`
}

// Metrics configures the Prometheus endpoint of the demo daemon.
type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Bind    string `toml:"bind"`
}

// Config is the full lantern configuration.
type Config struct {
	Engine  Engine            `toml:"engine"`
	Levels  Levels            `toml:"levels"`
	Sinks   Sinks             `toml:"sinks"`
	Modules map[string]string `toml:"modules"`
	Metrics Metrics           `toml:"metrics"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Engine: Engine{
			BufferCapacity:     128,
			LocationReserve:    64,
			SubscriberCapacity: 6,
			ModuleCapacity:     16,
			LockTimeoutMS:      100,
		},
		Levels: Levels{
			Trace:    true,
			Debug:    true,
			Info:     true,
			Warning:  true,
			Error:    true,
			Critical: true,
			Always:   true,
		},
		Sinks: Sinks{
			Console: ConsoleSink{Enabled: true, Threshold: "trace"},
			File:    FileSink{Path: "lantern.log", Threshold: "info"},
			Store:   StoreSink{Path: "lantern.db", Threshold: "warning"},
		},
		Modules: map[string]string{},
		Metrics: Metrics{Bind: "127.0.0.1:9464"},
	}
}

// Load reads and validates a configuration file. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot honor.
func (c *Config) Validate() error {
	if c.Engine.BufferCapacity < 0 {
		return errors.New("engine.buffer_capacity must not be negative")
	}
	if c.Engine.LockTimeoutMS < 0 {
		return errors.New("engine.lock_timeout_ms must not be negative")
	}
	if c.Engine.BufferCapacity > 0 && c.Engine.LocationReserve >= c.Engine.BufferCapacity {
		return errors.New("engine.location_reserve must be smaller than engine.buffer_capacity")
	}
	for _, threshold := range []struct {
		key   string
		value string
	}{
		{"sinks.console.threshold", c.Sinks.Console.Threshold},
		{"sinks.file.threshold", c.Sinks.File.Threshold},
		{"sinks.store.threshold", c.Sinks.Store.Threshold},
	} {
		if threshold.value == "" {
			continue
		}
		if _, err := level.Parse(threshold.value); err != nil {
			return fmt.Errorf("%s: %w", threshold.key, err)
		}
	}
	for module, name := range c.Modules {
		if module == "" {
			return errors.New("modules: empty module identity")
		}
		if _, err := level.Parse(name); err != nil {
			return fmt.Errorf("modules[%s]: %w", module, err)
		}
	}
	return nil
}

// Enabled converts the level switches into the engine's representation.
func (c *Config) Enabled() level.Enabled {
	return level.Enabled{
		Trace:    c.Levels.Trace,
		Debug:    c.Levels.Debug,
		Info:     c.Levels.Info,
		Warning:  c.Levels.Warning,
		Error:    c.Levels.Error,
		Critical: c.Levels.Critical,
		Always:   c.Levels.Always,
	}
}

// EngineOptions maps the file form onto dispatch.Options.
func (c *Config) EngineOptions() dispatch.Options {
	return dispatch.Options{
		BufferCapacity:     c.Engine.BufferCapacity,
		LocationReserve:    c.Engine.LocationReserve,
		SubscriberCapacity: c.Engine.SubscriberCapacity,
		ModuleCapacity:     c.Engine.ModuleCapacity,
		LockTimeout:        time.Duration(c.Engine.LockTimeoutMS) * time.Millisecond,
		Enabled:            c.Enabled(),
	}
}

// SinkThreshold resolves a sink threshold string, falling back to the auto
// threshold when unset.
func (c *Config) SinkThreshold(value string) level.Level {
	if value == "" {
		return level.AutoThreshold(c.Enabled())
	}
	lvl, err := level.Parse(value)
	if err != nil {
		return level.AutoThreshold(c.Enabled())
	}
	return lvl
}

// ApplyModuleThresholds pushes the configured module bindings into a
// running engine. Table-capacity and identity errors are returned combined
// so a partial apply is still visible to the caller.
func (c *Config) ApplyModuleThresholds(engine *dispatch.Engine) error {
	var errs []error
	for module, name := range c.Modules {
		lvl, err := level.Parse(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("modules[%s]: %w", module, err))
			continue
		}
		if err := engine.SetModuleThreshold(module, lvl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sample returns the annotated sample configuration file.
func Sample() string {
	return sampleConfig
}

// Marshal renders the configuration back to TOML.
func (c *Config) Marshal() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), nil
}
