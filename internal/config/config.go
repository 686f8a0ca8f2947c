// Package config loads CLI configuration from defaults, an optional YAML
// file, and OSRS_ITEMS_* environment variables, in that order of precedence.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/osrs-items/internal/errors"
	"github.com/KirkDiggler/osrs-items/internal/logger"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "OSRS_ITEMS_"

const maxWorkers = 256

// Item stores
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds all configuration for the items CLI.
type Config struct {
	// Store selects where converted items live: "file" or "sqlite"
	Store string `yaml:"store" env:"STORE"`

	// OutputDir receives one <id>.json file per item
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// SQLitePath is the database used when Store is "sqlite"
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`

	// Pretty indents written files by four spaces
	Pretty bool `yaml:"pretty" env:"PRETTY"`

	// Workers bounds concurrent file writes during conversion
	Workers int `yaml:"workers" env:"WORKERS"`

	// Read cache of the item repository
	CacheSize int           `yaml:"cache_size" env:"CACHE_SIZE"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`

	Log logger.Config `yaml:"log" envPrefix:"LOG_"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		Store:     StoreFile,
		OutputDir: "items-json",
		Pretty:    false,
		Workers:   8,
		CacheSize: 256,
		CacheTTL:  10 * time.Minute,
		Log:       logger.DefaultConfig(),
	}
}

// Load reads configuration from path, then applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "parsing config %s", path)
			}
		case !os.IsNotExist(err):
			return cfg, errors.IOFailuref(err, "reading config %s", path)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parsing environment")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv adds variables from the given .env files (default ".env") to the
// environment without overriding ones already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "loading .env")
	}
	return nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("store", c.Store, []string{StoreFile, StoreSQLite}, vb)
	switch c.Store {
	case StoreFile:
		errors.ValidateRequired("output_dir", c.OutputDir, vb)
	case StoreSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}
	errors.ValidateRange("workers", c.Workers, 1, maxWorkers, vb)
	if c.CacheSize < 0 {
		vb.Field("cache_size", "cannot be negative")
	}
	if c.CacheTTL < 0 {
		vb.Field("cache_ttl", "cannot be negative")
	}
	errors.ValidateEnum("log.level", c.Log.Level, []string{"debug", "info", "warn", "warning", "error"}, vb)
	errors.ValidateEnum("log.format", c.Log.Format, []string{"json", "text"}, vb)

	return vb.Build()
}
