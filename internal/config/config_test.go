package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/osrs-items/internal/config"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeFile(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// unsetEnv clears key for the rest of the test and restores it afterwards
func (s *ConfigTestSuite) unsetEnv(key string) {
	s.T().Setenv(key, "")
	s.Require().NoError(os.Unsetenv(key))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)
	s.Equal(config.Default(), cfg)
}

func (s *ConfigTestSuite) TestMissingFileKeepsDefaults() {
	cfg, err := config.Load(filepath.Join(s.dir, "missing.yaml"))
	s.Require().NoError(err)
	s.Equal(config.Default(), cfg)
}

func (s *ConfigTestSuite) TestYAMLOverrides() {
	path := s.writeFile("items.yaml", `
output_dir: /data/items
pretty: true
workers: 2
cache_ttl: 30s
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal("/data/items", cfg.OutputDir)
	s.True(cfg.Pretty)
	s.Equal(2, cfg.Workers)
	s.Equal(256, cfg.CacheSize)
	s.Equal(30*time.Second, cfg.CacheTTL)
	s.Equal("debug", cfg.Log.Level)
	s.Equal("json", cfg.Log.Format)
	s.Equal("osrs-items", cfg.Log.ServiceName)
}

func (s *ConfigTestSuite) TestEnvOverridesYAML() {
	path := s.writeFile("items.yaml", "workers: 2\npretty: false\n")
	s.T().Setenv("OSRS_ITEMS_WORKERS", "16")
	s.T().Setenv("OSRS_ITEMS_PRETTY", "true")
	s.T().Setenv("OSRS_ITEMS_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(16, cfg.Workers)
	s.True(cfg.Pretty)
	s.Equal("warn", cfg.Log.Level)
}

func (s *ConfigTestSuite) TestSQLiteStore() {
	s.T().Setenv("OSRS_ITEMS_STORE", "sqlite")
	s.T().Setenv("OSRS_ITEMS_SQLITE_PATH", "/data/items.db")

	cfg, err := config.Load("")
	s.Require().NoError(err)
	s.Equal(config.StoreSQLite, cfg.Store)
	s.Equal("/data/items.db", cfg.SQLitePath)
}

func (s *ConfigTestSuite) TestInvalidInput() {
	s.Run("bad yaml", func() {
		path := s.writeFile("bad.yaml", "workers: [1, 2\n")

		_, err := config.Load(path)
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("bad env value", func() {
		s.T().Setenv("OSRS_ITEMS_WORKERS", "many")

		_, err := config.Load("")
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("path is a directory", func() {
		_, err := config.Load(s.dir)
		s.Require().Error(err)
	})
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{name: "empty output dir", modify: func(c *config.Config) { c.OutputDir = " " }, field: "output_dir"},
		{name: "unknown store", modify: func(c *config.Config) { c.Store = "redis" }, field: "store"},
		{name: "sqlite without path", modify: func(c *config.Config) { c.Store = config.StoreSQLite }, field: "sqlite_path"},
		{name: "zero workers", modify: func(c *config.Config) { c.Workers = 0 }, field: "workers"},
		{name: "too many workers", modify: func(c *config.Config) { c.Workers = 1000 }, field: "workers"},
		{name: "negative cache", modify: func(c *config.Config) { c.CacheSize = -1 }, field: "cache_size"},
		{name: "negative ttl", modify: func(c *config.Config) { c.CacheTTL = -time.Second }, field: "cache_ttl"},
		{name: "unknown level", modify: func(c *config.Config) { c.Log.Level = "loud" }, field: "log.level"},
		{name: "unknown format", modify: func(c *config.Config) { c.Log.Format = "xml" }, field: "log.format"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := config.Default()
			tc.modify(&cfg)

			err := cfg.Validate()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(errors.FieldErrors(err), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestLoadDotEnv() {
	s.unsetEnv("OSRS_ITEMS_OUTPUT_DIR")
	s.T().Setenv("OSRS_ITEMS_CACHE_SIZE", "4")

	path := s.writeFile("test.env", "OSRS_ITEMS_OUTPUT_DIR=/from/dotenv\nOSRS_ITEMS_CACHE_SIZE=99\n")
	s.Require().NoError(config.LoadDotEnv(path, filepath.Join(s.dir, "missing.env")))

	cfg, err := config.Load("")
	s.Require().NoError(err)
	s.Equal("/from/dotenv", cfg.OutputDir)
	s.Equal(4, cfg.CacheSize, "variables already set win over .env")
}

func (s *ConfigTestSuite) TestLoadDotEnvWithoutFiles() {
	s.NoError(config.LoadDotEnv(filepath.Join(s.dir, "none.env")))
}
