package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/records"
)

func writeConfig(t *testing.T, env, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvironmentVar, "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "artvault", cfg.App.Name)
	assert.Equal(t, DefaultEnvironment, cfg.App.Environment)
	assert.Equal(t, 8080, cfg.APIServer.Port)
	assert.Equal(t, 10*time.Second, cfg.APIServer.ShutdownTimeout)
	assert.Equal(t, cache.DriverRedis, cfg.Cache.Driver)
	assert.Equal(t, "6379", cfg.Cache.Redis.Port)
	assert.Equal(t, 5*time.Second, cfg.Cache.Redis.DialTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, 3, cfg.Sync.ProductiveThreshold)
	assert.Equal(t, "all-or-nothing", cfg.Sync.Mode)
	assert.Zero(t, cfg.Sync.ResyncInterval)
	assert.True(t, cfg.Sync.Startup)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := writeConfig(t, "staging", `
apiserver:
  port: 9090
  auth:
    enabled: true
    api_keys:
      - key-one
    basic_users:
      - username: admin
        password: secret
cache:
  driver: memory
  inmemory:
    default_expiration: 0
    cleanup_interval: 60
mongo:
  database: gallery
sync:
  mode: partial
  resync_interval: 15m
`)
	t.Setenv(EnvironmentVar, "staging")
	t.Setenv("ARTVAULT_MONGO_URI", "mongodb://mongo.internal:27017")
	t.Setenv("ARTVAULT_SYNC_PRODUCTIVE_THRESHOLD", "5")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, 9090, cfg.APIServer.Port)
	assert.True(t, cfg.APIServer.Auth.Enabled)
	assert.Equal(t, []string{"key-one"}, cfg.APIServer.Auth.APIKeys)
	require.Len(t, cfg.APIServer.Auth.BasicUsers, 1)
	assert.Equal(t, BasicUser{Username: "admin", Password: "secret"}, cfg.APIServer.Auth.BasicUsers[0])
	assert.Equal(t, cache.DriverInMemory, cfg.Cache.Driver)
	assert.Equal(t, int64(60), cfg.Cache.InMemory.CleanupInterval)
	assert.Equal(t, "gallery", cfg.Mongo.Database)
	assert.Equal(t, "mongodb://mongo.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "partial", cfg.Sync.Mode)
	assert.Equal(t, 5, cfg.Sync.ProductiveThreshold)
	assert.Equal(t, 15*time.Minute, cfg.Sync.ResyncInterval)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "broken", "apiserver: [port")
	t.Setenv(EnvironmentVar, "broken")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config for environment broken")
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			APIServer: APIServerConfig{Port: 8080},
			Cache:     cache.Config{Driver: cache.DriverRedis},
			Mongo:     records.Config{URI: "mongodb://localhost:27017"},
			Sync:      SyncConfig{Mode: "all-or-nothing", ProductiveThreshold: 3},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *AppConfig)
		errContains string
	}{
		{
			name:   "valid",
			mutate: func(c *AppConfig) {},
		},
		{
			name:        "unknown cache driver",
			mutate:      func(c *AppConfig) { c.Cache.Driver = "memcached" },
			errContains: `unsupported cache driver "memcached"`,
		},
		{
			name:        "unknown sync mode",
			mutate:      func(c *AppConfig) { c.Sync.Mode = "eventual" },
			errContains: `unknown sync mode "eventual"`,
		},
		{
			name:        "negative threshold",
			mutate:      func(c *AppConfig) { c.Sync.ProductiveThreshold = -1 },
			errContains: "productive_threshold",
		},
		{
			name:        "negative resync interval",
			mutate:      func(c *AppConfig) { c.Sync.ResyncInterval = -time.Second },
			errContains: "resync_interval",
		},
		{
			name:        "port out of range",
			mutate:      func(c *AppConfig) { c.APIServer.Port = 70000 },
			errContains: "out of range",
		},
		{
			name:        "missing mongo uri",
			mutate:      func(c *AppConfig) { c.Mongo.URI = "" },
			errContains: "mongo uri is required",
		},
		{
			name: "auth without keys",
			mutate: func(c *AppConfig) {
				c.APIServer.Auth.Enabled = true
			},
			errContains: "no api_keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
