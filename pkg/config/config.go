// Package config loads the application configuration from
// config/<environment>.yaml, an optional .env file and ARTVAULT_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/cachesync"
	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/telemetry"
)

const (
	EnvPrefix          = "ARTVAULT"
	EnvironmentVar     = "APP_ENV"
	DefaultEnvironment = "local"
	DefaultConfigDir   = "config"
)

type AppConfig struct {
	App       AppInfo          `mapstructure:"app"`
	APIServer APIServerConfig  `mapstructure:"apiserver"`
	Cache     cache.Config     `mapstructure:"cache"`
	Mongo     records.Config   `mapstructure:"mongo"`
	Sync      SyncConfig       `mapstructure:"sync"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`
	Logging   logger.Options   `mapstructure:"logging"`
}

type AppInfo struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type APIServerConfig struct {
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
	Auth AuthConfig `mapstructure:"auth"`
	// ShutdownTimeout bounds the graceful drain of in-flight requests.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type AuthConfig struct {
	Enabled    bool        `mapstructure:"enabled"`
	APIKeys    []string    `mapstructure:"api_keys"`
	BasicUsers []BasicUser `mapstructure:"basic_users"`
}

type BasicUser struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type SyncConfig struct {
	ProductiveThreshold int    `mapstructure:"productive_threshold"`
	Mode                string `mapstructure:"mode"`
	// ResyncInterval re-runs the sync periodically; zero disables it.
	ResyncInterval time.Duration `mapstructure:"resync_interval"`
	// Startup runs the sync once before serving.
	Startup bool `mapstructure:"startup"`
}

var (
	appConfig     *AppConfig
	appConfigOnce sync.Once
	appConfigErr  error
)

// GetConfig loads the configuration once per process from DefaultConfigDir.
func GetConfig() (*AppConfig, error) {
	appConfigOnce.Do(func() {
		appConfig, appConfigErr = Load(DefaultConfigDir)
	})
	return appConfig, appConfigErr
}

// Load reads <dir>/<environment>.yaml. A missing file is not an error;
// defaults and environment variables still apply.
func Load(dir string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	env := os.Getenv(EnvironmentVar)
	if env == "" {
		env = DefaultEnvironment
	}

	v := viper.New()
	setDefaults(v)
	v.Set("app.environment", env)

	v.SetConfigName(env)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config for environment %s: %w", env, err)
		}
		logrus.WithField("environment", env).Warn("no config file found, using defaults")
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "artvault")
	v.SetDefault("app.version", "dev")

	v.SetDefault("apiserver.host", "0.0.0.0")
	v.SetDefault("apiserver.port", 8080)
	v.SetDefault("apiserver.shutdown_timeout", "10s")
	v.SetDefault("apiserver.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("apiserver.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("apiserver.cors.allowed_headers", []string{"Origin", "Content-Type", "X-API-Key", "Authorization"})
	v.SetDefault("apiserver.auth.enabled", false)

	v.SetDefault("cache.driver", cache.DriverRedis)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", "6379")
	v.SetDefault("cache.redis.database", 0)
	v.SetDefault("cache.redis.dial_timeout", "5s")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "artvault")
	v.SetDefault("mongo.connect_timeout", "10s")

	v.SetDefault("sync.productive_threshold", cachesync.DefaultProductiveThreshold)
	v.SetDefault("sync.mode", string(cachesync.ModeAllOrNothing))
	v.SetDefault("sync.resync_interval", "0s")
	v.SetDefault("sync.startup", true)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "artvault")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate rejects settings the application cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Cache.Driver {
	case "", cache.DriverRedis, cache.DriverInMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported cache driver %q", c.Cache.Driver))
	}

	if _, err := cachesync.ParseMode(c.Sync.Mode); err != nil {
		errs = append(errs, err)
	}

	if c.Sync.ProductiveThreshold < 0 {
		errs = append(errs, fmt.Errorf("sync productive_threshold must not be negative"))
	}
	if c.Sync.ResyncInterval < 0 {
		errs = append(errs, fmt.Errorf("sync resync_interval must not be negative"))
	}
	if c.APIServer.Port <= 0 || c.APIServer.Port > 65535 {
		errs = append(errs, fmt.Errorf("apiserver port %d out of range", c.APIServer.Port))
	}
	if c.Mongo.URI == "" {
		errs = append(errs, fmt.Errorf("mongo uri is required"))
	}
	if c.APIServer.Auth.Enabled && len(c.APIServer.Auth.APIKeys) == 0 {
		errs = append(errs, fmt.Errorf("apiserver auth is enabled but no api_keys are configured"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
