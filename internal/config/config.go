// Package config loads application settings from defaults, an optional
// config file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GAMELIBRARY"

// Repository backends.
const (
	RepositoryMemory   = "memory"
	RepositoryDatabase = "database"
)

// Config holds the application configuration.
type Config struct {
	Addr        string     `mapstructure:"addr"`
	Repository  string     `mapstructure:"repository"`
	DataPath    string     `mapstructure:"data_path"`
	ReviewsPath string     `mapstructure:"reviews_path"`
	JWTSecret   string     `mapstructure:"jwt_secret"`
	DB          DBConfig   `mapstructure:"db"`
	Log         LogConfig  `mapstructure:"log"`
	OIDC        OIDCConfig `mapstructure:"oidc"`
}

// DBConfig selects the relational backend.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// OIDCConfig configures single sign-on.
type OIDCConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Issuer       string `mapstructure:"issuer"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("repository", RepositoryMemory)
	v.SetDefault("data_path", "data/games.csv")
	v.SetDefault("reviews_path", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "gamelibrary.db?_pragma=busy_timeout(5000)")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("oidc.enabled", false)
	v.SetDefault("oidc.issuer", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
}

// Load reads configuration into a Config. Flags bound on v take precedence
// over the environment, which takes precedence over configFile and defaults.
// An empty configFile skips file loading.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db.dsn", EnvPrefix+"_DB_DSN", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports inconsistent settings.
func (c *Config) Validate() error {
	switch c.Repository {
	case RepositoryMemory, RepositoryDatabase:
	default:
		return fmt.Errorf("repository must be %q or %q, got %q", RepositoryMemory, RepositoryDatabase, c.Repository)
	}
	if c.Repository == RepositoryDatabase {
		switch c.DB.Driver {
		case "postgres", "sqlite":
		default:
			return fmt.Errorf("db.driver must be postgres or sqlite, got %q", c.DB.Driver)
		}
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for the database repository")
		}
	}
	if c.OIDC.Enabled && (c.OIDC.Issuer == "" || c.OIDC.ClientID == "") {
		return errors.New("oidc.issuer and oidc.client_id are required when oidc is enabled")
	}
	return nil
}
