// internal/config/config.go
//
// Runtime configuration. Values come from the environment (after .env is
// loaded by main), or from a YAML file with environment overrides.

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full server and CLI configuration.
type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Port     string `yaml:"port" env:"PORT" env-default:"5175"`
	AppEnv   string `yaml:"app-env" env:"APP_ENV" env-default:"development"`
	DBPath   string `yaml:"db-path" env:"DB_PATH" env-default:"./data/app.db"`

	Store Store `yaml:"store"`
	Auth  Auth  `yaml:"auth"`
	Words Words `yaml:"words"`

	ClientOrigin string `yaml:"client-origin" env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`
	DailySalt    string `yaml:"daily-salt" env:"DAILY_SALT" env-default:"local_dev_salt"`
}

// Store selects where in-progress rounds live.
type Store struct {
	Kind      string        `yaml:"kind" env:"STORE" env-default:"memory"`
	RedisAddr string        `yaml:"redis-addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RoundTTL  time.Duration `yaml:"round-ttl" env:"ROUND_TTL" env-default:"24h"`
}

// Auth configures JWT sessions.
type Auth struct {
	JWTSecret      string `yaml:"jwt-secret" env:"JWT_SECRET" env-default:"dev_secret_change_me"`
	JWTExpiresDays int    `yaml:"jwt-expires-days" env:"JWT_EXPIRES_DAYS" env-default:"14"`
	CookieName     string `yaml:"cookie-name" env:"COOKIE_NAME" env-default:"scramble_token"`
}

// Words locates the word lists. Empty file paths use the embedded lists.
type Words struct {
	RootsFile   string `yaml:"roots-file" env:"WORDS_ROOTS_FILE"`
	DictFile    string `yaml:"dict-file" env:"WORDS_DICT_FILE"`
	DefaultRoot string `yaml:"default-root" env:"DEFAULT_ROOT" env-default:"silkworm"`
	Locale      string `yaml:"locale" env:"LOCALE" env-default:"en"`
}

// Load reads configuration from the environment, or from the YAML file at
// path with environment overrides when path is not empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if cfg.Store.Kind != "memory" && cfg.Store.Kind != "redis" {
		return nil, fmt.Errorf("unknown store %q: must be memory or redis", cfg.Store.Kind)
	}

	return cfg, nil
}

// Production reports whether cookies should be marked Secure.
func (that *Config) Production() bool {
	return that.AppEnv == "production"
}
