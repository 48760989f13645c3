package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"campus-intranet-go/locale"
	"campus-intranet-go/models"
)

// Config is the service configuration, read from the environment.
type Config struct {
	HTTPAddr         string `env:"HTTP_ADDR" envDefault:":8080"`
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"8"`
	PreferencePrefix string `env:"PREFERENCE_PREFIX" envDefault:"intranet:pref:"`
	DefaultLanguage  string `env:"DEFAULT_LANGUAGE" envDefault:"fr"`
	SeedData         bool   `env:"SEED_DATA" envDefault:"true"`
	UniversityName   string `env:"UNIVERSITY_NAME" envDefault:"Université XYZ"`
	GinMode          string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and parses the environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	if _, ok := locale.Parse(c.DefaultLanguage); !ok {
		return fmt.Errorf("DEFAULT_LANGUAGE %q is not one of fr, en, es, de", c.DefaultLanguage)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE %q is not one of debug, release, test", c.GinMode)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0, got %d", c.RedisDB)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Language returns the default UI language.
func (c Config) Language() models.Language {
	lang, ok := locale.Parse(c.DefaultLanguage)
	if !ok {
		return models.LanguageFrench
	}
	return lang
}

// UseRedis reports whether preferences go to Redis.
func (c Config) UseRedis() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
