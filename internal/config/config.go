// Package config loads the objectvalidate settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	ov "github.com/Gobd/objectvalidation"
	"github.com/Gobd/objectvalidation/internal/logger"
)

// Prefix is prepended to every variable name.
const Prefix = "OBJECTVALIDATE_"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	// ErrInvalidConfig is returned when parsed values fail validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the command and service settings.
type Config struct {
	FailFast bool `env:"FAIL_FAST" envDefault:"false"`
	// ForceRequired is "", "true" or "false".
	ForceRequired string `env:"FORCE_REQUIRED"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	Addr          string `env:"ADDR" envDefault:":8080"`
	SchemaDir     string `env:"SCHEMA_DIR" envDefault:"schemas"`
}

// Load reads the given .env files (".env" when none are given), then the
// environment. Missing .env files are skipped. Variables already set in the
// environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrParsingConfig, f, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate implements validation.Validatable.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ForceRequired, validation.In("true", "false")),
		validation.Field(&c.LogLevel, validation.Required, validation.By(func(any) error {
			_, err := logger.ParseLevel(c.LogLevel)
			return err
		})),
		validation.Field(&c.LogFormat, validation.Required,
			validation.In(string(logger.FormatText), string(logger.FormatJSON))),
		validation.Field(&c.Addr, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Options maps the config onto engine options.
func (c Config) Options() ov.Options {
	opts := ov.Options{FailFast: c.FailFast}
	if b, err := strconv.ParseBool(c.ForceRequired); err == nil {
		opts.ForceRequired = ov.Force(b)
	}
	return opts
}

// Logger builds the logger described by the config.
func (c Config) Logger(opts ...logger.Option) *slog.Logger {
	level, _ := logger.ParseLevel(c.LogLevel)
	base := []logger.Option{
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(c.LogFormat)),
	}
	return logger.New(append(base, opts...)...)
}
