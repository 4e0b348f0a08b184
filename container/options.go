package container

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/bfast/internal/options"
	"github.com/arloliu/bfast/section"
)

// Config holds the container decoding settings.
type Config struct {
	Layout     section.LayoutPolicy
	Duplicates DuplicatePolicy
	Logger     *slog.Logger
}

// Option configures container decoding.
type Option = options.Option[*Config]

// DefaultConfig returns strict layout rules, last-write-wins names and a discarding logger.
func DefaultConfig() Config {
	return Config{
		Layout:     section.LayoutStrict,
		Duplicates: LastWins,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithLayoutPolicy selects the header layout rules.
func WithLayoutPolicy(policy section.LayoutPolicy) Option {
	return options.New(func(c *Config) error {
		switch policy {
		case section.LayoutStrict, section.LayoutLenient:
			c.Layout = policy
			return nil
		default:
			return fmt.Errorf("invalid layout policy: %d", policy)
		}
	})
}

// WithDuplicatePolicy selects which buffer a duplicated name resolves to.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return options.New(func(c *Config) error {
		switch policy {
		case LastWins, FirstWins:
			c.Duplicates = policy
			return nil
		default:
			return fmt.Errorf("invalid duplicate policy: %d", policy)
		}
	})
}

// WithLogger sets the logger for stage and duplicate-name records. Nil restores the discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		c.Logger = logger
	})
}
