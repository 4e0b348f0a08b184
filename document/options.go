package document

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/internal/options"
	"github.com/arloliu/bfast/objectmodel"
	"github.com/arloliu/bfast/section"
)

// Config holds the document decoding settings.
type Config struct {
	// Container applies to the outer container and every nested one.
	Container container.Config
	// Schema declares known table kinds. Nil decodes every table generically.
	Schema *entity.Schema
	// Concurrency bounds the number of tables built at once.
	Concurrency int
	Logger      *slog.Logger
}

// Option configures document decoding.
type Option = options.Option[*Config]

// DefaultConfig returns the container defaults, the VIM object model schema and
// one table builder per CPU.
func DefaultConfig() Config {
	return Config{
		Container:   container.DefaultConfig(),
		Schema:      objectmodel.Schema(),
		Concurrency: runtime.GOMAXPROCS(0),
		Logger:      slog.New(slog.DiscardHandler),
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

// container options lifted onto Config.
func lift(opt container.Option) Option {
	return options.New(func(c *Config) error {
		return options.Apply(&c.Container, opt)
	})
}

// WithLayoutPolicy selects the header layout rules for every container level.
func WithLayoutPolicy(policy section.LayoutPolicy) Option {
	return lift(container.WithLayoutPolicy(policy))
}

// WithDuplicatePolicy selects which buffer a duplicated name resolves to.
func WithDuplicatePolicy(policy container.DuplicatePolicy) Option {
	return lift(container.WithDuplicatePolicy(policy))
}

// WithSchema replaces the table schema. Nil decodes every table generically.
func WithSchema(schema *entity.Schema) Option {
	return options.NoError(func(c *Config) {
		c.Schema = schema
	})
}

// WithConcurrency bounds parallel table construction. 1 builds tables sequentially.
func WithConcurrency(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("invalid concurrency %d: must be at least 1", n)
		}
		c.Concurrency = n

		return nil
	})
}

// WithLogger sets the logger for the document and its containers. Nil restores
// the discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(c *Config) error {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		c.Logger = logger

		return options.Apply(&c.Container, container.WithLogger(logger))
	})
}
