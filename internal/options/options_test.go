package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type decodeConfig struct {
	workers int
	strict  bool
}

func withWorkers(n int) Option[*decodeConfig] {
	return New(func(c *decodeConfig) error {
		if n < 1 {
			return errors.New("workers must be positive")
		}
		c.workers = n

		return nil
	})
}

func withStrict(strict bool) Option[*decodeConfig] {
	return NoError(func(c *decodeConfig) {
		c.strict = strict
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &decodeConfig{}
		err := Apply(cfg, withWorkers(2), withStrict(true), withWorkers(4))
		require.NoError(t, err)
		require.Equal(t, 4, cfg.workers)
		require.True(t, cfg.strict)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &decodeConfig{}
		err := Apply(cfg, withStrict(true), withWorkers(0), withWorkers(3))
		require.Error(t, err)
		require.True(t, cfg.strict)
		require.Equal(t, 0, cfg.workers)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &decodeConfig{}
		require.NoError(t, Apply(cfg, nil, withWorkers(1)))
		require.Equal(t, 1, cfg.workers)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &decodeConfig{workers: 7}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 7, cfg.workers)
	})
}
