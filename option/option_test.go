package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type EngineOptions struct {
	Name     string
	Verbose  bool
	PoolSize int
}

func WithName(name string) Option[EngineOptions] {
	return func(opts *EngineOptions) {
		opts.Name = name
	}
}

func WithVerbose() Option[EngineOptions] {
	return func(opts *EngineOptions) {
		opts.Verbose = true
	}
}

func WithPoolSize(size int) Option[EngineOptions] {
	return func(opts *EngineOptions) {
		opts.PoolSize = size
	}
}

func TestBuild(t *testing.T) {
	t.Run("it should keep defaults when no option is given", func(t *testing.T) {
		// WHEN
		opts := Build(&EngineOptions{Name: "default", PoolSize: 4})

		// THEN
		assert.Equal(t, "default", opts.Name)
		assert.False(t, opts.Verbose)
		assert.Equal(t, 4, opts.PoolSize)
	})

	t.Run("it should apply all given options in order", func(t *testing.T) {
		// WHEN
		opts := Build(
			&EngineOptions{},
			WithName("first"),
			WithVerbose(),
			WithName("second"),
			WithPoolSize(8),
		)

		// THEN
		assert.Equal(t, "second", opts.Name)
		assert.True(t, opts.Verbose)
		assert.Equal(t, 8, opts.PoolSize)
	})
}
