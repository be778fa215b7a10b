package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	ToolConfig struct {
		Engine *Engine
		Output *OutputConfig
	}
	OutputConfig struct {
		Directory string
		Overwrite bool
	}
)

func TestLoad(t *testing.T) {
	t.Run("it should load a basic struct from env vars", func(t *testing.T) {
		// GIVEN
		t.Setenv("GODECO_LOG_LEVEL", "debug")
		t.Setenv("GODECO_TRACE", "true")

		// WHEN
		conf, err := Load[Engine](WithEnvPrefix("GODECO"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.True(t, conf.Trace)
	})

	t.Run("it should load nested structs from env vars", func(t *testing.T) {
		// GIVEN
		t.Setenv("TOOL_ENGINE_LOG_LEVEL", "warn")
		t.Setenv("TOOL_OUTPUT_DIRECTORY", "/tmp/out")
		t.Setenv("TOOL_OUTPUT_OVERWRITE", "true")

		// WHEN
		conf, err := Load[ToolConfig](WithEnvPrefix("TOOL"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "warn", conf.Engine.LogLevel)
		assert.Equal(t, "/tmp/out", conf.Output.Directory)
		assert.True(t, conf.Output.Overwrite)
	})

	t.Run("it should apply defaults when env vars are missing", func(t *testing.T) {
		// WHEN
		conf, err := Load[Engine](WithEnvPrefix("UNSET"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.False(t, conf.Trace)
	})

	t.Run("it should work without a prefix", func(t *testing.T) {
		// GIVEN
		t.Setenv("LOG_LEVEL", "trace")

		// WHEN
		conf, err := Load[Engine]()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "trace", conf.LogLevel)
	})
}
