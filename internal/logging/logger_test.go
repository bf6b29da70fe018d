package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("JSONDefault", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&config.Config{LogLevel: "info", AppEnv: "test"}, &buf)

		logger.Info().Str("k", "v").Msg("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["message"])
		assert.Equal(t, "v", line["k"])
		assert.Equal(t, "test", line["env"])
	})

	t.Run("LevelFiltersDebug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&config.Config{LogLevel: "warn"}, &buf)

		logger.Info().Msg("dropped")
		assert.Zero(t, buf.Len())
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&config.Config{LogLevel: "loud"}, &buf)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("Console", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&config.Config{LogFormat: "console"}, &buf)

		logger.Info().Msg("pretty")
		assert.Contains(t, buf.String(), "pretty")
		assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
	})
}
