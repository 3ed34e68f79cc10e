package config

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentEnvironment(t *testing.T) {
	tests := []struct {
		name            string
		want            string
		environmentFlag string
	}{{
		name:            "should default if not provided",
		want:            DefaultEnvironment,
		environmentFlag: "",
	}, {
		name:            "should return staging if environment is set to staging",
		want:            "staging",
		environmentFlag: "staging",
	}, {
		name:            "should return staging if environment is set to production",
		want:            "production",
		environmentFlag: "production",
	}, {
		name:            "should return development if environment is set to development",
		want:            "development",
		environmentFlag: "development",
	}, {
		name:            "should default if value is defined but not production or staging",
		want:            DefaultEnvironment,
		environmentFlag: "invalid-value",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				os.Unsetenv("environment")
				currentEnvironment = ""
			}()

			envOnce = sync.Once{}
			_ = os.Setenv("environment", tt.environmentFlag)

			if got := GetCurrentEnvironment(); got != tt.want {
				t.Errorf("GetCurrentEnvironment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("should write json outside of development", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		logger := NewLogger(buffer, "production", "info")

		logger.Info().Str("id", "abc").Msg("0.123 seconds to compile")

		line := map[string]any{}
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
		assert.Equal(t, "0.123 seconds to compile", line["message"])
		assert.Equal(t, "abc", line["id"])
		assert.Equal(t, "info", line["level"])
	})

	t.Run("should write console output in development", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		logger := NewLogger(buffer, DevelopmentEnvironment, "info")

		logger.Info().Msg("0.123 seconds to compile")

		assert.Contains(t, buffer.String(), "0.123 seconds to compile")
		assert.False(t, json.Valid(buffer.Bytes()))
	})

	t.Run("should respect the level", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		logger := NewLogger(buffer, "production", "warn")

		logger.Info().Msg("hidden")
		assert.Empty(t, buffer.String())
	})

	t.Run("should default an invalid level to info", func(t *testing.T) {
		buffer := &bytes.Buffer{}
		logger := NewLogger(buffer, "production", "loud")

		logger.Debug().Msg("hidden")
		assert.Empty(t, buffer.String())

		logger.Info().Msg("shown")
		assert.Contains(t, buffer.String(), "shown")
	})
}

func TestConfigureLogger(t *testing.T) {
	previous := log.Logger
	defer func() { log.Logger = previous }()

	ConfigureLogger("production", "warn")
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())

	ConfigureLogger(DevelopmentEnvironment, "debug")
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())
}
