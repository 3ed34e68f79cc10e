package config

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var currentEnvironment = ""

const DefaultEnvironment = "development"
const DevelopmentEnvironment = "development"

// envOnce is used to ensure concurrent tests only pull the value once at startup. While it is
// mainly used for tests, it also ensures safely with the chance the value is overwritten during
// runtime.
var envOnce sync.Once

// GetCurrentEnvironment returns the environment the tool is running in,
// read from the `environment` variable and defaulting to development when
// it is missing or unknown.
func GetCurrentEnvironment() string {
	envOnce.Do(func() {
		currentEnvironment = os.Getenv("environment")

		if currentEnvironment == "" {
			currentEnvironment = DefaultEnvironment
			return
		}

		for _, s := range []string{"staging", "production", "development"} {
			if currentEnvironment == s {
				currentEnvironment = s
				return
			}
		}

		currentEnvironment = DefaultEnvironment
	})

	return currentEnvironment
}

// GetCurrentOs returns the current environment if the system
// is running in windows or a linux environment. E.g defaulting to
// linux for mac.
func GetCurrentOs() string {
	if strings.EqualFold(runtime.GOOS, "windows") {
		return "windows"
	}

	return "linux"
}

// NewLogger builds the logger for the given environment. Development gets
// the human readable console writer, everything else structured json. An
// unknown level falls back to info.
func NewLogger(w io.Writer, environment string, level string) zerolog.Logger {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(level))

	if err != nil || parsedLevel == zerolog.NoLevel {
		parsedLevel = zerolog.InfoLevel
	}

	if environment == DevelopmentEnvironment {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    GetCurrentOs() == "windows",
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(w).Level(parsedLevel).With().Timestamp().Logger()
}

// ConfigureLogger replaces the global logger with one for the given
// environment writing to standard error.
func ConfigureLogger(environment string, level string) {
	log.Logger = NewLogger(os.Stderr, environment, level)
}
