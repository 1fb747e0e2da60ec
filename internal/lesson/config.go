package lesson

import (
	"fmt"
	"os"
	"time"

	"github.com/spacey-learn/spacey/internal/playback"
)

// EnvTypingDelay overrides the per-character typing delay (Go duration).
const EnvTypingDelay = "SPACEY_TYPING_DELAY"

// Config holds session timing.
type Config struct {
	Playback playback.Config
}

// DefaultConfig returns the standard timing: 30ms per character, 1500ms
// after a revealed item and 2000ms after a section transition.
func DefaultConfig() Config {
	return Config{Playback: playback.DefaultConfig()}
}

// ConfigFromEnv returns DefaultConfig with environment overrides applied.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvTypingDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTypingDelay, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("%s: must be positive, got %s", EnvTypingDelay, d)
		}
		cfg.Playback.TypingDelay = d
	}
	return cfg, nil
}
