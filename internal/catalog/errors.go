package catalog

import (
	"fmt"
	"strings"
)

// ConfigError reports a lesson document that failed to load or validate.
// A session cannot start from an invalid document.
type ConfigError struct {
	Source   string
	Problems []string
	Err      error
}

func (e *ConfigError) Error() string {
	src := e.Source
	if src == "" {
		src = "lesson script"
	}
	if len(e.Problems) > 0 {
		return fmt.Sprintf("%s: validation failed:\n  %s", src, strings.Join(e.Problems, "\n  "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", src, e.Err)
	}
	return src + ": invalid configuration"
}

func (e *ConfigError) Unwrap() error { return e.Err }
