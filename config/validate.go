package config

import (
	"path/filepath"

	"github.com/teranos/dep5/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input.SPDX == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "input.spdx cannot be empty")
	}

	// The output must not overwrite an input
	if c.Output.Path != "" {
		out := filepath.Clean(c.Output.Path)
		if out == filepath.Clean(c.Input.SPDX) {
			return errors.Wrapf(errors.ErrInvalidConfig, "output.path %s is the same file as input.spdx", c.Output.Path)
		}
		if c.Input.Overrides != "" && out == filepath.Clean(c.Input.Overrides) {
			return errors.Wrapf(errors.ErrInvalidConfig, "output.path %s is the same file as input.overrides", c.Output.Path)
		}
	}

	// Watch debounce: 0 = react immediately, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
