package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	required := []struct {
		key   string
		value string
	}{
		{"paths.input_dir", c.Paths.InputDir},
		{"paths.intermediate_dir", c.Paths.IntermediateDir},
		{"paths.output_dir", c.Paths.OutputDir},
		{"paths.log_dir", c.Paths.LogDir},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s must be set", r.key)
		}
	}
	if c.Paths.IntermediateDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.intermediate_dir")
	}
	if c.Paths.InputDir == c.Paths.IntermediateDir {
		return errors.New("paths.intermediate_dir must differ from paths.input_dir")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
