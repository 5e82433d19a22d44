package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration after defaults have been applied
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port must be between 1 and 65535, got %d", c.Database.Port))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	if c.Engine.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("engine.concurrency must be positive, got %d", c.Engine.Concurrency))
	}

	if c.Chart.Width < 1 || c.Chart.Height < 1 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height))
	}

	return errors.Join(errs...)
}
