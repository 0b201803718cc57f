package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateImaging(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if c.Dataset.TrainSubdir == c.Dataset.GallerySubdir ||
		c.Dataset.TrainSubdir == c.Dataset.QuerySubdir ||
		c.Dataset.GallerySubdir == c.Dataset.QuerySubdir {
		return errors.New("dataset subdirectories must be distinct")
	}
	return nil
}

func (c *Config) validateImaging() error {
	if c.Imaging.Side < 0 {
		return fmt.Errorf("imaging.side must be non-negative, got %d", c.Imaging.Side)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
