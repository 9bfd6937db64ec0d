package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWorkbook(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWorkbook() error {
	switch c.Workbook.Format {
	case "auto", "xls", "xlsx":
	default:
		return fmt.Errorf("workbook.format must be one of auto, xls, xlsx (got %q)", c.Workbook.Format)
	}
	if c.Workbook.BackupCount < 0 {
		return errors.New("workbook.backup_count must be zero or positive")
	}
	if c.Workbook.SaveTimeoutSeconds < c.Workbook.LockTimeoutSeconds {
		return errors.New("workbook.save_timeout_seconds must be at least workbook.lock_timeout_seconds")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}
