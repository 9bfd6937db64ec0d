package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeWorkbook(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeWorkbook() error {
	c.Workbook.Path = strings.TrimSpace(c.Workbook.Path)
	if c.Workbook.Path == "" {
		if value, ok := os.LookupEnv(workbookEnvVar); ok {
			c.Workbook.Path = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Workbook.Path, err = expandPath(c.Workbook.Path); err != nil {
		return fmt.Errorf("workbook.path: %w", err)
	}
	c.Workbook.Format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Workbook.Format)), ".")
	if c.Workbook.Format == "" {
		c.Workbook.Format = defaultWorkbookFormat
	}
	if c.Workbook.LockTimeoutSeconds <= 0 {
		c.Workbook.LockTimeoutSeconds = defaultLockTimeoutSeconds
	}
	if c.Workbook.SaveTimeoutSeconds <= 0 {
		c.Workbook.SaveTimeoutSeconds = defaultSaveTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	var err error
	if c.Journal.Path, err = expandPath(strings.TrimSpace(c.Journal.Path)); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
