package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"discshelf/internal/config"
	"discshelf/internal/journal"
	"discshelf/internal/library"
	"discshelf/internal/logging"
	"discshelf/internal/storage"
	"discshelf/internal/workbook"
)

type globalFlags struct {
	config   string
	workbook string
	json     bool
	verbose  bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

// ensureLogger logs to the configured log file, and to stderr with --verbose.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		if c.flags.verbose {
			c.logger, c.loggerErr = logging.NewFromConfig(cfg)
			return
		}
		var outputs []string
		if cfg.Logging.Dir != "" {
			outputs = []string{filepath.Join(cfg.Logging.Dir, logging.LogFileName)}
		}
		if len(outputs) == 0 {
			c.logger = logging.NewNop()
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:            cfg.Logging.Level,
			Format:           cfg.Logging.Format,
			OutputPaths:      outputs,
			ErrorOutputPaths: outputs,
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) jsonOutput() bool {
	return c.flags != nil && c.flags.json
}

// openJournal returns nil when the journal is disabled.
func (c *commandContext) openJournal(ctx context.Context) (*journal.Journal, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path == "" {
		return nil, nil
	}
	j, err := journal.Open(ctx, cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// workbookPath resolves the workbook from the flag, the config (including
// DISCSHELF_WORKBOOK), or the journal's remembered path, in that order. A
// path given by flag is remembered.
func (c *commandContext) workbookPath(ctx context.Context, j *journal.Journal) (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if flag := strings.TrimSpace(c.flags.workbook); flag != "" {
		path, err := config.ExpandPath(flag)
		if err != nil {
			return "", fmt.Errorf("resolve workbook path: %w", err)
		}
		if j != nil {
			if err := j.RememberWorkbook(ctx, path); err != nil {
				return "", err
			}
		}
		return path, nil
	}
	if cfg.Workbook.Path != "" {
		return cfg.Workbook.Path, nil
	}
	if j != nil {
		path, err := j.RememberedWorkbook(ctx)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	return "", errors.New("no workbook configured; pass --workbook or set workbook.path in the config file")
}

// newFormat picks the format for a workbook that does not exist yet.
func newFormat(cfg *config.Config, path string) workbook.Format {
	if format, err := workbook.ParseFormat(cfg.Workbook.Format); err == nil {
		return format
	}
	return workbook.FormatForPath(path)
}

// session bundles an open library with the resources it depends on.
type session struct {
	lib     *library.Library
	journal *journal.Journal
	path    string
	logger  *slog.Logger
}

func (s *session) Close() {
	if s.lib != nil {
		_ = s.lib.Close()
	}
	if s.journal != nil {
		_ = s.journal.Close()
	}
}

func (c *commandContext) openSession(ctx context.Context) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	j, err := c.openJournal(ctx)
	if err != nil {
		return nil, err
	}
	path, err := c.workbookPath(ctx, j)
	if err != nil {
		if j != nil {
			_ = j.Close()
		}
		return nil, err
	}

	s := &session{journal: j, path: path}
	if j != nil {
		s.logger = logging.WithSession(logger, j.Session())
	} else {
		s.logger = logger
	}

	store := storage.NewFileStore(path,
		storage.WithBackups(cfg.Workbook.BackupCount),
		storage.WithLockTimeout(cfg.LockTimeout()),
		storage.WithLogger(s.logger),
	)
	opts := library.Options{
		Path:        path,
		Format:      newFormat(cfg, path),
		SaveTimeout: cfg.SaveTimeout(),
		Logger:      s.logger,
	}
	if j != nil {
		opts.Journal = j
	}
	lib, err := library.Open(ctx, store, opts)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.lib = lib
	return s, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
