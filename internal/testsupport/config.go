package testsupport

import (
	"path/filepath"
	"testing"

	"discshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose workbook, journal and log paths all live
// under a fresh temp directory. Nothing is created on disk.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Workbook.Path = filepath.Join(base, "catalog.xls")
	cfgVal.Workbook.LockTimeoutSeconds = 1
	cfgVal.Workbook.SaveTimeoutSeconds = 5
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWorkbookName places the workbook under the temp directory with the
// given file name. The extension decides the format of a new file.
func WithWorkbookName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workbook.Path = filepath.Join(b.baseDir, name)
	}
}

// WithJournalDisabled turns the journal off.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithJournalPath moves the journal database relative to the temp directory.
func WithJournalPath(rel string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Path = filepath.Join(b.baseDir, rel)
	}
}
