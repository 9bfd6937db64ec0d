package testsupport

import (
	"context"
	"testing"

	"discshelf/internal/config"
	"discshelf/internal/journal"
)

// MustOpenJournal opens the journal at cfg.Journal.Path and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Journal {
	t.Helper()

	j, err := journal.Open(context.Background(), cfg.Journal.Path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() {
		_ = j.Close()
	})
	return j
}
