package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const settingWorkbook = "workbook_path"

// Journal is the SQLite-backed activity log.
type Journal struct {
	db      *sql.DB
	path    string
	session string
}

// Open initializes or connects to the journal database at path. Each Journal
// value gets a fresh session id that tags the rows it writes.
func Open(ctx context.Context, path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	j := &Journal{db: db, path: path, session: uuid.NewString()}
	if err := j.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Path returns the database file path.
func (j *Journal) Path() string { return j.path }

// Session returns the id stamped on rows written through this Journal.
func (j *Journal) Session() string { return j.session }

// RememberWorkbook stores the workbook path for later runs.
func (j *Journal) RememberWorkbook(ctx context.Context, path string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		settingWorkbook, path, timestamp(now()),
	)
	if err != nil {
		return fmt.Errorf("remember workbook: %w", err)
	}
	return nil
}

// RememberedWorkbook returns the last remembered workbook path, or "".
func (j *Journal) RememberedWorkbook(ctx context.Context) (string, error) {
	var path string
	err := j.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", settingWorkbook).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read remembered workbook: %w", err)
	}
	return path, nil
}
