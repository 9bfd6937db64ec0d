package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"discshelf/internal/fileutil"
	"discshelf/internal/logging"
)

const (
	defaultLockTimeout = 10 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
	workbookFileMode   = 0o644
)

// FileStore keeps the workbook at a local path.
type FileStore struct {
	path        string
	backups     int
	lockTimeout time.Duration
	logger      *slog.Logger
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithBackups keeps n rotated copies of the previous workbook.
func WithBackups(n int) FileOption {
	return func(s *FileStore) { s.backups = max(n, 0) }
}

// WithLockTimeout bounds how long Save waits for the workbook lock.
func WithLockTimeout(d time.Duration) FileOption {
	return func(s *FileStore) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithLogger sets the logger used for save diagnostics.
func WithLogger(logger *slog.Logger) FileOption {
	return func(s *FileStore) { s.logger = logging.NewComponentLogger(logger, "storage") }
}

// NewFileStore returns a store for path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:        path,
		lockTimeout: defaultLockTimeout,
		logger:      logging.NewComponentLogger(nil, "storage"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the workbook path.
func (s *FileStore) Path() string { return s.path }

// LockPath returns the advisory lock file used for saves to path.
func LockPath(path string) string { return path + ".lock" }

// Load reads the workbook. A missing file yields ErrNotFound.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return data, nil
}

// Save replaces the workbook with data under the advisory lock.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := CheckWritable(s.path); err != nil {
		return err
	}

	lock := flock.New(LockPath(s.path))
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if !locked {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("acquire workbook lock: %w", err)
		}
		return fmt.Errorf("%w: %s", ErrLocked, s.path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("release workbook lock failed", logging.Error(err), logging.String(logging.FieldPath, s.path))
		}
	}()

	if err := fileutil.RotateBackups(s.path, s.backups); err != nil {
		logging.WarnWithContext(s.logger, "workbook backup failed", "backup_failed",
			logging.Error(err),
			logging.String(logging.FieldPath, s.path),
			logging.String(logging.FieldErrorHint, "check free space and permissions next to the workbook"),
			logging.String(logging.FieldImpact, "previous version not backed up"),
		)
	}

	mode := os.FileMode(workbookFileMode)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := fileutil.WriteFileAtomic(s.path, data, mode); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Debug("workbook saved", logging.String(logging.FieldPath, s.path), logging.Int("bytes", len(data)))
	return nil
}

// Locked reports whether another holder has the workbook lock right now.
func (s *FileStore) Locked() (bool, error) {
	return IsLocked(s.path)
}

// IsLocked reports whether the save lock for path is currently held.
func IsLocked(path string) (bool, error) {
	if _, err := os.Stat(LockPath(path)); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	lock := flock.New(LockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe workbook lock: %w", err)
	}
	if ok {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}

// CheckWritable verifies the workbook's directory accepts new files and an
// existing workbook can be replaced.
func CheckWritable(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("workbook directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workbook directory %s is not a directory", dir)
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("workbook directory %s is not writable: %w", dir, err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
			return fmt.Errorf("workbook %s is not writable: %w", path, err)
		}
	}
	return nil
}
