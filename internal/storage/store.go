package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Load when no workbook exists yet.
	ErrNotFound = errors.New("workbook not found")
	// ErrLocked is returned by Save when another process holds the lock
	// past the lock timeout.
	ErrLocked = errors.New("workbook is locked by another process")
	// ErrQueueClosed is returned by SaveQueue after Close.
	ErrQueueClosed = errors.New("save queue closed")
)

// Store loads and saves the raw workbook bytes.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
