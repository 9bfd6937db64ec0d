package preflight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"discshelf/internal/storage"
	"discshelf/internal/workbook"
)

// signatureSize covers both workbook signatures.
const signatureSize = 8

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWorkbook reports whether the workbook can be loaded and saved. A
// missing workbook passes: the first save creates it.
func CheckWorkbook(ctx context.Context, path string) Result {
	const name = "Workbook"

	if err := ctx.Err(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := storage.CheckWritable(path); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}

	format, err := sniffFormat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if format == workbook.FormatUnknown {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not an xls or xlsx workbook)", path)}
	}
	if err := storage.CheckWritable(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%s, error: %v)", path, format, err)}
	}

	locked, err := storage.IsLocked(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%s, error: %v)", path, format, err)}
	}
	if locked {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%s, error: save in progress by another process)", path, format)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s, read/write ok)", path, format)}
}

func sniffFormat(path string) (workbook.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return workbook.FormatUnknown, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	head := make([]byte, signatureSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return workbook.FormatUnknown, fmt.Errorf("read: %w", err)
	}
	return workbook.Detect(head[:n]), nil
}
