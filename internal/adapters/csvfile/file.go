package csvfile

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"

	"github.com/okian/ridequeue/internal/domain/model"
)

const filePermission = 0o644

// WriteFile creates or truncates path and writes records to it.
// The file is closed before returning on every path.
func WriteFile(path string, records iter.Seq[model.VisitorRecord]) (n int, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrIO, cerr)
		}
	}()
	return Write(f, records)
}

// ReadFile opens path and feeds it through Read.
// Returns ErrNotFound if path does not name an existing regular file.
func ReadFile(path string, fn func(model.VisitorRecord)) (Result, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, fn)
}
