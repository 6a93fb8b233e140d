package report

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrDestinationUnavailable is returned when the output file cannot be opened.
var ErrDestinationUnavailable = errors.New("output destination unavailable")

// Open returns the report destination. An empty path selects stdout, which
// is never closed; any other path is created or truncated.
func Open(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDestinationUnavailable, err)
	}
	return f, nil
}

// WriteTo opens the destination, runs write and closes it again, even when
// write fails.
func WriteTo(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	w, err := Open(path, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing %s: %w", path, cerr))
		}
	}()
	return write(w)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
