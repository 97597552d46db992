// Package domain implements the two-phase duplicate detection engine.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"dupscan.dev/pkg/dupscan/internal/adapter"
	m "dupscan.dev/pkg/dupscan/internal/model"
)

// ErrNotADirectory reports that the scan root does not exist or is not a
// directory. It is raised before any traversal begins.
var ErrNotADirectory = errors.New("scan root is not a directory")

// IgnoreSmallMinSize is the size filter preset applied when small files are
// ignored: anything under 128 KiB is skipped.
const IgnoreSmallMinSize int64 = 128 * 1024

// MinSize maps the "ignore small files" toggle onto the size filter presets.
func MinSize(ignoreSmall bool) int64 {
	if ignoreSmall {
		return IgnoreSmallMinSize
	}

	return 0
}

// Scanner walks a directory tree and streams one FileRecord per qualifying
// regular file, with the quick digest already computed.
type Scanner interface {
	// Stream produces a lazy, single-pass, finite sequence of FileRecords.
	// The record channel closes when the walk finishes or fails; the error
	// channel then carries at most one error.
	Stream(ctx context.Context, root m.Path, minSize int64) (<-chan m.FileRecord, <-chan error)
}

type scanner struct {
	fs     adapter.ScanFSAdapter
	hasher adapter.Hasher
}

// NewScanner creates a Scanner backed by the provided filesystem adapter and
// hasher.
func NewScanner(fs adapter.ScanFSAdapter, hasher adapter.Hasher) Scanner {
	return &scanner{fs: fs, hasher: hasher}
}

// Stream validates the root, then walks the tree in a background goroutine.
// If root is not an existing directory, no file is touched and the error
// channel already holds ErrNotADirectory when Stream returns.
func (s *scanner) Stream(ctx context.Context, root m.Path, minSize int64) (<-chan m.FileRecord, <-chan error) {
	records := make(chan m.FileRecord)
	errc := make(chan error, 1)

	info, err := s.fs.Stat(root)
	if err != nil || !info.IsDir() {
		close(records)
		errc <- fmt.Errorf("%w: %s", ErrNotADirectory, root)
		close(errc)

		return records, errc
	}

	go func() {
		defer close(records)
		defer close(errc)

		slog.Debug("starting scan", "root", root, "minSize", minSize)

		walkErr := s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				// Entries that vanish between listing and stat are
				// skipped, anything else aborts the walk.
				if os.IsNotExist(err) {
					return nil
				}

				return err
			}

			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			if info.Size() < minSize {
				return nil
			}

			digest, err := s.hasher.QuickDigest(m.Path(path))
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					slog.Debug("file vanished during scan", "path", path)
					return nil
				}

				return err
			}

			slog.Debug("new file record", "path", path, "size", info.Size())

			record := m.FileRecord{
				Path:   m.Path(path),
				Size:   info.Size(),
				Digest: digest,
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case records <- record:
			}

			return nil
		})

		if walkErr != nil {
			errc <- walkErr
		}
	}()

	return records, errc
}
