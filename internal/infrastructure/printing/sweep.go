package printing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// tempPDFPattern names the PDFs written by ImageConverter
const tempPDFPattern = "cupsprint-*.pdf"

// SweepStale removes generated PDFs in dir older than age. They are left
// behind only when a previous run was killed between conversion and
// cleanup. Files that cannot be removed are skipped.
func SweepStale(ctx context.Context, dir string, age time.Duration, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	matches, err := filepath.Glob(filepath.Join(dir, tempPDFPattern))
	if err != nil {
		return 0, NewConvertError(ErrCodeWriteFailed, "invalid temp directory pattern", err)
	}

	cutoff := time.Now().Add(-age)
	deleted := 0
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Debug("cannot remove stale PDF", zap.String("path", path), zap.Error(err))
			continue
		}
		deleted++
		logger.Debug("removed stale PDF", zap.String("path", path))
	}

	if deleted > 0 {
		logger.Info("stale PDF sweep completed",
			zap.Int("deleted", deleted),
			zap.Duration("age", age))
	}
	return deleted, nil
}
