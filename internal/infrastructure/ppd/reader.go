package ppd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/openclaw/cupsprint/internal/domain/printing"
	"github.com/openclaw/cupsprint/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDirs are the CUPS PPD directories on Linux and macOS, in lookup order
var DefaultDirs = []string{"/etc/cups/ppd", "/private/etc/cups/ppd"}

// ReaderConfig contains configuration for the PPD reader
type ReaderConfig struct {
	// Dirs are searched in order for <printer>.ppd; the first match wins.
	// Default: DefaultDirs
	Dirs []string
	// Logger for debug output
	Logger *zap.Logger
}

// Reader locates and parses printer PPD files
type Reader struct {
	dirs   []string
	logger *zap.Logger
}

// NewReader creates a new PPD reader
func NewReader(config *ReaderConfig) *Reader {
	if config == nil {
		config = &ReaderConfig{}
	}

	dirs := config.Dirs
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reader{
		dirs:   dirs,
		logger: logger,
	}
}

// Locate returns the path of the printer's PPD file. The name is validated
// before it is joined into a path.
func (r *Reader) Locate(printer string) (string, error) {
	name, err := printing.ValidatePrinterName(printer)
	if err != nil {
		return "", err
	}

	for _, dir := range r.dirs {
		path := filepath.Join(dir, name+".ppd")
		info, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Debug("skipping PPD candidate", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		if info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", shared.NewDomainError(shared.CodePPDNotFound,
		fmt.Sprintf("No PPD file found for %s", name))
}

// Load locates and parses the printer's PPD file
func (r *Reader) Load(ctx context.Context, printer string) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path, err := r.Locate(printer)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PPD file %s: %w", path, err)
	}

	doc := Parse(data)
	r.logger.Debug("PPD parsed",
		zap.String("printer", printer),
		zap.String("path", path),
		zap.Int("entries", len(doc.entries)))
	return doc, nil
}

// Spec returns the printer's current capability snapshot. A printer without
// a readable PPD gets printing.FallbackSpec; only an invalid name is an error.
func (r *Reader) Spec(ctx context.Context, printer string) (*printing.PrinterSpec, error) {
	doc, err := r.Load(ctx, printer)
	if err != nil {
		switch {
		case shared.IsCode(err, shared.CodeInvalidPrinterName):
			return nil, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case shared.IsCode(err, shared.CodePPDNotFound):
			r.logger.Debug("no PPD, using fallback spec", zap.String("printer", printer))
		default:
			r.logger.Warn("PPD unreadable, using fallback spec",
				zap.String("printer", printer), zap.Error(err))
		}
		return printing.FallbackSpec(), nil
	}
	return doc.Spec(), nil
}

// Info returns the printer's descriptive PPD view. Unlike Spec, a missing
// PPD is reported as a PPD_NOT_FOUND domain error.
func (r *Reader) Info(ctx context.Context, printer string) (*printing.PrinterInfo, error) {
	doc, err := r.Load(ctx, printer)
	if err != nil {
		return nil, err
	}
	return doc.Info(printer), nil
}
