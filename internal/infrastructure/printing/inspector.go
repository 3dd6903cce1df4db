package printing

import (
	"context"
	"math"

	"github.com/openclaw/cupsprint/internal/domain/printing"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

// mediaTolerance is the page size difference in points still treated as a match
const mediaTolerance = 1.0

func init() {
	// pdfcpu would otherwise create a config directory under the user's home
	api.DisableConfigDir()
}

// PDFInfo summarizes a PDF document
type PDFInfo struct {
	PageCount int
	// FirstPage is the size of page 1 in points
	FirstPage printing.PaperDimension
}

// MatchesMedia reports whether the first page has the size of dim, in
// either orientation
func (i *PDFInfo) MatchesMedia(dim printing.PaperDimension) bool {
	w, h := i.FirstPage.Width, i.FirstPage.Height
	same := math.Abs(w-dim.Width) <= mediaTolerance && math.Abs(h-dim.Height) <= mediaTolerance
	rotated := math.Abs(w-dim.Height) <= mediaTolerance && math.Abs(h-dim.Width) <= mediaTolerance
	return same || rotated
}

// PDFInspector reads page geometry from PDF files
type PDFInspector struct {
	logger *zap.Logger
}

// NewPDFInspector creates a new PDF inspector
func NewPDFInspector(logger *zap.Logger) *PDFInspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFInspector{logger: logger}
}

// Inspect returns the page count and first page size of the PDF at path
func (p *PDFInspector) Inspect(ctx context.Context, path string) (*PDFInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, NewConvertError(ErrCodeInspectFailed, "cannot read PDF page sizes", err)
	}
	if len(dims) == 0 {
		return nil, NewConvertError(ErrCodeInspectFailed, "PDF has no pages", nil)
	}

	info := &PDFInfo{
		PageCount: len(dims),
		FirstPage: printing.PaperDimension{Width: dims[0].Width, Height: dims[0].Height},
	}
	p.logger.Debug("PDF inspected",
		zap.String("path", path),
		zap.Int("pages", info.PageCount),
		zap.Float64("width_pt", info.FirstPage.Width),
		zap.Float64("height_pt", info.FirstPage.Height))
	return info, nil
}
