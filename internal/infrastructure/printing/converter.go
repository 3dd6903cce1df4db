package printing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/openclaw/cupsprint/internal/domain/printing"
	"go.uber.org/zap"

	// imaging registers bmp and tiff but not webp
	_ "golang.org/x/image/webp"
)

const (
	defaultJPEGQuality = 94
	defaultCreator     = "cupsprint"
	defaultStaleAfter  = 24 * time.Hour
	canvasImageName    = "canvas"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ConverterConfig contains configuration for the image converter
type ConverterConfig struct {
	// TempDir receives the generated PDFs. Default: os.TempDir()
	TempDir string
	// JPEGQuality of the embedded page image (1-100, default: 94)
	JPEGQuality int
	// Creator is written to the PDF metadata
	Creator string
	// StaleAfter is the age past which leftover PDFs in TempDir are
	// removed before each conversion. Default: 24h; negative disables.
	StaleAfter time.Duration
	// Logger for debug output
	Logger *zap.Logger
}

// ConvertResult describes a generated PDF
type ConvertResult struct {
	// Path of the temporary PDF; the caller owns it and must call Cleanup
	Path  string
	Media string
	DPI   int
	// WidthMM and HeightMM are the page size in millimeters
	WidthMM  float64
	HeightMM float64
	Fit      printing.PageFitResult
}

// Cleanup removes the generated PDF. It is safe to call more than once.
func (r *ConvertResult) Cleanup() error {
	if r == nil || r.Path == "" {
		return nil
	}
	err := os.Remove(r.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ImageConverter renders raster images onto one PDF page sized for a printer
type ImageConverter struct {
	config *ConverterConfig
	logger *zap.Logger
}

// NewImageConverter creates a new image converter
func NewImageConverter(config *ConverterConfig) *ImageConverter {
	if config == nil {
		config = &ConverterConfig{}
	}

	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}
	if config.JPEGQuality <= 0 || config.JPEGQuality > 100 {
		config.JPEGQuality = defaultJPEGQuality
	}
	if config.Creator == "" {
		config.Creator = defaultCreator
	}
	if config.StaleAfter == 0 {
		config.StaleAfter = defaultStaleAfter
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImageConverter{
		config: config,
		logger: logger,
	}
}

// Convert decodes the image at path, fits it into the spec's imageable area
// on a white page canvas and writes the canvas as a one-page PDF.
func (c *ImageConverter) Convert(ctx context.Context, path string, spec *printing.PrinterSpec) (*ConvertResult, error) {
	if spec == nil {
		spec = printing.FallbackSpec()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	src, err := imaging.Open(path)
	if err != nil {
		return nil, NewConvertError(ErrCodeDecodeFailed,
			fmt.Sprintf("cannot decode %s", filepath.Base(path)), err)
	}

	canvas, fit, err := Compose(src, spec)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.config.StaleAfter > 0 {
		if _, err := SweepStale(ctx, c.config.TempDir, c.config.StaleAfter, c.logger); err != nil {
			c.logger.Debug("stale PDF sweep failed", zap.Error(err))
		}
	}

	out, err := os.CreateTemp(c.config.TempDir, tempPDFPattern)
	if err != nil {
		return nil, NewConvertError(ErrCodeWriteFailed, "failed to create temp PDF file", err)
	}
	pdfPath := out.Name()
	out.Close()

	if err := c.writePDF(canvas, spec, pdfPath, filepath.Base(path)); err != nil {
		os.Remove(pdfPath)
		return nil, err
	}

	c.logger.Debug("image converted",
		zap.String("source", path),
		zap.String("pdf", pdfPath),
		zap.Int("canvas_width", fit.CanvasWidth),
		zap.Int("canvas_height", fit.CanvasHeight),
		zap.Stringer("placement", fit.Bounds()),
		zap.Duration("duration", time.Since(startTime)))

	return &ConvertResult{
		Path:     pdfPath,
		Media:    spec.Media,
		DPI:      spec.DPI,
		WidthMM:  spec.WidthMM(),
		HeightMM: spec.HeightMM(),
		Fit:      fit,
	}, nil
}

// Compose flattens src onto white, resizes it with Lanczos to the fitted size
// and pastes it onto a white canvas the size of the full page.
func Compose(src image.Image, spec *printing.PrinterSpec) (*image.NRGBA, printing.PageFitResult, error) {
	bounds := src.Bounds()
	fit, err := printing.FitImage(spec, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, printing.PageFitResult{}, NewConvertError(ErrCodeInvalidGeometry, "cannot fit image to page", err)
	}

	// transparent and palette pixels become opaque against white
	flat := imaging.New(bounds.Dx(), bounds.Dy(), white)
	flat = imaging.Overlay(flat, imaging.Clone(src), image.Pt(0, 0), 1.0)

	resized := imaging.Resize(flat, fit.Width, fit.Height, imaging.Lanczos)

	canvas := imaging.New(fit.CanvasWidth, fit.CanvasHeight, white)
	canvas = imaging.Paste(canvas, resized, fit.Origin())
	return canvas, fit, nil
}

// writePDF embeds canvas as a JPEG covering a page of the spec's size
func (c *ImageConverter) writePDF(canvas image.Image, spec *printing.PrinterSpec, pdfPath, title string) error {
	var jpg bytes.Buffer
	if err := imaging.Encode(&jpg, canvas, imaging.JPEG, imaging.JPEGQuality(c.config.JPEGQuality)); err != nil {
		return NewConvertError(ErrCodeEncodeFailed, "failed to encode page image", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: spec.Page.Width, Ht: spec.Page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(c.config.Creator, true)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(canvasImageName, opts, &jpg)
	pdf.ImageOptions(canvasImageName, 0, 0, spec.Page.Width, spec.Page.Height, false, opts, 0, "")

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return NewConvertError(ErrCodeWriteFailed, "failed to write PDF", err)
	}
	return nil
}
