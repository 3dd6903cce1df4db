package printing

import (
	"context"
	"errors"
	"fmt"

	"github.com/openclaw/cupsprint/internal/domain/printing"
	"github.com/openclaw/cupsprint/internal/domain/shared"
	"github.com/openclaw/cupsprint/internal/infrastructure/logger"
	infra "github.com/openclaw/cupsprint/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// PrinterGateway talks to the print spooler
type PrinterGateway interface {
	DefaultPrinter(ctx context.Context) (string, bool, error)
	ListPrinters(ctx context.Context) ([]printing.Printer, error)
	Submit(ctx context.Context, printer, file string, spec *printing.PrinterSpec) (string, error)
	Options(ctx context.Context, printer string) ([]printing.PrinterOption, error)
}

// CapabilitySource reads printer capabilities from PPD files
type CapabilitySource interface {
	Spec(ctx context.Context, printer string) (*printing.PrinterSpec, error)
	Info(ctx context.Context, printer string) (*printing.PrinterInfo, error)
}

// ImageConverter turns a raster image into a one-page PDF for a printer
type ImageConverter interface {
	Convert(ctx context.Context, path string, spec *printing.PrinterSpec) (*infra.ConvertResult, error)
}

// PDFInspector reads page geometry from PDF files
type PDFInspector interface {
	Inspect(ctx context.Context, path string) (*infra.PDFInfo, error)
}

// FileValidator checks that a file may be printed and returns its real path
type FileValidator interface {
	Validate(path string) (string, error)
}

// ConversionError reports that an image could not be turned into a PDF.
// The spooler is never invoked after one.
type ConversionError struct {
	Cause error
}

func (e *ConversionError) Error() string {
	return "Error converting image: " + e.Cause.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// PrintService handles printer queries and print submission
type PrintService struct {
	gateway   PrinterGateway
	caps      CapabilitySource
	converter ImageConverter
	inspector PDFInspector
	files     FileValidator
	logger    *zap.Logger
}

// NewPrintService creates a new PrintService
func NewPrintService(
	gateway PrinterGateway,
	caps CapabilitySource,
	converter ImageConverter,
	inspector PDFInspector,
	files FileValidator,
	log *zap.Logger,
) *PrintService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PrintService{
		gateway:   gateway,
		caps:      caps,
		converter: converter,
		inspector: inspector,
		files:     files,
		logger:    log,
	}
}

// log returns the invocation logger carried by ctx, falling back to the
// service logger outside an invocation
func (s *PrintService) log(ctx context.Context) *zap.Logger {
	if logger.GetInvocationID(ctx) != "" {
		return logger.FromContext(ctx)
	}
	return s.logger
}

// resolvePrinter returns the validated printer name, falling back to the
// system default when none is given
func (s *PrintService) resolvePrinter(ctx context.Context, printer string) (string, error) {
	if printer == "" {
		name, ok, err := s.gateway.DefaultPrinter(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to resolve default printer: %w", err)
		}
		if !ok {
			return "", shared.ErrNoDefaultPrinter
		}
		printer = name
	}
	return printing.ValidatePrinterName(printer)
}

// ListPrinters returns every printer known to the spooler
func (s *PrintService) ListPrinters(ctx context.Context) ([]PrinterResponse, error) {
	printers, err := s.gateway.ListPrinters(ctx)
	if err != nil {
		return nil, err
	}
	return toPrinterResponses(printers), nil
}

// GetInfo describes a printer from its PPD
func (s *PrintService) GetInfo(ctx context.Context, printer string) (*InfoResponse, error) {
	name, err := s.resolvePrinter(ctx, printer)
	if err != nil {
		return nil, err
	}

	info, err := s.caps.Info(ctx, name)
	if err != nil {
		return nil, err
	}
	return toInfoResponse(info), nil
}

// GetOptions returns a printer's configurable options
func (s *PrintService) GetOptions(ctx context.Context, printer string) (*OptionsResponse, error) {
	name, err := s.resolvePrinter(ctx, printer)
	if err != nil {
		return nil, err
	}

	options, err := s.gateway.Options(ctx, name)
	if err != nil {
		return nil, err
	}
	return &OptionsResponse{Printer: name, Options: toOptionResponses(options)}, nil
}

// Print validates the file, converts images to a PDF sized for the printer
// and submits the result. The response is never nil; on failure it carries
// as much as was known and the error message.
func (s *PrintService) Print(ctx context.Context, req PrintRequest) (*PrintResponse, error) {
	resp := &PrintResponse{}
	fail := func(err error) (*PrintResponse, error) {
		resp.OK = false
		resp.Error = err.Error()
		return resp, err
	}
	progress := req.Progress
	if progress == nil {
		progress = func(string) {}
	}

	file, err := s.files.Validate(req.File)
	if err != nil {
		return fail(err)
	}

	printer, err := s.resolvePrinter(ctx, req.Printer)
	if err != nil {
		return fail(err)
	}

	spec, err := s.caps.Spec(ctx, printer)
	if err != nil {
		return fail(err)
	}

	toPrint := file
	if printing.IsImageFile(file) {
		progress("Converting image to PDF...")
		result, err := s.converter.Convert(ctx, file, spec)
		if err != nil {
			return fail(&ConversionError{Cause: err})
		}
		defer func() {
			if err := result.Cleanup(); err != nil {
				s.log(ctx).Warn("failed to remove temporary PDF",
					zap.String("path", result.Path), zap.Error(err))
			}
		}()
		progress(fmt.Sprintf("Generated PDF: %s (%.0f×%.0fmm) at %d DPI",
			result.Media, result.WidthMM, result.HeightMM, result.DPI))
		toPrint = result.Path
	} else {
		s.checkPDF(ctx, file, spec)
	}

	resp.Printer = printer
	resp.File = file

	jobID, err := s.gateway.Submit(ctx, printer, toPrint, spec)
	if err != nil {
		return fail(err)
	}

	resp.OK = true
	resp.JobID = jobID
	s.log(ctx).Info("print job submitted",
		zap.String("printer", printer),
		zap.String("file", file),
		zap.String("media", spec.Media),
		zap.String("job_id", jobID))
	return resp, nil
}

// checkPDF logs the PDF's geometry and warns when its first page does not
// match the printer media. It never blocks printing.
func (s *PrintService) checkPDF(ctx context.Context, file string, spec *printing.PrinterSpec) {
	if s.inspector == nil {
		return
	}
	info, err := s.inspector.Inspect(ctx, file)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log(ctx).Warn("cannot inspect PDF", zap.String("file", file), zap.Error(err))
		}
		return
	}
	if !info.MatchesMedia(spec.Page) {
		s.log(ctx).Warn("PDF page size differs from printer media, relying on fit-to-page",
			zap.String("file", file),
			zap.String("media", spec.Media),
			zap.Float64("page_width_pt", info.FirstPage.Width),
			zap.Float64("page_height_pt", info.FirstPage.Height))
	}
}
