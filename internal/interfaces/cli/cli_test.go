package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/openclaw/cupsprint/internal/application/printing"
	"github.com/openclaw/cupsprint/internal/domain/shared"
	infra "github.com/openclaw/cupsprint/internal/infrastructure/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	printers []printing.PrinterResponse
	info     *printing.InfoResponse
	options  *printing.OptionsResponse
	printed  *printing.PrintResponse
	err      error

	gotPrinter string
	gotRequest printing.PrintRequest
}

func (f *fakeService) ListPrinters(ctx context.Context) ([]printing.PrinterResponse, error) {
	return f.printers, f.err
}

func (f *fakeService) GetInfo(ctx context.Context, printer string) (*printing.InfoResponse, error) {
	f.gotPrinter = printer
	return f.info, f.err
}

func (f *fakeService) GetOptions(ctx context.Context, printer string) (*printing.OptionsResponse, error) {
	f.gotPrinter = printer
	return f.options, f.err
}

func (f *fakeService) Print(ctx context.Context, req printing.PrintRequest) (*printing.PrintResponse, error) {
	f.gotRequest = req
	if req.Progress != nil && f.err == nil {
		req.Progress("Converting image to PDF...")
	}
	return f.printed, f.err
}

type run struct {
	code   int
	stdout string
	stderr string
	closed bool
}

func execute(t *testing.T, svc PrintService, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	var r run
	c := New(&Config{
		Version: "1.2.3",
		Stdout:  &stdout,
		Stderr:  &stderr,
		Bootstrap: func(ctx context.Context, opts GlobalOptions) (*App, error) {
			return &App{Service: svc, Close: func() { r.closed = true }}, nil
		},
	})
	r.code = c.Execute(context.Background(), args)
	r.stdout = stdout.String()
	r.stderr = stderr.String()
	return r
}

func ptr(s string) *string { return &s }

func TestCLI_NoCommand(t *testing.T) {
	r := execute(t, &fakeService{})

	assert.Equal(t, ExitFailure, r.code)
	assert.Contains(t, r.stdout, "Usage:")
	assert.Contains(t, r.stdout, "print")
	assert.False(t, r.closed, "service is not built without a command")
}

func TestCLI_Version(t *testing.T) {
	r := execute(t, &fakeService{}, "--version")

	assert.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "1.2.3")
}

func TestCLI_UnknownCommand(t *testing.T) {
	r := execute(t, &fakeService{}, "scan")

	assert.Equal(t, ExitFailure, r.code)
	assert.Contains(t, r.stderr, "Error: unknown command")
}

func TestCLI_BootstrapFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := New(&Config{
		Stdout: &stdout,
		Stderr: &stderr,
		Bootstrap: func(ctx context.Context, opts GlobalOptions) (*App, error) {
			assert.Equal(t, "/etc/custom.toml", opts.ConfigFile)
			assert.Equal(t, "debug", opts.LogLevel)
			return nil, errors.New("invalid configuration: log.level must be one of [debug info warn error]")
		},
	})

	code := c.Execute(context.Background(), []string{"list", "--config", "/etc/custom.toml", "--log-level", "debug"})
	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "Error: invalid configuration: log.level must be one of [debug info warn error]\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestCLI_List(t *testing.T) {
	svc := &fakeService{printers: []printing.PrinterResponse{
		{Name: "HP_LaserJet", Status: "idle", Enabled: true, Default: true},
		{Name: "Old_Dot", Status: "unknown", Enabled: false},
	}}

	t.Run("text", func(t *testing.T) {
		r := execute(t, svc, "list")
		assert.Equal(t, ExitOK, r.code)
		assert.Equal(t, "  HP_LaserJet  [idle, enabled] (default)\n  Old_Dot  [unknown, disabled]\n", r.stdout)
		assert.True(t, r.closed)
	})

	t.Run("json", func(t *testing.T) {
		r := execute(t, svc, "list", "--json")
		assert.Equal(t, ExitOK, r.code)

		var got []map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
		require.Len(t, got, 2)
		assert.Equal(t, map[string]any{"name": "HP_LaserJet", "status": "idle", "enabled": true, "default": true}, got[0])
		assert.Contains(t, r.stdout, "\n  {\n    \"name\"")
	})

	t.Run("empty", func(t *testing.T) {
		r := execute(t, &fakeService{printers: []printing.PrinterResponse{}}, "list")
		assert.Equal(t, "No printers found.\n", r.stdout)

		r = execute(t, &fakeService{printers: []printing.PrinterResponse{}}, "list", "--json")
		assert.Equal(t, "[]\n", r.stdout)
	})

	t.Run("failure", func(t *testing.T) {
		failing := &fakeService{err: errors.New("Could not list printers")}

		r := execute(t, failing, "list")
		assert.Equal(t, ExitFailure, r.code)
		assert.Equal(t, "Error: Could not list printers\n", r.stderr)

		r = execute(t, failing, "list", "--json")
		assert.Equal(t, ExitFailure, r.code)
		assert.JSONEq(t, `{"error":"Could not list printers"}`, r.stdout)
	})
}

func TestCLI_Info(t *testing.T) {
	svc := &fakeService{info: &printing.InfoResponse{
		Printer:       "Office",
		Manufacturer:  "Canon",
		Model:         "Canon MF4400",
		Resolution:    "300x300dpi",
		DefaultPaper:  "A4",
		DefaultDuplex: "None",
		Trays:         []string{"Auto", "Manual"},
		PaperSizes: []printing.PaperSizeResponse{
			{Name: "A4", WidthMM: 209.9, HeightMM: 297, Default: true,
				MarginsMM: &printing.MarginsDTO{Left: 3.5, Bottom: 3.5, Right: 3.5, Top: 3.5}},
			{Name: "Letter", WidthMM: 215.9, HeightMM: 279.4,
				MarginsMM: &printing.MarginsDTO{Left: 6.4, Bottom: 12.7, Right: 6.4, Top: 12.7}},
			{Name: "Custom", WidthMM: 100, HeightMM: 150},
		},
	}}

	t.Run("text", func(t *testing.T) {
		r := execute(t, svc, "info", "--printer", "Office")
		assert.Equal(t, ExitOK, r.code)
		assert.Equal(t, "Office", svc.gotPrinter)
		assert.Equal(t, `Printer: Office

  Manufacturer: Canon
  Model: Canon MF4400
  Resolution: 300x300dpi
  Default paper: A4
  Default duplex: None
  Trays: Auto, Manual

Paper sizes (3):

  A4: 210 × 297 mm  margins: 3.5mm (default)
  Letter: 216 × 279 mm  margins: L6.4 B12.7 R6.4 T12.7mm
  Custom: 100 × 150 mm
`, r.stdout)
	})

	t.Run("json omits unknown fields", func(t *testing.T) {
		r := execute(t, svc, "info", "--json")
		assert.Equal(t, "", svc.gotPrinter)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
		assert.Equal(t, "Canon", got["manufacturer"])
		assert.NotContains(t, got, "color")
		assert.NotContains(t, got, "pages_per_min")
		sizes := got["paper_sizes"].([]any)
		require.Len(t, sizes, 3)
		assert.NotContains(t, sizes[2].(map[string]any), "margins_mm")
	})

	t.Run("no default printer", func(t *testing.T) {
		r := execute(t, &fakeService{err: shared.ErrNoDefaultPrinter}, "info")
		assert.Equal(t, ExitFailure, r.code)
		assert.Equal(t, "Error: No default printer set. Use --printer to specify one.\n", r.stderr)
	})
}

func TestCLI_Options(t *testing.T) {
	svc := &fakeService{options: &printing.OptionsResponse{
		Printer: "HP_LaserJet",
		Options: []printing.OptionResponse{
			{Option: "PageSize", Label: "Media Size", Current: ptr("A4"), Values: []string{"Letter", "A4", "Legal"}},
			{Option: "Collate", Label: "Collate", Values: []string{"True"}},
		},
	}}

	t.Run("text uses resolved printer", func(t *testing.T) {
		r := execute(t, svc, "options")
		assert.Equal(t, ExitOK, r.code)
		assert.Equal(t, `Options for HP_LaserJet:

  Media Size = A4
    Options: Letter, A4, Legal
  Collate
`, r.stdout)
	})

	t.Run("json has null current", func(t *testing.T) {
		r := execute(t, svc, "options", "--json", "--printer", "HP_LaserJet")
		assert.Equal(t, "HP_LaserJet", svc.gotPrinter)
		assert.JSONEq(t, `[
			{"option":"PageSize","label":"Media Size","current":"A4","values":["Letter","A4","Legal"]},
			{"option":"Collate","label":"Collate","current":null,"values":["True"]}
		]`, r.stdout)
	})
}

func TestCLI_Print(t *testing.T) {
	t.Run("text success", func(t *testing.T) {
		svc := &fakeService{printed: &printing.PrintResponse{OK: true, Printer: "Office", File: "/tmp/a.png", JobID: "Office-42"}}
		r := execute(t, svc, "print", "a.png", "--printer", "Office")

		assert.Equal(t, ExitOK, r.code)
		assert.Equal(t, "a.png", svc.gotRequest.File)
		assert.Equal(t, "Office", svc.gotRequest.Printer)
		assert.Equal(t, "[print] ✓ Sent to Office (job Office-42)\n", r.stdout)
		assert.Equal(t, "[print] Converting image to PDF...\n", r.stderr)
	})

	t.Run("unknown job id", func(t *testing.T) {
		svc := &fakeService{printed: &printing.PrintResponse{OK: true, Printer: "Office", File: "/tmp/a.pdf"}}
		r := execute(t, svc, "print", "a.pdf")
		assert.Equal(t, "[print] ✓ Sent to Office\n", r.stdout)
	})

	t.Run("json success is silent on stderr", func(t *testing.T) {
		svc := &fakeService{printed: &printing.PrintResponse{OK: true, Printer: "Office", File: "/tmp/a.png", JobID: "Office-42"}}
		r := execute(t, svc, "print", "a.png", "--json")

		assert.Equal(t, ExitOK, r.code)
		assert.Empty(t, r.stderr)
		assert.JSONEq(t, `{"ok":true,"printer":"Office","file":"/tmp/a.png","job_id":"Office-42"}`, r.stdout)
	})

	t.Run("json failure keeps known fields", func(t *testing.T) {
		svc := &fakeService{
			printed: &printing.PrintResponse{OK: false, Printer: "Office", File: "/tmp/a.pdf", Error: "lp: printer is offline"},
			err:     errors.New("lp: printer is offline"),
		}
		r := execute(t, svc, "print", "a.pdf", "--json")

		assert.Equal(t, ExitFailure, r.code)
		assert.JSONEq(t, `{"ok":false,"printer":"Office","file":"/tmp/a.pdf","error":"lp: printer is offline"}`, r.stdout)
	})

	t.Run("text failure", func(t *testing.T) {
		svc := &fakeService{
			printed: &printing.PrintResponse{Error: "Not a file: missing.pdf"},
			err:     errors.New("Not a file: missing.pdf"),
		}
		r := execute(t, svc, "print", "missing.pdf")

		assert.Equal(t, ExitFailure, r.code)
		assert.Empty(t, r.stdout)
		assert.Equal(t, "Error: Not a file: missing.pdf\n", r.stderr)
	})

	t.Run("conversion failure has no prefix", func(t *testing.T) {
		convErr := &printing.ConversionError{Cause: infra.NewConvertError(infra.ErrCodeDecodeFailed, "cannot decode a.png", nil)}
		svc := &fakeService{printed: &printing.PrintResponse{Error: convErr.Error()}, err: convErr}
		r := execute(t, svc, "print", "a.png")

		assert.Equal(t, ExitFailure, r.code)
		assert.Equal(t, "Error converting image: cannot decode a.png\n", r.stderr)
	})

	t.Run("missing file argument", func(t *testing.T) {
		r := execute(t, &fakeService{}, "print", "--json")

		assert.Equal(t, ExitFailure, r.code)
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
		assert.Equal(t, false, got["ok"])
		assert.Contains(t, got["error"], "accepts 1 arg(s)")
	})
}
