package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/openclaw/cupsprint/internal/application/printing"
)

// marginTolerance is how close, in millimeters, four margins must be to
// print as a single value
const marginTolerance = 0.1

// Presenter writes command results as human text or indented JSON.
// Results go to stdout; text errors and progress go to stderr.
type Presenter struct {
	stdout io.Writer
	stderr io.Writer
	json   bool
}

// NewPresenter creates a Presenter
func NewPresenter(stdout, stderr io.Writer, jsonOutput bool) *Presenter {
	return &Presenter{stdout: stdout, stderr: stderr, json: jsonOutput}
}

// JSON reports whether output is JSON
func (p *Presenter) JSON() bool {
	return p.json
}

// Success writes a result; text is used only in text mode
func (p *Presenter) Success(data any, text func(w io.Writer)) error {
	if p.json {
		return p.writeJSON(data)
	}
	text(p.stdout)
	return nil
}

// Error writes an error message. In JSON mode the message goes to stdout as
// {"error": message}; in text mode stderr gets "Error: message".
func (p *Presenter) Error(message string) {
	if p.json {
		_ = p.writeJSON(errorResponse{Error: message})
		return
	}
	fmt.Fprintf(p.stderr, "Error: %s\n", message)
}

// Raw writes a message to stderr as is
func (p *Presenter) Raw(message string) {
	fmt.Fprintln(p.stderr, message)
}

// Progress writes a "[print]" progress line to stderr. JSON mode is silent.
func (p *Presenter) Progress(message string) {
	if p.json {
		return
	}
	fmt.Fprintf(p.stderr, "[print] %s\n", message)
}

func (p *Presenter) writeJSON(data any) error {
	enc := json.NewEncoder(p.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writePrinters renders the printer list
func writePrinters(w io.Writer, printers []printing.PrinterResponse) {
	if len(printers) == 0 {
		fmt.Fprintln(w, "No printers found.")
		return
	}
	for _, pr := range printers {
		state := "disabled"
		if pr.Enabled {
			state = "enabled"
		}
		tag := ""
		if pr.Default {
			tag = " (default)"
		}
		fmt.Fprintf(w, "  %s  [%s, %s]%s\n", pr.Name, pr.Status, state, tag)
	}
}

// writeInfo renders a printer description with its paper catalog
func writeInfo(w io.Writer, info *printing.InfoResponse) {
	fmt.Fprintf(w, "Printer: %s\n\n", info.Printer)

	fields := []struct {
		label string
		value string
	}{
		{"Manufacturer", info.Manufacturer},
		{"Model", info.Model},
		{"Resolution", info.Resolution},
		{"Color", info.Color},
		{"Pages/min", info.PagesPerMin},
		{"Default paper", info.DefaultPaper},
		{"Default duplex", info.DefaultDuplex},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(w, "  %s: %s\n", f.label, f.value)
		}
	}

	if len(info.Trays) > 0 {
		fmt.Fprintf(w, "  Trays: %s\n", strings.Join(info.Trays, ", "))
	}

	if len(info.PaperSizes) == 0 {
		return
	}
	fmt.Fprintf(w, "\nPaper sizes (%d):\n\n", len(info.PaperSizes))
	for _, size := range info.PaperSizes {
		tag := ""
		if size.Default {
			tag = " (default)"
		}
		fmt.Fprintf(w, "  %s: %.0f × %.0f mm%s%s\n",
			size.Name, size.WidthMM, size.HeightMM, formatMargins(size.MarginsMM), tag)
	}
}

func formatMargins(m *printing.MarginsDTO) string {
	if m == nil {
		return ""
	}
	if m.IsUniform(marginTolerance) {
		return fmt.Sprintf("  margins: %.1fmm", m.Left)
	}
	return fmt.Sprintf("  margins: L%.1f B%.1f R%.1f T%.1fmm", m.Left, m.Bottom, m.Right, m.Top)
}

// writeOptions renders a printer's option catalog
func writeOptions(w io.Writer, printer string, options []printing.OptionResponse) {
	fmt.Fprintf(w, "Options for %s:\n\n", printer)
	for _, opt := range options {
		if opt.Current != nil && *opt.Current != "" {
			fmt.Fprintf(w, "  %s = %s\n", opt.Label, *opt.Current)
		} else {
			fmt.Fprintf(w, "  %s\n", opt.Label)
		}
		if len(opt.Values) > 1 {
			fmt.Fprintf(w, "    Options: %s\n", strings.Join(opt.Values, ", "))
		}
	}
}

// writePrinted renders a successful submission
func writePrinted(w io.Writer, resp *printing.PrintResponse) {
	job := ""
	if resp.JobID != "" {
		job = fmt.Sprintf(" (job %s)", resp.JobID)
	}
	fmt.Fprintf(w, "[print] ✓ Sent to %s%s\n", resp.Printer, job)
}
