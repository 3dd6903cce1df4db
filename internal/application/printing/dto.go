package printing

import (
	"github.com/openclaw/cupsprint/internal/domain/printing"
)

// PrinterResponse is one entry of the printer list
type PrinterResponse struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Enabled bool   `json:"enabled"`
	Default bool   `json:"default"`
}

// MarginsDTO represents page margins in millimeters
type MarginsDTO struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

// IsUniform returns true if all four margins are within tolerance of each other
func (m MarginsDTO) IsUniform(tolerance float64) bool {
	return printing.Margins(m).IsUniform(tolerance)
}

// PaperSizeResponse is one entry of a printer's paper catalog
type PaperSizeResponse struct {
	Name      string      `json:"name"`
	WidthMM   float64     `json:"width_mm"`
	HeightMM  float64     `json:"height_mm"`
	Default   bool        `json:"default"`
	MarginsMM *MarginsDTO `json:"margins_mm,omitempty"`
}

// InfoResponse describes a printer from its PPD. Fields the PPD does not
// state are omitted.
type InfoResponse struct {
	Printer       string              `json:"printer"`
	Manufacturer  string              `json:"manufacturer,omitempty"`
	Model         string              `json:"model,omitempty"`
	Resolution    string              `json:"resolution,omitempty"`
	Color         string              `json:"color,omitempty"`
	PagesPerMin   string              `json:"pages_per_min,omitempty"`
	DefaultPaper  string              `json:"default_paper,omitempty"`
	DefaultDuplex string              `json:"default_duplex,omitempty"`
	Trays         []string            `json:"trays,omitempty"`
	PaperSizes    []PaperSizeResponse `json:"paper_sizes"`
}

// OptionResponse is one configurable printer option. Current is null when
// no value is selected.
type OptionResponse struct {
	Option  string   `json:"option"`
	Label   string   `json:"label"`
	Current *string  `json:"current"`
	Values  []string `json:"values"`
}

// OptionsResponse holds the options of the resolved printer
type OptionsResponse struct {
	Printer string
	Options []OptionResponse
}

// PrintRequest represents a request to print a file
type PrintRequest struct {
	File string
	// Printer is optional; the system default is used when empty
	Printer string
	// Progress receives human-readable progress lines; may be nil
	Progress func(msg string)
}

// PrintResponse reports the outcome of a print request
type PrintResponse struct {
	OK      bool   `json:"ok"`
	Printer string `json:"printer,omitempty"`
	File    string `json:"file,omitempty"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func toPrinterResponses(printers []printing.Printer) []PrinterResponse {
	resp := make([]PrinterResponse, len(printers))
	for i, p := range printers {
		resp[i] = PrinterResponse{
			Name:    p.Name,
			Status:  p.Status.String(),
			Enabled: p.Enabled,
			Default: p.IsDefault,
		}
	}
	return resp
}

func toInfoResponse(info *printing.PrinterInfo) *InfoResponse {
	sizes := make([]PaperSizeResponse, len(info.PaperSizes))
	for i, p := range info.PaperSizes {
		sizes[i] = PaperSizeResponse{
			Name:     p.Name,
			WidthMM:  p.WidthMM,
			HeightMM: p.HeightMM,
			Default:  p.IsDefault,
		}
		if p.Margins != nil {
			m := MarginsDTO(*p.Margins)
			sizes[i].MarginsMM = &m
		}
	}

	return &InfoResponse{
		Printer:       info.Printer,
		Manufacturer:  info.Manufacturer,
		Model:         info.Model,
		Resolution:    info.Resolution,
		Color:         info.Color,
		PagesPerMin:   info.PagesPerMin,
		DefaultPaper:  info.DefaultPaper,
		DefaultDuplex: info.DefaultDuplex,
		Trays:         info.Trays,
		PaperSizes:    sizes,
	}
}

func toOptionResponses(options []printing.PrinterOption) []OptionResponse {
	resp := make([]OptionResponse, len(options))
	for i, o := range options {
		resp[i] = OptionResponse{
			Option: o.Key,
			Label:  o.Label,
			Values: o.Values,
		}
		if o.Current != "" {
			current := o.Current
			resp[i].Current = &current
		}
		if resp[i].Values == nil {
			resp[i].Values = []string{}
		}
	}
	return resp
}
