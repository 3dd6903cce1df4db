package printing

const (
	// DefaultDPI is used when a PPD has no usable DefaultResolution
	DefaultDPI = 300
	// DefaultMedia is used when a PPD has no DefaultPageSize
	DefaultMedia = "A4"
)

// ISO A4 in points
var a4Dimension = PaperDimension{Width: 595.28, Height: 841.89}

// PrinterSpec is the capability snapshot of a printer's current settings
type PrinterSpec struct {
	Media         string
	Page          PaperDimension
	ImageableArea ImageableArea
	DPI           int
	Duplex        DuplexMode
}

// FallbackSpec returns the spec assumed for printers without a PPD:
// A4, full-bleed, 300 dpi, one-sided.
func FallbackSpec() *PrinterSpec {
	return &PrinterSpec{
		Media:         DefaultMedia,
		Page:          a4Dimension,
		ImageableArea: FullBleed(a4Dimension),
		DPI:           DefaultDPI,
		Duplex:        DuplexNone,
	}
}

// WidthMM returns the sheet width in millimeters
func (s *PrinterSpec) WidthMM() float64 {
	return PointsToMillimeters(s.Page.Width)
}

// HeightMM returns the sheet height in millimeters
func (s *PrinterSpec) HeightMM() float64 {
	return PointsToMillimeters(s.Page.Height)
}

// Printer is one destination listed by lpstat
type Printer struct {
	Name      string
	Status    PrinterStatus
	Enabled   bool
	IsDefault bool
}

// PrinterOption is one configurable capability reported by lpoptions
type PrinterOption struct {
	Key   string
	Label string
	// Current is empty when no value is marked as selected
	Current string
	Values  []string
}

// PrinterInfo is the descriptive view of a printer's PPD.
// String fields hold raw PPD values and are empty when the PPD omits them.
type PrinterInfo struct {
	Printer       string
	Manufacturer  string
	Model         string
	Resolution    string
	Color         string
	PagesPerMin   string
	DefaultPaper  string
	DefaultDuplex string
	Trays         []string
	PaperSizes    []PaperSizeEntry
}
