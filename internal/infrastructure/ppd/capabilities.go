package ppd

import (
	"slices"
	"strconv"
	"strings"

	"github.com/openclaw/cupsprint/internal/domain/printing"
)

// PPD main keywords read by this package
const (
	KeyDefaultPageSize   = "DefaultPageSize"
	KeyDefaultResolution = "DefaultResolution"
	KeyDefaultDuplex     = "DefaultDuplex"
	KeyPaperDimension    = "PaperDimension"
	KeyImageableArea     = "ImageableArea"
	KeyManufacturer      = "Manufacturer"
	KeyModelName         = "ModelName"
	KeyColorDevice       = "ColorDevice"
	KeyThroughput        = "Throughput"
	KeyInputSlot         = "InputSlot"
)

// DPI returns the horizontal resolution of DefaultResolution ("600x600dpi"
// gives 600). Missing or malformed values give printing.DefaultDPI.
func (d *Document) DPI() int {
	raw, _ := d.Value(KeyDefaultResolution)
	return parseResolution(raw)
}

func parseResolution(raw string) int {
	first, _, _ := strings.Cut(strings.TrimSpace(raw), "x")
	first = strings.TrimSuffix(first, "dpi")
	dpi, err := strconv.Atoi(first)
	if err != nil || dpi <= 0 {
		return printing.DefaultDPI
	}
	return dpi
}

// Media returns DefaultPageSize, or printing.DefaultMedia
func (d *Document) Media() string {
	return d.ValueOr(KeyDefaultPageSize, printing.DefaultMedia)
}

// Duplex returns the default duplex mode; "None" means one-sided
func (d *Document) Duplex() printing.DuplexMode {
	raw, _ := d.Value(KeyDefaultDuplex)
	return printing.ParseDuplexMode(raw)
}

// PaperDimension returns the sheet size of a named paper size. Entries
// without exactly two numbers are skipped; when the size is repeated the
// last valid entry wins.
func (d *Document) PaperDimension(name string) (printing.PaperDimension, bool) {
	nums, ok := d.lastNumbers(KeyPaperDimension, name, 2)
	if !ok {
		return printing.PaperDimension{}, false
	}
	return printing.PaperDimension{Width: nums[0], Height: nums[1]}, true
}

// ImageableArea returns the printable rectangle of a named paper size.
// Entries without exactly four numbers are skipped; the last valid one wins.
func (d *Document) ImageableArea(name string) (printing.ImageableArea, bool) {
	nums, ok := d.lastNumbers(KeyImageableArea, name, 4)
	if !ok {
		return printing.ImageableArea{}, false
	}
	return printing.ImageableArea{X1: nums[0], Y1: nums[1], X2: nums[2], Y2: nums[3]}, true
}

func (d *Document) lastNumbers(key, option string, n int) ([]float64, bool) {
	var found []float64
	for _, e := range d.Qualified(key) {
		if e.Option != option {
			continue
		}
		if nums, ok := parseNumbers(e.Value, n); ok {
			found = nums
		}
	}
	return found, found != nil
}

// Spec builds the printer's current capability snapshot. Anything the PPD
// does not state keeps its value from printing.FallbackSpec.
func (d *Document) Spec() *printing.PrinterSpec {
	spec := printing.FallbackSpec()
	spec.Media = d.Media()
	spec.DPI = d.DPI()
	spec.Duplex = d.Duplex()

	if dim, ok := d.PaperDimension(spec.Media); ok {
		spec.Page = dim
	}
	if area, ok := d.ImageableArea(spec.Media); ok {
		spec.ImageableArea = area
	}
	return spec
}

// Trays returns the InputSlot option keywords in file order
func (d *Document) Trays() []string {
	var trays []string
	for _, e := range d.Qualified(KeyInputSlot) {
		if !slices.Contains(trays, e.Option) {
			trays = append(trays, e.Option)
		}
	}
	return trays
}

// PaperSizes returns the paper catalog sorted by name. Sizes without a
// valid PaperDimension are omitted; margins come from ImageableArea when
// present. Repeated sizes keep their last valid entry.
func (d *Document) PaperSizes() []printing.PaperSizeEntry {
	dims := make(map[string]printing.PaperDimension)
	for _, e := range d.Qualified(KeyPaperDimension) {
		if nums, ok := parseNumbers(e.Value, 2); ok {
			dims[e.Option] = printing.PaperDimension{Width: nums[0], Height: nums[1]}
		}
	}

	names := make([]string, 0, len(dims))
	for name := range dims {
		names = append(names, name)
	}
	slices.Sort(names)

	defaultPaper, _ := d.Value(KeyDefaultPageSize)
	entries := make([]printing.PaperSizeEntry, 0, len(names))
	for _, name := range names {
		var area *printing.ImageableArea
		if a, ok := d.ImageableArea(name); ok {
			area = &a
		}
		entries = append(entries, printing.NewPaperSizeEntry(name, dims[name], area, name == defaultPaper))
	}
	return entries
}

// Info builds the descriptive view of the printer. Raw values are kept
// verbatim, including DefaultDuplex "None".
func (d *Document) Info(printer string) *printing.PrinterInfo {
	value := func(key string) string {
		v, _ := d.Value(key)
		return v
	}
	return &printing.PrinterInfo{
		Printer:       printer,
		Manufacturer:  value(KeyManufacturer),
		Model:         value(KeyModelName),
		Resolution:    value(KeyDefaultResolution),
		Color:         value(KeyColorDevice),
		PagesPerMin:   value(KeyThroughput),
		DefaultPaper:  value(KeyDefaultPageSize),
		DefaultDuplex: value(KeyDefaultDuplex),
		Trays:         d.Trays(),
		PaperSizes:    d.PaperSizes(),
	}
}
