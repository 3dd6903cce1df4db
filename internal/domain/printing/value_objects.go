package printing

import "math"

// PaperDimension is the full sheet size in points
type PaperDimension struct {
	Width  float64
	Height float64
}

// ImageableArea is the printable rectangle of a sheet in points.
// (X1, Y1) is the lower-left corner, (X2, Y2) the upper-right, origin at the
// bottom-left of the sheet as in PPD files.
type ImageableArea struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// FullBleed returns an imageable area covering the whole sheet
func FullBleed(dim PaperDimension) ImageableArea {
	return ImageableArea{X1: 0, Y1: 0, X2: dim.Width, Y2: dim.Height}
}

// Width returns the printable width in points
func (a ImageableArea) Width() float64 {
	return a.X2 - a.X1
}

// Height returns the printable height in points
func (a ImageableArea) Height() float64 {
	return a.Y2 - a.Y1
}

// Margins represents the page margins in millimeters
type Margins struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

// MarginsFromArea derives the margins of a sheet from its imageable area.
// Values are rounded to 0.1mm; an area reaching past the sheet edge yields 0.
func MarginsFromArea(dim PaperDimension, area ImageableArea) Margins {
	return Margins{
		Left:   nonNegative(RoundMillimeters(area.X1)),
		Bottom: nonNegative(RoundMillimeters(area.Y1)),
		Right:  nonNegative(RoundMillimeters(dim.Width - area.X2)),
		Top:    nonNegative(RoundMillimeters(dim.Height - area.Y2)),
	}
}

// IsUniform returns true if all four margins are within tolerance of each other
func (m Margins) IsUniform(tolerance float64) bool {
	for _, v := range []float64{m.Bottom, m.Right, m.Top} {
		if math.Abs(v-m.Left) >= tolerance {
			return false
		}
	}
	return true
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// PaperSizeEntry is one named paper size of a printer's catalog
type PaperSizeEntry struct {
	Name     string
	WidthMM  float64
	HeightMM float64
	// Margins is nil when the PPD has no ImageableArea for this size
	Margins   *Margins
	IsDefault bool
}

// NewPaperSizeEntry builds a catalog entry from PPD dimensions in points
func NewPaperSizeEntry(name string, dim PaperDimension, area *ImageableArea, isDefault bool) PaperSizeEntry {
	entry := PaperSizeEntry{
		Name:      name,
		WidthMM:   RoundMillimeters(dim.Width),
		HeightMM:  RoundMillimeters(dim.Height),
		IsDefault: isDefault,
	}
	if area != nil {
		m := MarginsFromArea(dim, *area)
		entry.Margins = &m
	}
	return entry
}
