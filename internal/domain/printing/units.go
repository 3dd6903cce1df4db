package printing

import "github.com/shopspring/decimal"

const (
	// PointsPerInch is the PostScript unit: 1pt = 1/72 inch
	PointsPerInch = 72.0
	// MillimetersPerInch is the exact inch definition
	MillimetersPerInch = 25.4
)

// PointsToPixels converts points to device pixels at dpi, truncating toward zero
func PointsToPixels(points float64, dpi int) int {
	return int(points / PointsPerInch * float64(dpi))
}

// PointsToMillimeters converts points to millimeters
func PointsToMillimeters(points float64) float64 {
	return points * MillimetersPerInch / PointsPerInch
}

// RoundMillimeters converts points to millimeters rounded to one decimal place
func RoundMillimeters(points float64) float64 {
	return decimal.NewFromFloat(PointsToMillimeters(points)).Round(1).InexactFloat64()
}
