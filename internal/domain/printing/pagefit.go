package printing

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidGeometry is returned when a page fit cannot be computed
var ErrInvalidGeometry = errors.New("invalid page geometry")

// PageFitResult describes where a resized image goes on the page canvas.
// All values are device pixels; X and Y address the canvas with a top-left
// origin, the way raster images are laid out.
type PageFitResult struct {
	CanvasWidth  int
	CanvasHeight int
	Width        int
	Height       int
	X            int
	Y            int
}

// Origin returns the top-left corner of the resized image on the canvas
func (r PageFitResult) Origin() image.Point {
	return image.Pt(r.X, r.Y)
}

// Bounds returns the rectangle covered by the resized image on the canvas
func (r PageFitResult) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FitImage scales an imageWidth x imageHeight raster to fit the spec's
// imageable area at the spec's dpi, preserving aspect ratio, and centers it.
//
// The imageable area is given bottom-up in points; its top edge on the canvas
// is CanvasHeight minus the upper bound, so asymmetric top/bottom margins
// keep the image inside the printable band.
func FitImage(spec *PrinterSpec, imageWidth, imageHeight int) (PageFitResult, error) {
	if spec == nil {
		return PageFitResult{}, fmt.Errorf("%w: nil spec", ErrInvalidGeometry)
	}
	if imageWidth <= 0 || imageHeight <= 0 {
		return PageFitResult{}, fmt.Errorf("%w: image is %dx%d", ErrInvalidGeometry, imageWidth, imageHeight)
	}
	if spec.DPI <= 0 {
		return PageFitResult{}, fmt.Errorf("%w: dpi %d", ErrInvalidGeometry, spec.DPI)
	}

	if area := spec.ImageableArea; area.Width() <= 0 || area.Height() <= 0 {
		return PageFitResult{}, fmt.Errorf("%w: imageable area is %gx%g pt", ErrInvalidGeometry, area.Width(), area.Height())
	}

	dpi := spec.DPI
	pageW := PointsToPixels(spec.Page.Width, dpi)
	pageH := PointsToPixels(spec.Page.Height, dpi)

	x1 := PointsToPixels(spec.ImageableArea.X1, dpi)
	y1 := PointsToPixels(spec.ImageableArea.Y1, dpi)
	x2 := PointsToPixels(spec.ImageableArea.X2, dpi)
	y2 := PointsToPixels(spec.ImageableArea.Y2, dpi)
	printableW := x2 - x1
	printableH := y2 - y1
	if printableW <= 0 || printableH <= 0 || pageW <= 0 || pageH <= 0 {
		return PageFitResult{}, fmt.Errorf("%w: printable area is %dx%d px", ErrInvalidGeometry, printableW, printableH)
	}

	imageAspect := float64(imageWidth) / float64(imageHeight)
	printableAspect := float64(printableW) / float64(printableH)

	var newW, newH int
	if imageAspect > printableAspect {
		newW = printableW
		newH = int(float64(printableW) / imageAspect)
	} else {
		newH = printableH
		newW = int(float64(printableH) * imageAspect)
	}
	// extreme aspect ratios would otherwise truncate to an empty image
	newW = max(newW, 1)
	newH = max(newH, 1)

	top := max(pageH-y2, 0)

	return PageFitResult{
		CanvasWidth:  pageW,
		CanvasHeight: pageH,
		Width:        newW,
		Height:       newH,
		X:            x1 + (printableW-newW)/2,
		Y:            top + (printableH-newH)/2,
	}, nil
}
