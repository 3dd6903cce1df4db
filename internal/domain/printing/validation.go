package printing

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/openclaw/cupsprint/internal/domain/shared"
)

// CUPS destination names: letters, digits, underscore, hyphen and period
var printerNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".bmp":  {},
	".tiff": {},
	".webp": {},
}

const pdfExtension = ".pdf"

// ValidatePrinterName rejects names that could break out of a file path or
// an argument list. It returns the name unchanged when valid.
func ValidatePrinterName(name string) (string, error) {
	if !printerNamePattern.MatchString(name) {
		return "", shared.NewDomainError(shared.CodeInvalidPrinterName,
			fmt.Sprintf("Invalid printer name: %q", name))
	}
	return name, nil
}

// IsImageFile returns true if path has a raster image extension
func IsImageFile(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsPrintableFile returns true if path has an image or PDF extension
func IsPrintableFile(path string) bool {
	return IsImageFile(path) || strings.ToLower(filepath.Ext(path)) == pdfExtension
}

// PrintableExtensions returns all accepted extensions, sorted
func PrintableExtensions() []string {
	exts := make([]string, 0, len(imageExtensions)+1)
	for ext := range imageExtensions {
		exts = append(exts, ext)
	}
	exts = append(exts, pdfExtension)
	slices.Sort(exts)
	return exts
}
