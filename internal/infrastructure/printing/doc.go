// Package printing prepares files for the CUPS spooler.
//
// This package contains:
// - FileGuard, which resolves a path and checks it against the allowed roots
// and the printable extensions
// - ImageConverter, which fits a raster image into a printer's imageable
// area and writes it as a one-page PDF of the printer's media size
// - PDFInspector, which reads page geometry from PDF inputs
// - SweepStale, which removes generated PDFs left behind by killed runs
//
// Example usage:
//
//	guard := NewFileGuard(&FileGuardConfig{WorkspaceRoot: root})
//	path, err := guard.Validate("photo.png")
//	if err != nil {
//	    return err
//	}
//
//	result, err := NewImageConverter(nil).Convert(ctx, path, spec)
//	if err != nil {
//	    return err
//	}
//	defer result.Cleanup()
package printing
