// Package printing contains the printer capability model.
// It describes what a CUPS printer can do (current media, sheet and imageable
// area, resolution, duplex), the paper catalog shown to users, and the
// page-fit arithmetic used to place a raster image on a page.
//
// Everything here is a transient snapshot built per command invocation.
// Dimensions are in PostScript points (1/72 inch) unless a name says otherwise.
package printing
