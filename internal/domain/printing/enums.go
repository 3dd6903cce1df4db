package printing

// PrinterStatus represents the state reported by lpstat for a printer
type PrinterStatus string

const (
	PrinterStatusIdle    PrinterStatus = "idle"
	PrinterStatusBusy    PrinterStatus = "busy"
	PrinterStatusUnknown PrinterStatus = "unknown"
)

// String returns the string representation of PrinterStatus
func (s PrinterStatus) String() string {
	return string(s)
}

// DuplexMode is the PPD duplex keyword of a printer's default duplex setting.
// The zero value means the printer prints one-sided.
type DuplexMode string

const (
	DuplexNone      DuplexMode = ""
	DuplexNoTumble  DuplexMode = "DuplexNoTumble"
	DuplexTumble    DuplexMode = "DuplexTumble"
	ppdDuplexOffKey            = "None"
)

// ParseDuplexMode converts a raw DefaultDuplex value. "None" and the empty
// string both mean one-sided.
func ParseDuplexMode(raw string) DuplexMode {
	if raw == "" || raw == ppdDuplexOffKey {
		return DuplexNone
	}
	return DuplexMode(raw)
}

// IsSet returns true if the printer duplexes by default
func (d DuplexMode) IsSet() bool {
	return d != DuplexNone
}

// Sides returns the value of the lp "sides" option for this duplex mode.
// Keywords other than the two standard ones are passed through unchanged.
func (d DuplexMode) Sides() string {
	switch d {
	case DuplexNoTumble:
		return "two-sided-long-edge"
	case DuplexTumble:
		return "two-sided-short-edge"
	default:
		return string(d)
	}
}

// String returns the string representation of DuplexMode
func (d DuplexMode) String() string {
	return string(d)
}
