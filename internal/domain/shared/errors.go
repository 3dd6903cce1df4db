package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeInvalidPrinterName  = "INVALID_PRINTER_NAME"
	CodeInvalidFile         = "INVALID_FILE"
	CodeFileNotAllowed      = "FILE_NOT_ALLOWED"
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeNoDefaultPrinter    = "NO_DEFAULT_PRINTER"
	CodePPDNotFound         = "PPD_NOT_FOUND"
)

// Common domain errors, usable as errors.Is targets
var (
	ErrInvalidPrinterName  = NewDomainError(CodeInvalidPrinterName, "Invalid printer name")
	ErrInvalidFile         = NewDomainError(CodeInvalidFile, "Invalid file")
	ErrFileNotAllowed      = NewDomainError(CodeFileNotAllowed, "File is outside the allowed directories")
	ErrUnsupportedFileType = NewDomainError(CodeUnsupportedFileType, "Unsupported file type")
	ErrNoDefaultPrinter    = NewDomainError(CodeNoDefaultPrinter, "No default printer set. Use --printer to specify one.")
	ErrPPDNotFound         = NewDomainError(CodePPDNotFound, "No PPD file found")
)

// IsCode reports whether err is (or wraps) a DomainError with the given code
func IsCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
