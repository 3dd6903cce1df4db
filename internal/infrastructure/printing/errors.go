package printing

// ConvertError represents an error while turning an input file into a
// printable PDF
type ConvertError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// Error codes for conversion failures
const (
	ErrCodeDecodeFailed    = "DECODE_FAILED"
	ErrCodeInvalidGeometry = "INVALID_GEOMETRY"
	ErrCodeEncodeFailed    = "ENCODE_FAILED"
	ErrCodeWriteFailed     = "WRITE_FAILED"
	ErrCodeInspectFailed   = "INSPECT_FAILED"
)

// NewConvertError creates a new ConvertError
func NewConvertError(code, message string, cause error) *ConvertError {
	return &ConvertError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
