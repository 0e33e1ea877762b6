package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput           = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON          = errors.New("invalid JSON format")
	ErrInvalidXML           = errors.New("invalid XML format")
	ErrInvalidCSV           = errors.New("invalid CSV format")
	ErrNoHeader             = errors.New("CSV input has no header row")
	ErrUnexpectedRoot       = errors.New("top-level JSON value must be an object or an array")
	ErrMissingExtension     = errors.New("file has no extension")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrFileNotFound         = errors.New("file not found")
	ErrFileEmpty            = errors.New("file is empty")
	ErrNotRegularFile       = errors.New("path is not a regular file")
	ErrNoInput              = errors.New("no input provided: please specify a file with -i")
	ErrNoOutput             = errors.New("no output provided: please specify a file with -o")
	ErrInvalidFilePath      = errors.New("invalid file path")
	ErrNonFiniteNumber      = errors.New("NaN and infinite numbers cannot be represented")
	ErrInvalidElementName   = errors.New("not a valid XML element name")
	ErrInvalidXMLChar       = errors.New("character is not allowed in XML text")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput            ErrorType = "input"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeIO               ErrorType = "io"
	ErrorTypeFormat           ErrorType = "format"
	ErrorTypeInvalidFormat    ErrorType = "invalid_format"
	ErrorTypeUnsupportedValue ErrorType = "unsupported_value"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	// Path identifies the file the error relates to, if known.
	Path string
	Err  error
}

// Error implements error interface
func (e *AppError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error for a missing, unreadable or empty input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewIOError creates a new error for byte-level read or write failures
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeIO,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error for malformed JSON, XML or CSV syntax
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewInvalidFormatError creates a new error for a missing or unrecognized file extension
func NewInvalidFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidFormat,
		Message: message,
		Err:     err,
	}
}

// NewUnsupportedValueError creates a new error for a value the target format cannot represent
func NewUnsupportedValueError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupportedValue,
		Message: message,
		Err:     err,
	}
}

// WithPath attaches path to err when err is an *AppError without one.
// Other errors are returned unchanged.
func WithPath(err error, path string) error {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Path == "" {
		appErr.Path = path
	}
	return err
}

// IsType reports whether err carries an *AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	return errors.Is(err, &AppError{Type: errorType})
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Path != "" {
			msg = fmt.Sprintf("%s: %s", appErr.Path, msg)
		}
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", msg)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", msg)
		case ErrorTypeIO:
			return fmt.Sprintf("I/O error: %s", msg)
		case ErrorTypeFormat:
			return fmt.Sprintf("Format error: %s", msg)
		case ErrorTypeInvalidFormat:
			return fmt.Sprintf("Unsupported file format: %s", msg)
		case ErrorTypeUnsupportedValue:
			return fmt.Sprintf("Unsupported value: %s", msg)
		default:
			return fmt.Sprintf("Error: %s", msg)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a file with data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrInvalidXML) {
		return "Error: The input contains invalid XML. Please check your XML syntax."
	}
	if errors.Is(err, ErrNoHeader) {
		return "Error: The CSV input has no header row."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with data."
	}
	if errors.Is(err, ErrUnsupportedExtension) || errors.Is(err, ErrMissingExtension) {
		return "Error: Unsupported file format. Supported formats: .json, .xml, .csv"
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i."
	}
	if errors.Is(err, ErrNoOutput) {
		return "Error: No output provided. Please specify a file with -o."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
