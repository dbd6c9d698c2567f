package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrIO ErrorType = iota
	ErrManifestParse
	ErrExternalProcess
	ErrInvalidConfig
	ErrVerify
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrIO:
		return "IO"
	case ErrManifestParse:
		return "ManifestParse"
	case ErrExternalProcess:
		return "ExternalProcess"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrVerify:
		return "Verify"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// CargoArchError represents an error that aborts a packaging run
type CargoArchError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *CargoArchError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *CargoArchError) Unwrap() error {
	return e.Err
}
