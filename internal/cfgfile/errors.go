package cfgfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeFileUnavailable indicates the config file could not be opened or
	// read. Load falls back to defaults when it sees this.
	ErrTypeFileUnavailable ErrorType = iota
	// ErrTypeFileWriteFailed indicates the config file could not be locked,
	// written or replaced.
	ErrTypeFileWriteFailed
	// ErrTypeMalformedLine indicates a line without a key or without a value
	ErrTypeMalformedLine
	// ErrTypeUnknownKey indicates an unrecognized option name
	ErrTypeUnknownKey
	// ErrTypeTypeMismatch indicates a value of the wrong kind for its option
	ErrTypeTypeMismatch
	// ErrTypeValidation indicates a value that parses but is out of range
	ErrTypeValidation
	// ErrTypeConflict indicates another writer replaced the file before a
	// failed update could be rolled back; its content was kept.
	ErrTypeConflict
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeFileUnavailable:
		return "File Unavailable"
	case ErrTypeFileWriteFailed:
		return "File Write Failed"
	case ErrTypeMalformedLine:
		return "Malformed Line"
	case ErrTypeUnknownKey:
		return "Unknown Key"
	case ErrTypeTypeMismatch:
		return "Type Mismatch"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeConflict:
		return "Concurrent Modification"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ConfigError describes a problem reading, parsing or writing the config file.
type ConfigError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Path    string    // Config file path (if known)
	Line    int       // 1-based line number (parse errors only)
	Key     string    // Option name (if known)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	if e.Path != "" {
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func newMalformedLineError(message string) *ConfigError {
	return &ConfigError{Type: ErrTypeMalformedLine, Message: message}
}

func newUnknownKeyError(key string) *ConfigError {
	return &ConfigError{
		Type:    ErrTypeUnknownKey,
		Message: fmt.Sprintf("unrecognized config option: %s", key),
		Key:     key,
	}
}

func newTypeMismatchError(key, expected string) *ConfigError {
	return &ConfigError{
		Type:    ErrTypeTypeMismatch,
		Message: fmt.Sprintf("invalid configuration value for %s, expected %s", key, expected),
		Key:     key,
	}
}

// NewValidationError creates a validation error for the given option
func NewValidationError(key, message string) *ConfigError {
	return &ConfigError{Type: ErrTypeValidation, Key: key, Message: message}
}

func errorOfType(err error, types ...ErrorType) bool {
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		return false
	}
	for _, t := range types {
		if cfgErr.Type == t {
			return true
		}
	}
	return false
}

// IsFileUnavailable checks if an error means the config file could not be read
func IsFileUnavailable(err error) bool {
	return errorOfType(err, ErrTypeFileUnavailable)
}

// IsWriteFailed checks if an error means the config file could not be written
func IsWriteFailed(err error) bool {
	return errorOfType(err, ErrTypeFileWriteFailed)
}

// IsParseError checks if an error was produced for a single skipped line
func IsParseError(err error) bool {
	return errorOfType(err, ErrTypeMalformedLine, ErrTypeUnknownKey, ErrTypeTypeMismatch)
}

// IsUnknownKey checks if an error is an unrecognized option error
func IsUnknownKey(err error) bool {
	return errorOfType(err, ErrTypeUnknownKey)
}

// IsTypeMismatch checks if an error is a wrong-kind value error
func IsTypeMismatch(err error) bool {
	return errorOfType(err, ErrTypeTypeMismatch)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errorOfType(err, ErrTypeValidation)
}

// IsConflict checks if an error means another writer's content was kept
func IsConflict(err error) bool {
	return errorOfType(err, ErrTypeConflict)
}

// GetTroubleshootingHint returns user-friendly advice for an error
func GetTroubleshootingHint(err error) string {
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch cfgErr.Type {
	case ErrTypeFileUnavailable:
		return strings.Join([]string{
			"The config file could not be read; built-in defaults are in effect.",
			"Troubleshooting:",
			"  • Check that the file exists (spnavcfg path shows which one is used)",
			"  • Check read permissions on the file",
			"  • Run 'spnavcfg reset' to create a file with default settings",
		}, "\n")

	case ErrTypeFileWriteFailed:
		return strings.Join([]string{
			"The config file could not be written.",
			"Troubleshooting:",
			"  • /etc/spnavrc is usually owned by root; try running with sudo",
			"  • Check that the directory is writable (a temporary file is created next to it)",
			"  • Check free disk space",
		}, "\n")

	case ErrTypeUnknownKey:
		return "Option names are case-sensitive. Run 'spnavcfg options' for the list of known options."

	case ErrTypeMalformedLine, ErrTypeTypeMismatch:
		return "Each line must read 'key = value'. Numbers must start with a digit; booleans are true/false, on/off, yes/no."

	case ErrTypeValidation:
		return "The value parses but is outside the range the daemon expects."

	case ErrTypeConflict:
		return strings.Join([]string{
			"Another program wrote the config file while this change was being checked.",
			"Its version was kept and this change was not applied.",
			"Run 'spnavcfg show' and repeat the change if it is still needed.",
		}, "\n")

	default:
		return "An error occurred. Please check the error message for details."
	}
}
