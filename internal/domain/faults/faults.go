// Package faults defines the error taxonomy shared by scorers, extractors and
// data providers.
package faults

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable marks a missing or malformed upstream value.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInvalidNumericInput marks a violated scorer precondition.
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	// ErrLogParseFault marks a reorg log line without a parseable depth.
	ErrLogParseFault = errors.New("log parse fault")
)

// Kind labels used in metrics, logs and HTTP error codes.
const (
	KindDataUnavailable     = "data_unavailable"
	KindInvalidNumericInput = "invalid_numeric_input"
	KindLogParseFault       = "log_parse_fault"
	KindInternal            = "internal"
)

// LogParseError describes the reorg line that could not be parsed.
type LogParseError struct {
	LineNo int
	Line   string
	Reason string
}

func (e *LogParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.LineNo, e.Reason, e.Line)
}

// Unwrap lets errors.Is match ErrLogParseFault.
func (e *LogParseError) Unwrap() error {
	return ErrLogParseFault
}

// DateParseWarning records a log line skipped because its date tag was unreadable.
type DateParseWarning struct {
	LineNo int    `json:"line_no"`
	Tag    string `json:"tag"`
	Reason string `json:"reason"`
}

func (w DateParseWarning) String() string {
	return fmt.Sprintf("line %d: bad date tag %q: %s", w.LineNo, w.Tag, w.Reason)
}

// Unavailable wraps a cause as ErrDataUnavailable.
func Unavailable(source string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", source, ErrDataUnavailable)
	}
	return fmt.Errorf("%s: %w: %w", source, ErrDataUnavailable, cause)
}

// InvalidInput builds an ErrInvalidNumericInput with detail.
func InvalidInput(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidNumericInput, fmt.Sprintf(format, a...))
}

// Kind maps err to one of the Kind* labels.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrDataUnavailable):
		return KindDataUnavailable
	case errors.Is(err, ErrInvalidNumericInput):
		return KindInvalidNumericInput
	case errors.Is(err, ErrLogParseFault):
		return KindLogParseFault
	default:
		return KindInternal
	}
}
