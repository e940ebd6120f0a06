package http

import (
	"errors"
	"net/http"

	"ChainHealth/internal/domain/faults"
)

// AppError is an error with a stable code and the HTTP status it maps to.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Status: status, Message: message}
}

// WithParam attaches a detail rendered under "params".
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{}, 1)
	}
	e.Params[key] = value
	return e
}

// UnavailableError is returned while the service has nothing to serve yet.
func UnavailableError(message string) *AppError {
	return NewAppError("ERR_UNAVAILABLE", http.StatusServiceUnavailable, message)
}

// TooManyRequestsError is returned by the rate limiter.
func TooManyRequestsError(message string) *AppError {
	return NewAppError("ERR_RATE_LIMITED", http.StatusTooManyRequests, message)
}

var faultStatus = []struct {
	target error
	code   string
	status int
}{
	{faults.ErrLogParseFault, "ERR_LOG_PARSE_FAULT", http.StatusUnprocessableEntity},
	{faults.ErrInvalidNumericInput, "ERR_INVALID_NUMERIC_INPUT", http.StatusUnprocessableEntity},
	{faults.ErrDataUnavailable, "ERR_DATA_UNAVAILABLE", http.StatusBadGateway},
}

// FromDomain maps err to an AppError. AppErrors pass through; unknown
// errors become a 500 that hides the cause from the client.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, f := range faultStatus {
		if !errors.Is(err, f.target) {
			continue
		}
		out := NewAppError(f.code, f.status, err.Error())
		out.Err = err
		var perr *faults.LogParseError
		if errors.As(err, &perr) {
			out.WithParam("line_no", perr.LineNo)
		}
		return out
	}

	out := NewAppError("ERR_INTERNAL", http.StatusInternalServerError, "internal error")
	out.Err = err
	return out
}
