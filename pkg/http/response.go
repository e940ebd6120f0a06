package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every JSON body the API returns. On failure Data holds
// a list of AppError or ValidationError.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Respond writes data in an Envelope with the given status.
func Respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{
		Status:  status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

// OK writes a 200 envelope.
func OK(c echo.Context, data interface{}) error {
	return Respond(c, http.StatusOK, data)
}

// Invalid writes a 400 envelope listing what failed validation.
func Invalid(c echo.Context, errs []ValidationError) error {
	return Respond(c, http.StatusBadRequest, errs)
}

// Fail writes err as a single-element error list with the status FromDomain picks.
func Fail(c echo.Context, err error) error {
	appErr := FromDomain(err)
	return Respond(c, appErr.Status, []*AppError{appErr})
}
