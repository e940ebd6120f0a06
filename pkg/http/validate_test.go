package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreRequest struct {
	Market int    `json:"market" validate:"gte=0,lte=5"`
	Reorg  int    `json:"reorg" validate:"gte=0,lte=5"`
	Source string `json:"source" default:"api" validate:"oneof=api cli"`
}

func bindBody(t *testing.T, body string, req interface{}) []ValidationError {
	t.Helper()
	e := echo.New()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/score/composite", strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return Bind(e.NewContext(r, httptest.NewRecorder()), req)
}

func TestBindAppliesDefaults(t *testing.T) {
	var req scoreRequest
	require.Nil(t, bindBody(t, `{"market":5,"reorg":2}`, &req))
	assert.Equal(t, 5, req.Market)
	assert.Equal(t, "api", req.Source)
}

func TestBindReportsJSONFieldNames(t *testing.T) {
	var req scoreRequest
	errs := bindBody(t, `{"market":9,"reorg":2,"source":"cron"}`, &req)
	require.Len(t, errs, 2)

	assert.Equal(t, "ERR_LTE", errs[0].Code)
	assert.Equal(t, "market", errs[0].Field)
	assert.Equal(t, "market must be less than or equal to 5", errs[0].Message)
	assert.Equal(t, "5", errs[0].Params["max"])

	assert.Equal(t, "ERR_ONEOF", errs[1].Code)
	assert.Equal(t, "source must be one of: api, cli", errs[1].Message)
	assert.Equal(t, []string{"api", "cli"}, errs[1].Params["options"])
}

func TestBindMalformedBody(t *testing.T) {
	var req scoreRequest
	errs := bindBody(t, `{"market":`, &req)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_MALFORMED_BODY", errs[0].Code)
}
