package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/models"
	"github.com/Yoselin-A/API-REST-RED-SOCIAL/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zap.NewNop())
	return e
}

// do runs one handler the way the server would: errors go through the
// central error handler so status codes and envelopes match production.
func do(t *testing.T, e *echo.Echo, req *http.Request, userID uint, pathParams map[string]string, h echo.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	if len(pathParams) > 0 {
		names := make([]string, 0, len(pathParams))
		values := make([]string, 0, len(pathParams))
		for name, value := range pathParams {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	var body map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, body
}

func jsonRequest(method, target, payload string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
