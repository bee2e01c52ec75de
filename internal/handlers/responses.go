package handlers

import (
	"errors"
	"net/http"

	"github.com/Yoselin-A/API-REST-RED-SOCIAL/internal/apperrors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// success writes the {status:"success", ...} envelope with the given payload
// fields at the top level, matching the API's response convention.
func success(c echo.Context, fields echo.Map) error {
	body := echo.Map{"status": "success"}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// NewHTTPErrorHandler maps the error taxonomy onto the response envelope:
// validation and conflicts (duplicate user, duplicate edge, self-follow)
// to 400, auth failures to 401/403, missing resources to 404, everything
// unexpected to 500.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "unexpected error"

		switch {
		case errors.Is(err, apperrors.ErrSelfFollow),
			errors.Is(err, apperrors.ErrAlreadyFollowing),
			errors.Is(err, apperrors.ErrDuplicateUser),
			errors.Is(err, apperrors.ErrInvalidID),
			errors.Is(err, apperrors.ErrNotAnImage):
			code = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, apperrors.ErrInvalidCredentials),
			errors.Is(err, apperrors.ErrInvalidToken):
			code = http.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, apperrors.ErrMissingToken):
			code = http.StatusForbidden
			message = err.Error()
		case errors.Is(err, apperrors.ErrUserNotFound),
			errors.Is(err, apperrors.ErrFollowNotFound),
			errors.Is(err, apperrors.ErrPublicationNotFound):
			code = http.StatusNotFound
			message = err.Error()
		default:
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				code = httpErr.Code
				if m, ok := httpErr.Message.(string); ok {
					message = m
				} else {
					message = http.StatusText(code)
				}
			} else {
				logger.Error("unhandled request error",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()),
					zap.Error(err),
				)
			}
		}

		if err := c.JSON(code, echo.Map{"status": "error", "message": message}); err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}
