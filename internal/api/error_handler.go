package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

const (
	msgRetryLater    = "service temporarily unavailable, please retry later"
	msgNotConfigured = "address service is not configured"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"error": "<message>"}. Only user input
// errors expose their message; everything else gets a fixed text.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		switch {
		case errors.Is(err, domain.ErrServiceUnavailable):
			c.Response().Header().Set("Retry-After", "1")
		case code == http.StatusInternalServerError && !isHTTPError(err):
			// Unexpected error: log the real cause, return a generic message.
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// statusCode reports the status a request ends with. It runs before the
// error handler has written the response, so it resolves err itself.
func statusCode(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	code, _ := resolveError(err)
	return code
}

// resolveError maps err to a status code and client message. The operator
// alert for ErrConfiguration is raised by the service layer.
func resolveError(err error) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUserInput):
		return http.StatusUnprocessableEntity, domain.UserMessage(err)
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable, msgNotConfigured
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, msgRetryLater
	}
	return http.StatusInternalServerError, "internal server error"
}

func isHTTPError(err error) bool {
	var he *echo.HTTPError
	return errors.As(err, &he)
}
