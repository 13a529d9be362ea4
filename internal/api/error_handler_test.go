package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "user input",
			err:      fmt.Errorf("verify: %w", domain.NewUserInputError("address not found", errors.New("ZERO_RESULTS"))),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "address not found",
		},
		{
			name:     "unavailable",
			err:      domain.NewUnavailableError("provider timed out", errors.New("dial tcp: i/o timeout")),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  msgRetryLater,
		},
		{
			name:     "configuration",
			err:      domain.NewConfigurationError("REQUEST_DENIED", nil),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  msgNotConfigured,
		},
		{
			name:     "echo error",
			err:      echo.NewHTTPError(http.StatusBadRequest, "invalid payload"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid payload",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/delivery-areas/verify", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.wantMsg {
				t.Fatalf("message = %q, want %q", resp.Error, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_DoesNotLeakInternals(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.NewUnavailableError("provider timed out", errors.New("key=SECRET")), c)

	if body := rec.Body.String(); body != "{\"error\":\""+msgRetryLater+"\"}\n" {
		t.Fatalf("body = %q", body)
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}

func TestHTTPErrorHandler_ConfigurationErrorIsNotLoggedAgain(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.New(&buf))(domain.NewConfigurationError("not configured", errors.New("REQUEST_DENIED")), c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if buf.Len() != 0 {
		t.Fatalf("configuration errors are logged by the service layer, got %s", buf.String())
	}
}
