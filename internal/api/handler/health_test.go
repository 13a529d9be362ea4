package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func okCheck(context.Context) error { return nil }

func failCheck(context.Context) error { return errors.New("connection refused") }

func readiness(t *testing.T, deps ...Dependency) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := NewReadinessHandler(deps...).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		name       string
		deps       []Dependency
		wantCode   int
		wantStatus string
	}{
		{"all ok", []Dependency{{"mongodb", true, okCheck}, {"redis", false, okCheck}}, http.StatusOK, "ok"},
		{"optional down", []Dependency{{"mongodb", true, okCheck}, {"redis", false, failCheck}}, http.StatusOK, "degraded"},
		{"required down", []Dependency{{"mongodb", true, failCheck}, {"redis", false, failCheck}}, http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := readiness(t, tc.deps...)
			if code != tc.wantCode || resp.Status != tc.wantStatus {
				t.Fatalf("got %d %q, want %d %q", code, resp.Status, tc.wantCode, tc.wantStatus)
			}
			if len(resp.Dependencies) != len(tc.deps) {
				t.Fatalf("dependencies = %v", resp.Dependencies)
			}
		})
	}
}

func TestReadiness_ReportsError(t *testing.T) {
	_, resp := readiness(t, Dependency{Name: "mongodb", Required: true, Check: failCheck})
	if got := resp.Dependencies["mongodb"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Fatalf("mongodb = %+v", got)
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
