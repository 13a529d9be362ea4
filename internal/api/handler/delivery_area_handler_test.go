package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

func servedResult(q domain.AddressQuery, day domain.WeekDay) *domain.ZoneMatchResult {
	return &domain.ZoneMatchResult{
		MatchedZones: []domain.DeliveryArea{{
			ID:         "microcentro",
			Name:       "Microcentro",
			ActiveDays: []domain.WeekDay{domain.Monday, domain.Wednesday},
		}},
		ResolvedAddress: *corrientes(),
		QueryDay:        day,
	}
}

func TestDeliveryAreaHandler_Verify_Served(t *testing.T) {
	e := newEcho()
	svc := &stubDeliveryAreaService{
		verifyFn: func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
			return servedResult(q, day), nil
		},
	}
	h := NewDeliveryAreaHandler(svc, time.UTC)

	c, rec := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify",
		`{"address":"Av. Corrientes 1234","city":"CABA","zip_code":"C1043","day":"Wednesday"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := domain.AddressQuery{Address: "Av. Corrientes 1234", City: "CABA", PostalCode: "C1043"}
	if svc.gotQuery.Address != want.Address || svc.gotQuery.City != want.City || svc.gotQuery.PostalCode != want.PostalCode {
		t.Fatalf("query = %+v", svc.gotQuery)
	}
	if svc.gotDay != domain.Wednesday {
		t.Fatalf("day = %q", svc.gotDay)
	}

	var resp deliveryAreaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Served || len(resp.Zones) != 1 || resp.Zones[0].ID != "microcentro" {
		t.Fatalf("unexpected zones: %+v", resp)
	}
	if resp.Lat != -34.6037 || resp.Lng != -58.3857 || resp.Day != "wednesday" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.Components.PostalCode != "C1043" {
		t.Fatalf("components lost: %+v", resp.Components)
	}
}

func TestDeliveryAreaHandler_Verify_NotServedHasEmptyZones(t *testing.T) {
	e := newEcho()
	svc := &stubDeliveryAreaService{
		verifyFn: func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
			return &domain.ZoneMatchResult{MatchedZones: []domain.DeliveryArea{}, ResolvedAddress: *corrientes(), QueryDay: day}, nil
		},
	}
	h := NewDeliveryAreaHandler(svc, time.UTC)

	c, rec := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify", `{"address":"Av. Corrientes 1234","day":"sunday"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	zones, ok := resp["zones"].([]any)
	if !ok || len(zones) != 0 {
		t.Fatalf("zones must be an empty array, got %v", resp["zones"])
	}
	if resp["served"] != false {
		t.Fatalf("served = %v", resp["served"])
	}
}

func TestDeliveryAreaHandler_Verify_DefaultsToTodayInZone(t *testing.T) {
	e := newEcho()
	svc := &stubDeliveryAreaService{
		verifyFn: func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
			return servedResult(q, day), nil
		},
	}
	loc := time.FixedZone("ART", -3*60*60)
	h := NewDeliveryAreaHandler(svc, loc)
	// 02:00 UTC Thursday is still Wednesday in UTC-3.
	h.now = func() time.Time { return time.Date(2024, 1, 4, 2, 0, 0, 0, time.UTC) }

	c, _ := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify", `{"address":"Av. Corrientes 1234"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.gotDay != domain.Wednesday {
		t.Fatalf("default day = %q, want wednesday", svc.gotDay)
	}
}

func TestDeliveryAreaHandler_Verify_InvalidDay(t *testing.T) {
	e := newEcho()
	svc := &stubDeliveryAreaService{}
	h := NewDeliveryAreaHandler(svc, time.UTC)

	c, _ := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify", `{"address":"Av. Corrientes 1234","day":"funday"}`)
	err := h.Verify(c)
	if !errors.Is(err, domain.ErrUserInput) {
		t.Fatalf("expected user input error, got %v", err)
	}
	if svc.calls != 0 {
		t.Fatalf("service called with invalid day")
	}
}

func TestDeliveryAreaHandler_Verify_ValidationAndBinding(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"address":`, http.StatusBadRequest},
		{"nothing to resolve", `{"city":"CABA"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			svc := &stubDeliveryAreaService{}
			h := NewDeliveryAreaHandler(svc, time.UTC)

			c, _ := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify", tc.body)
			err := h.Verify(c)
			if code := httpErrorCode(err); code != tc.code {
				t.Fatalf("expected %d, got %v", tc.code, err)
			}
			if svc.calls != 0 {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestDeliveryAreaHandler_Verify_PostalCodeOnlyIsAccepted(t *testing.T) {
	e := newEcho()
	svc := &stubDeliveryAreaService{
		verifyFn: func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
			return servedResult(q, day), nil
		},
	}
	h := NewDeliveryAreaHandler(svc, time.UTC)

	c, _ := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify", `{"zip_code":"C1043","day":"monday"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.gotQuery.PostalCode != "C1043" {
		t.Fatalf("query = %+v", svc.gotQuery)
	}
}

func TestDeliveryAreaHandler_Verify_ServiceErrorPropagates(t *testing.T) {
	e := newEcho()
	want := domain.NewUnavailableError("retry later", nil)
	svc := &stubDeliveryAreaService{
		verifyFn: func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
			return nil, want
		},
	}
	h := NewDeliveryAreaHandler(svc, time.UTC)

	c, _ := jsonContext(e, http.MethodPost, "/v1/delivery-areas/verify", `{"address":"x","day":"monday"}`)
	if err := h.Verify(c); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestDeliveryAreaHandler_Search_Coordinate(t *testing.T) {
	e := newEcho()
	svc := &stubDeliveryAreaService{
		verifyFn: func(ctx context.Context, q domain.AddressQuery, day domain.WeekDay) (*domain.ZoneMatchResult, error) {
			return servedResult(q, day), nil
		},
	}
	h := NewDeliveryAreaHandler(svc, time.UTC)

	c, rec := jsonContext(e, http.MethodPost, "/v1/delivery-areas/search",
		`{"lat":-34.6037,"lng":-58.3857,"current_day":"MONDAY"}`)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotQuery.Coordinate == nil || *svc.gotQuery.Coordinate != (domain.Coordinate{Lat: -34.6037, Lng: -58.3857}) {
		t.Fatalf("coordinate not forwarded: %+v", svc.gotQuery)
	}
	if svc.gotDay != domain.Monday {
		t.Fatalf("day = %q", svc.gotDay)
	}
}

func TestDeliveryAreaHandler_Search_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"lat without lng", `{"lat":-34.6}`},
		{"lat out of range", `{"lat":-91,"lng":0}`},
		{"lng out of range", `{"lat":0,"lng":181}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			svc := &stubDeliveryAreaService{}
			h := NewDeliveryAreaHandler(svc, time.UTC)

			c, _ := jsonContext(e, http.MethodPost, "/v1/delivery-areas/search", tc.body)
			if code := httpErrorCode(h.Search(c)); code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", code)
			}
			if svc.calls != 0 {
				t.Fatalf("service should not be called")
			}
		})
	}
}
