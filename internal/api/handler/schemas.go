package handler

import "github.com/99minutos/delivery-zones/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type verifyDeliveryAreaRequest struct {
	Address string `json:"address"  validate:"required_without_all=PlaceID ZipCode,max=300"`
	City    string `json:"city"     validate:"max=100"`
	ZipCode string `json:"zip_code" validate:"max=20"`
	PlaceID string `json:"place_id" validate:"max=300"`
	// Day defaults to today in the configured time zone.
	Day string `json:"day"`
}

type searchDeliveryAreaRequest struct {
	Lat        *float64 `json:"lat"         validate:"omitempty,min=-90,max=90"`
	Lng        *float64 `json:"lng"         validate:"omitempty,min=-180,max=180"`
	Address    string   `json:"address"     validate:"max=300"`
	City       string   `json:"city"        validate:"max=100"`
	ZipCode    string   `json:"zip_code"    validate:"max=20"`
	CurrentDay string   `json:"current_day"`
}

type verifyAddressRequest struct {
	Address string `json:"address"  validate:"required_without_all=PlaceID ZipCode,max=300"`
	City    string `json:"city"     validate:"max=100"`
	ZipCode string `json:"zip_code" validate:"max=20"`
	PlaceID string `json:"place_id" validate:"max=300"`
}

type autocompleteRequest struct {
	Query string `query:"query" validate:"max=300"`
	City  string `query:"city"  validate:"max=100"`
}

// --- Response types ---

type zoneResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ActiveDays []string `json:"active_days"`
}

type deliveryAreaResponse struct {
	Served           bool                     `json:"served"`
	Zones            []zoneResponse           `json:"zones"`
	FormattedAddress string                   `json:"formatted_address"`
	Lat              float64                  `json:"lat"`
	Lng              float64                  `json:"lng"`
	Components       domain.AddressComponents `json:"components"`
	IsPartialMatch   bool                     `json:"is_partial_match"`
	Day              string                   `json:"day"`
}

type addressResponse struct {
	FormattedAddress string                   `json:"formatted_address"`
	Lat              float64                  `json:"lat"`
	Lng              float64                  `json:"lng"`
	Components       domain.AddressComponents `json:"components"`
	IsPartialMatch   bool                     `json:"is_partial_match"`
	PlaceID          string                   `json:"place_id,omitempty"`
}

type suggestionResponse struct {
	FormattedAddress string                   `json:"formatted_address"`
	Components       domain.AddressComponents `json:"components"`
	PlaceID          string                   `json:"place_id,omitempty"`
}

type autocompleteResponse struct {
	Suggestions []suggestionResponse `json:"suggestions"`
}
