package google

import "github.com/99minutos/delivery-zones/internal/core/domain"

// Status is the provider status code returned in every response body.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusNotFound       Status = "NOT_FOUND"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusOverDailyLimit Status = "OVER_DAILY_LIMIT"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

// failure classifies a status. It returns 0 for StatusOK. Every known status
// has its own case; anything else is treated as the provider being
// unavailable.
func (s Status) failure() domain.GeocodeFailure {
	switch s {
	case StatusOK:
		return 0
	case StatusZeroResults, StatusNotFound:
		return domain.FailureNotFound
	case StatusInvalidRequest:
		return domain.FailureInvalidInput
	case StatusRequestDenied, StatusOverDailyLimit:
		// OVER_DAILY_LIMIT is reported for missing billing or an invalid key.
		return domain.FailureProviderMisconfigured
	case StatusOverQueryLimit:
		return domain.FailureQuotaExceeded
	case StatusUnknownError:
		return domain.FailureUnavailable
	default:
		return domain.FailureUnavailable
	}
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location     *location `json:"location"`
	LocationType string    `json:"location_type"`
}

type placeResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          geometry           `json:"geometry"`
	PlaceID           string             `json:"place_id"`
	PartialMatch      bool               `json:"partial_match"`
	Types             []string           `json:"types"`
}

type geocodeResponse struct {
	Status       Status        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type detailsResponse struct {
	Status       Status      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Result       placeResult `json:"result"`
}

type prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

type autocompleteResponse struct {
	Status       Status       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Predictions  []prediction `json:"predictions"`
}

// toResolved converts a geocode or place-details result. Both code paths go
// through here so they can never disagree on parsing.
func (r placeResult) toResolved() *domain.ResolvedAddress {
	res := &domain.ResolvedAddress{
		FormattedAddress: r.FormattedAddress,
		Components:       parseComponents(r.AddressComponents),
		IsPartialMatch:   r.PartialMatch,
		PlaceID:          r.PlaceID,
	}
	if loc := r.Geometry.Location; loc != nil {
		res.Coordinate = domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}
	}
	return res
}
