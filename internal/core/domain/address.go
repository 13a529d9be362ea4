package domain

// AddressComponents holds the semantic parts of an address. Empty fields mean
// the provider did not return that granularity.
type AddressComponents struct {
	Street       string `json:"street,omitempty"`
	StreetNumber string `json:"street_number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
}

// ResolvedAddress is the canonical result of address resolution.
// Values are never mutated after being returned by the resolver.
type ResolvedAddress struct {
	FormattedAddress string            `json:"formatted_address"`
	Components       AddressComponents `json:"components"`
	Coordinate       Coordinate        `json:"coordinate"`
	IsPartialMatch   bool              `json:"is_partial_match"`
	PlaceID          string            `json:"place_id,omitempty"`
}

// Suggestion is a single autocomplete candidate.
type Suggestion struct {
	FormattedAddress string            `json:"formatted_address"`
	Components       AddressComponents `json:"components"`
	PlaceID          string            `json:"place_id,omitempty"`
}

// AddressQuery is the input to address resolution. At least one of PlaceID,
// Address, Coordinate or PostalCode must be set.
type AddressQuery struct {
	Address    string
	City       string
	PostalCode string
	PlaceID    string
	Coordinate *Coordinate
}
