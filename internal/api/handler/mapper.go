package handler

import "github.com/99minutos/delivery-zones/internal/core/domain"

func toDeliveryAreaResponse(r *domain.ZoneMatchResult) deliveryAreaResponse {
	zones := make([]zoneResponse, 0, len(r.MatchedZones))
	for _, z := range r.MatchedZones {
		days := make([]string, 0, len(z.ActiveDays))
		for _, d := range z.ActiveDays {
			days = append(days, string(d))
		}
		zones = append(zones, zoneResponse{ID: z.ID, Name: z.Name, ActiveDays: days})
	}

	addr := r.ResolvedAddress
	return deliveryAreaResponse{
		Served:           r.Served(),
		Zones:            zones,
		FormattedAddress: addr.FormattedAddress,
		Lat:              addr.Coordinate.Lat,
		Lng:              addr.Coordinate.Lng,
		Components:       addr.Components,
		IsPartialMatch:   addr.IsPartialMatch,
		Day:              string(r.QueryDay),
	}
}

func toAddressResponse(a *domain.ResolvedAddress) addressResponse {
	return addressResponse{
		FormattedAddress: a.FormattedAddress,
		Lat:              a.Coordinate.Lat,
		Lng:              a.Coordinate.Lng,
		Components:       a.Components,
		IsPartialMatch:   a.IsPartialMatch,
		PlaceID:          a.PlaceID,
	}
}

func toAutocompleteResponse(in []domain.Suggestion) autocompleteResponse {
	out := make([]suggestionResponse, 0, len(in))
	for _, s := range in {
		out = append(out, suggestionResponse{
			FormattedAddress: s.FormattedAddress,
			Components:       s.Components,
			PlaceID:          s.PlaceID,
		})
	}
	return autocompleteResponse{Suggestions: out}
}
