package service

import "github.com/99minutos/delivery-zones/internal/core/domain"

// ZoneMatcher combines a resolved address and a week day against a
// PolygonIndex.
type ZoneMatcher struct {
	index *PolygonIndex
}

func NewZoneMatcher(index *PolygonIndex) *ZoneMatcher {
	return &ZoneMatcher{index: index}
}

// Match returns the zones serving addr on day. A usable coordinate selects
// zones geometrically; otherwise the postal code allowlists are used. The
// result keeps configuration order and may be empty.
func (m *ZoneMatcher) Match(addr domain.ResolvedAddress, day domain.WeekDay) domain.ZoneMatchResult {
	var candidates []domain.DeliveryArea
	if !addr.Coordinate.IsZero() {
		candidates = m.index.ZonesContaining(addr.Coordinate)
	} else {
		candidates = m.index.ZonesForPostalCode(addr.Components.PostalCode)
	}

	matched := make([]domain.DeliveryArea, 0, len(candidates))
	for _, z := range candidates {
		if z.ActiveOn(day) {
			matched = append(matched, z)
		}
	}

	return domain.ZoneMatchResult{
		MatchedZones:    matched,
		ResolvedAddress: addr,
		QueryDay:        day,
	}
}
