package domain

import "strings"

// DeliveryArea is a configured delivery zone: a polygon plus the days it
// operates. Zones are owned by an external administration tool; this service
// only reads them.
type DeliveryArea struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Polygon     []Coordinate `json:"polygon"`
	ActiveDays  []WeekDay    `json:"active_days"`
	PostalCodes []string     `json:"postal_codes,omitempty"`
	Enabled     bool         `json:"enabled"`
}

// ActiveOn reports whether the zone delivers on day. An empty ActiveDays list
// means the zone is never active.
func (a DeliveryArea) ActiveOn(day WeekDay) bool {
	for _, d := range a.ActiveDays {
		if d == day {
			return true
		}
	}
	return false
}

// ServesPostalCode reports whether code is in the zone's postal code allowlist.
func (a DeliveryArea) ServesPostalCode(code string) bool {
	code = NormalizePostalCode(code)
	if code == "" {
		return false
	}
	for _, pc := range a.PostalCodes {
		if NormalizePostalCode(pc) == code {
			return true
		}
	}
	return false
}

// HasValidPolygon reports whether the polygon can take part in a
// point-in-polygon test.
func (a DeliveryArea) HasValidPolygon() bool {
	if len(a.Polygon) < 3 {
		return false
	}
	for _, v := range a.Polygon {
		if !v.Valid() {
			return false
		}
	}
	return true
}

// NormalizePostalCode trims and upper-cases a postal code so "c1425abc" and
// " C1425ABC" compare equal.
func NormalizePostalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ZoneMatchResult is the answer to "which zones deliver here on this day".
// An empty MatchedZones is a valid "not served" answer.
type ZoneMatchResult struct {
	MatchedZones    []DeliveryArea  `json:"matched_zones"`
	ResolvedAddress ResolvedAddress `json:"resolved_address"`
	QueryDay        WeekDay         `json:"query_day"`
}

// Served reports whether at least one zone matched.
func (r ZoneMatchResult) Served() bool {
	return len(r.MatchedZones) > 0
}
