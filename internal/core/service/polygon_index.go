package service

import (
	"math"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

// boundaryEpsilon is the distance, in degrees, under which a point is
// considered to lie on a polygon edge (~0.1 mm at the equator).
const boundaryEpsilon = 1e-9

// PolygonIndex answers geometric and postal-code membership queries over a
// snapshot of delivery areas. Disabled zones are dropped at construction and
// configuration order is preserved in every result.
type PolygonIndex struct {
	zones    []indexedZone
	skipped  []string
	disabled int
}

type indexedZone struct {
	area      domain.DeliveryArea
	bounds    bounds
	geometric bool
}

type bounds struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

// NewPolygonIndex builds an index over zones. Zones whose polygon cannot be
// tested (fewer than 3 vertices or out-of-range coordinates) are still
// eligible for postal-code matching; their IDs are reported by Skipped.
func NewPolygonIndex(zones []domain.DeliveryArea) *PolygonIndex {
	idx := &PolygonIndex{zones: make([]indexedZone, 0, len(zones))}
	for _, z := range zones {
		if !z.Enabled {
			idx.disabled++
			continue
		}
		iz := indexedZone{area: z, geometric: z.HasValidPolygon()}
		if iz.geometric {
			iz.bounds = boundsOf(z.Polygon)
		} else {
			idx.skipped = append(idx.skipped, z.ID)
		}
		idx.zones = append(idx.zones, iz)
	}
	return idx
}

// Len returns the number of enabled zones.
func (i *PolygonIndex) Len() int { return len(i.zones) }

// Disabled returns how many zones were excluded for being disabled.
func (i *PolygonIndex) Disabled() int { return i.disabled }

// Skipped returns the IDs of enabled zones excluded from geometric tests.
func (i *PolygonIndex) Skipped() []string { return i.skipped }

// ZonesContaining returns the enabled zones whose polygon contains c,
// boundary included. Overlapping zones are all returned.
func (i *PolygonIndex) ZonesContaining(c domain.Coordinate) []domain.DeliveryArea {
	out := make([]domain.DeliveryArea, 0)
	if !c.Valid() {
		return out
	}
	for _, z := range i.zones {
		if !z.geometric || !z.bounds.contains(c) {
			continue
		}
		if polygonContains(z.area.Polygon, c) {
			out = append(out, z.area)
		}
	}
	return out
}

// ZonesForPostalCode returns the enabled zones whose allowlist contains code,
// regardless of geometry.
func (i *PolygonIndex) ZonesForPostalCode(code string) []domain.DeliveryArea {
	out := make([]domain.DeliveryArea, 0)
	if domain.NormalizePostalCode(code) == "" {
		return out
	}
	for _, z := range i.zones {
		if z.area.ServesPostalCode(code) {
			out = append(out, z.area)
		}
	}
	return out
}

func boundsOf(poly []domain.Coordinate) bounds {
	b := bounds{
		minLat: poly[0].Lat, maxLat: poly[0].Lat,
		minLng: poly[0].Lng, maxLng: poly[0].Lng,
	}
	for _, v := range poly[1:] {
		b.minLat = math.Min(b.minLat, v.Lat)
		b.maxLat = math.Max(b.maxLat, v.Lat)
		b.minLng = math.Min(b.minLng, v.Lng)
		b.maxLng = math.Max(b.maxLng, v.Lng)
	}
	return b
}

func (b bounds) contains(c domain.Coordinate) bool {
	return c.Lat >= b.minLat-boundaryEpsilon && c.Lat <= b.maxLat+boundaryEpsilon &&
		c.Lng >= b.minLng-boundaryEpsilon && c.Lng <= b.maxLng+boundaryEpsilon
}

// polygonContains runs an even-odd ray cast towards +lng. The polygon is
// implicitly closed. Points on an edge or vertex count as inside.
func polygonContains(poly []domain.Coordinate, p domain.Coordinate) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if onSegment(a, b, p) {
			return true
		}
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lng
			if p.Lng < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p domain.Coordinate) bool {
	dLng, dLat := b.Lng-a.Lng, b.Lat-a.Lat
	length := math.Hypot(dLng, dLat)
	if length == 0 {
		return math.Hypot(p.Lng-a.Lng, p.Lat-a.Lat) <= boundaryEpsilon
	}
	cross := dLng*(p.Lat-a.Lat) - dLat*(p.Lng-a.Lng)
	if math.Abs(cross)/length > boundaryEpsilon {
		return false
	}
	return p.Lng >= math.Min(a.Lng, b.Lng)-boundaryEpsilon && p.Lng <= math.Max(a.Lng, b.Lng)+boundaryEpsilon &&
		p.Lat >= math.Min(a.Lat, b.Lat)-boundaryEpsilon && p.Lat <= math.Max(a.Lat, b.Lat)+boundaryEpsilon
}
