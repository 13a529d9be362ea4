package google

import "github.com/99minutos/delivery-zones/internal/core/domain"

type componentField int

const (
	fieldStreet componentField = iota
	fieldStreetNumber
	fieldNeighborhood
	fieldCity
	fieldState
	fieldCountry
	fieldPostalCode
)

// componentPriority lists provider component types in priority order. When
// several components map to the same field the earliest entry wins.
// Unlisted types are ignored.
var componentPriority = []struct {
	providerType string
	field        componentField
}{
	{"street_number", fieldStreetNumber},
	{"route", fieldStreet},
	{"neighborhood", fieldNeighborhood},
	{"sublocality_level_1", fieldNeighborhood},
	{"sublocality", fieldNeighborhood},
	{"locality", fieldCity},
	{"administrative_area_level_2", fieldCity},
	{"administrative_area_level_1", fieldState},
	{"country", fieldCountry},
	{"postal_code", fieldPostalCode},
}

type componentRule struct {
	field componentField
	rank  int
}

var componentRules = func() map[string]componentRule {
	m := make(map[string]componentRule, len(componentPriority))
	for i, p := range componentPriority {
		m[p.providerType] = componentRule{field: p.field, rank: i}
	}
	return m
}()

// parseComponents maps provider address components onto AddressComponents.
// It is pure and deterministic: for each field the value of the
// highest-priority type wins, ties go to the first component seen.
func parseComponents(components []addressComponent) domain.AddressComponents {
	type pick struct {
		value string
		rank  int
	}
	best := make(map[componentField]pick)

	for _, c := range components {
		if c.LongName == "" {
			continue
		}
		for _, t := range c.Types {
			rule, ok := componentRules[t]
			if !ok {
				continue
			}
			if cur, seen := best[rule.field]; seen && cur.rank <= rule.rank {
				continue
			}
			best[rule.field] = pick{value: c.LongName, rank: rule.rank}
		}
	}

	var out domain.AddressComponents
	for field, p := range best {
		switch field {
		case fieldStreet:
			out.Street = p.value
		case fieldStreetNumber:
			out.StreetNumber = p.value
		case fieldNeighborhood:
			out.Neighborhood = p.value
		case fieldCity:
			out.City = p.value
		case fieldState:
			out.State = p.value
		case fieldCountry:
			out.Country = p.value
		case fieldPostalCode:
			out.PostalCode = p.value
		}
	}
	return out
}
