package venues

import "strings"

// Category is the audience-type facet driving search-type derivation and
// post-filtering.
type Category string

const (
	CategorySingles  Category = "singles"
	CategoryCouples  Category = "couples"
	CategoryFamilies Category = "families"
)

// ParseCategory normalizes raw query input. Unrecognized values are kept
// as-is: they fall back to the restaurant-only query type downstream and
// are never rejected.
func ParseCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

// Venue is the client-facing shape of one discovered place. Fields are
// sourced verbatim from the place-search provider; the pipeline only
// filters, truncates, and reshapes.
type Venue struct {
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Address  string   `json:"address"`
	Rating   float64  `json:"rating,omitempty"`
	Types    []string `json:"types"`
	Icon     string   `json:"icon"`
	PhotoRef *string  `json:"photoRef"`
	PlaceID  string   `json:"place_id"`
}
