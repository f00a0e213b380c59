package venues

import (
	"context"
	"fmt"
	"slices"
	"strings"

	pkgerrors "github.com/nightcrawl/nightcrawl-backend/pkg/errors"
	"github.com/nightcrawl/nightcrawl-backend/pkg/logger"
	"github.com/nightcrawl/nightcrawl-backend/pkg/maps"
)

const (
	// searchRadius is fixed per search, not configurable per call.
	searchRadius = 4000

	// countrySuffix disambiguates free-text city input before geocoding.
	countrySuffix = ", Canada"

	queryTypeBarRestaurant  = "bar|restaurant"
	queryTypeRestaurantOnly = "restaurant"

	tagRestaurant = "restaurant"
	tagBar        = "bar"
)

// Geocoder resolves a free-text address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (maps.LatLng, error)
}

// PlaceSearcher retrieves candidate places around a coordinate.
type PlaceSearcher interface {
	NearbySearch(ctx context.Context, req maps.NearbySearchRequest) ([]maps.Place, error)
}

// SearchInput parameterizes one pipeline invocation.
type SearchInput struct {
	City     string
	Category Category
	Limit    int
}

// Service runs the city-to-venue-list pipeline: geocode, nearby search,
// category filter, truncate. All-or-nothing: either a full venue list or
// an error.
type Service interface {
	Search(ctx context.Context, input SearchInput) ([]Venue, error)
}

type service struct {
	geocoder Geocoder
	places   PlaceSearcher
	logger   *logger.Logger
}

// NewService builds the venue search pipeline.
func NewService(geocoder Geocoder, places PlaceSearcher, logg *logger.Logger) (Service, error) {
	if geocoder == nil {
		return nil, fmt.Errorf("geocoder required")
	}
	if places == nil {
		return nil, fmt.Errorf("place searcher required")
	}
	return &service{
		geocoder: geocoder,
		places:   places,
		logger:   logg,
	}, nil
}

func (s *service) Search(ctx context.Context, input SearchInput) ([]Venue, error) {
	city := strings.TrimSpace(input.City)
	if city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city required")
	}

	origin, err := s.geocoder.Geocode(ctx, city+countrySuffix)
	if err != nil {
		return nil, err
	}

	places, err := s.places.NearbySearch(ctx, maps.NearbySearchRequest{
		Location: origin,
		Radius:   searchRadius,
		Type:     queryTypeFor(input.Category),
	})
	if err != nil {
		return nil, err
	}

	if input.Category == CategoryFamilies {
		places = filterFamilyFriendly(places)
	}

	if input.Limit > 0 && input.Limit < len(places) {
		places = places[:input.Limit]
	}

	if s.logger != nil {
		ctx = s.logger.WithFields(ctx, map[string]any{
			"city":        city,
			"category":    string(input.Category),
			"venue_count": len(places),
		})
		s.logger.Info(ctx, "venue search complete")
	}

	venues := make([]Venue, 0, len(places))
	for _, place := range places {
		venues = append(venues, newVenue(place))
	}
	return venues, nil
}

// queryTypeFor widens the search to bars for singles and couples; every
// other value, including absent or unrecognized ones, searches
// restaurants only.
func queryTypeFor(category Category) string {
	switch category {
	case CategorySingles, CategoryCouples:
		return queryTypeBarRestaurant
	default:
		return queryTypeRestaurantOnly
	}
}

// filterFamilyFriendly keeps places tagged as restaurants that are not
// also tagged as bars. Provider order is preserved.
func filterFamilyFriendly(places []maps.Place) []maps.Place {
	kept := make([]maps.Place, 0, len(places))
	for _, place := range places {
		if slices.Contains(place.Types, tagRestaurant) && !slices.Contains(place.Types, tagBar) {
			kept = append(kept, place)
		}
	}
	return kept
}

func newVenue(place maps.Place) Venue {
	address := place.Vicinity
	if address == "" {
		address = place.FormattedAddress
	}

	var photoRef *string
	if len(place.Photos) > 0 && place.Photos[0].PhotoReference != "" {
		ref := place.Photos[0].PhotoReference
		photoRef = &ref
	}

	return Venue{
		Name:     place.Name,
		Lat:      place.Geometry.Location.Lat,
		Lng:      place.Geometry.Location.Lng,
		Address:  address,
		Rating:   place.Rating,
		Types:    place.Types,
		Icon:     place.Icon,
		PhotoRef: photoRef,
		PlaceID:  place.PlaceID,
	}
}
