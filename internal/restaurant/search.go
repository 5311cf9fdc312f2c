// Package restaurant finds eating places near a meeting station.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/places"
	"github.com/rs/zerolog/log"
)

const (
	SearchRadiusM  = 500
	MaxRestaurants = 12
	PhotoMaxWidth  = 400

	DefaultMinRating     = 3.5
	DefaultMinReviews    = 0
	DefaultMaxPriceLevel = 4
)

var ErrMissingCoordinates = errors.New("latitude and longitude are required")

// Category to Nearby Search type; anything not listed searches "restaurant"
var categoryTypes = map[string]string{
	"restaurant": "restaurant",
	"izakaya":    "bar",
	"cafe":       "cafe",
	"italian":    "restaurant",
	"japanese":   "restaurant",
	"chinese":    "restaurant",
	"korean":     "restaurant",
	"french":     "restaurant",
}

type categoryRule struct {
	nameWords []string
	types     []string
}

var categoryRules = map[string]categoryRule{
	"izakaya":  {nameWords: []string{"居酒屋"}, types: []string{"bar", "night_club"}},
	"italian":  {nameWords: []string{"イタリア", "パスタ", "ピザ"}},
	"cafe":     {nameWords: []string{"カフェ", "喫茶"}, types: []string{"cafe"}},
	"japanese": {nameWords: []string{"和食", "日本料理", "寿司", "天ぷら", "うなぎ"}},
	"chinese":  {nameWords: []string{"中華", "中国料理", "餃子", "ラーメン"}},
	"korean":   {nameWords: []string{"韓国", "焼肉", "サムギョプサル"}},
	"french":   {nameWords: []string{"フレンチ", "フランス料理", "ビストロ"}},
}

// PlacesAPI is the part of the Maps client the search needs
type PlacesAPI interface {
	NearbySearch(ctx context.Context, req places.NearbyRequest) ([]places.NearbyPlace, error)
	PhotoURL(photoReference string, maxWidth int) string
}

type Searcher struct {
	api PlacesAPI
}

var _ models.RestaurantFinder = (*Searcher)(nil)

func NewSearcher(api PlacesAPI) *Searcher {
	return &Searcher{api: api}
}

type filters struct {
	minRating     float64
	minReviews    int
	maxPriceLevel int
	category      string
}

func filtersFrom(q models.RestaurantQuery) filters {
	f := filters{
		minRating:     DefaultMinRating,
		minReviews:    DefaultMinReviews,
		maxPriceLevel: DefaultMaxPriceLevel,
		category:      q.Category,
	}
	if q.MinRating != nil {
		f.minRating = *q.MinRating
	}
	if q.MinReviews != nil {
		f.minReviews = *q.MinReviews
	}
	if q.MaxPriceLevel != nil {
		f.maxPriceLevel = *q.MaxPriceLevel
	}
	return f
}

// SearchType maps a category to the upstream place type
func SearchType(category string) string {
	if t, ok := categoryTypes[category]; ok {
		return t
	}
	return "restaurant"
}

// Search returns up to MaxRestaurants places passing the filters, in upstream order.
// A non-OK upstream status gives an empty list; transport failures are returned.
func (s *Searcher) Search(ctx context.Context, q models.RestaurantQuery) ([]models.Restaurant, error) {
	if q.Latitude == nil || q.Longitude == nil {
		return nil, ErrMissingCoordinates
	}

	f := filtersFrom(q)
	results, err := s.api.NearbySearch(ctx, places.NearbyRequest{
		Latitude:  *q.Latitude,
		Longitude: *q.Longitude,
		RadiusM:   SearchRadiusM,
		Type:      SearchType(q.Category),
	})
	if err != nil {
		if errors.Is(err, places.ErrMissingAPIKey) {
			return nil, err
		}
		if !places.IsStatusError(err) {
			return nil, fmt.Errorf("searching restaurants: %w", err)
		}
		log.Warn().Err(err).Str("category", q.Category).Msg("Restaurant search returned non-OK status, returning no results")
		return []models.Restaurant{}, nil
	}

	restaurants := make([]models.Restaurant, 0, MaxRestaurants)
	for _, p := range results {
		if len(restaurants) == MaxRestaurants {
			break
		}
		if !f.accept(p) {
			continue
		}
		restaurants = append(restaurants, s.toRestaurant(p))
	}

	log.Debug().Int("upstream", len(results)).Int("kept", len(restaurants)).Msg("Filtered restaurants")
	return restaurants, nil
}

func (f filters) accept(p places.NearbyPlace) bool {
	var rating float64
	if p.Rating != nil {
		rating = *p.Rating
	}
	var reviews int
	if p.UserRatingsTotal != nil {
		reviews = *p.UserRatingsTotal
	}
	if rating < f.minRating || reviews < f.minReviews {
		return false
	}

	if p.PriceLevel != nil && *p.PriceLevel > 0 && *p.PriceLevel > f.maxPriceLevel {
		return false
	}

	rule, ok := categoryRules[f.category]
	if !ok {
		return true
	}
	return rule.matches(p)
}

func (r categoryRule) matches(p places.NearbyPlace) bool {
	for _, w := range r.nameWords {
		if strings.Contains(p.Name, w) {
			return true
		}
	}
	for _, want := range r.types {
		for _, t := range p.Types {
			if t == want {
				return true
			}
		}
	}
	return false
}

func (s *Searcher) toRestaurant(p places.NearbyPlace) models.Restaurant {
	r := models.Restaurant{
		Name:             p.Name,
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		PriceLevel:       p.PriceLevel,
		Vicinity:         p.Vicinity,
		Types:            p.Types,
		PlaceID:          p.PlaceID,
	}
	if r.Types == nil {
		r.Types = []string{}
	}
	if len(p.Photos) > 0 && p.Photos[0].PhotoReference != "" {
		r.PhotoURL = s.api.PhotoURL(p.Photos[0].PhotoReference, PhotoMaxWidth)
	}
	return r
}
