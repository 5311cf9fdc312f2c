// Package station resolves station names to coordinates and finds the stations
// nearest to the centre of a group.
package station

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bbernstein/meetpoint/backend-go/internal/geo"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/places"
	"github.com/rs/zerolog/log"
)

const (
	// CenterSearchRadiusM is the Nearby Search radius around the centroid
	CenterSearchRadiusM = 5000
	// MaxCenterStations is how many candidates FindCenterStations returns
	MaxCenterStations = 3
)

// Types searched around the centroid, in order; first-seen wins on duplicates
var centerSearchTypes = []string{"subway_station", "train_station"}

var detailsFields = []string{"name", "geometry", "formatted_address"}

// PlacesAPI is the part of the Maps client the finder needs
type PlacesAPI interface {
	Autocomplete(ctx context.Context, input string) ([]places.AutocompletePrediction, error)
	Details(ctx context.Context, placeID string, fields ...string) (*places.PlaceDetails, error)
	Geocode(ctx context.Context, address string) ([]places.GeocodeResult, error)
	NearbySearch(ctx context.Context, req places.NearbyRequest) ([]places.NearbyPlace, error)
}

type PredictionCache interface {
	Get(key string) ([]models.Prediction, bool)
	Add(key string, value []models.Prediction)
}

type PlaceCache interface {
	GetPlace(ctx context.Context, placeID string) (*models.Station, bool)
	SavePlace(ctx context.Context, station models.Station)
}

// SearchCache holds the de-duplicated candidates found around a centre point
type SearchCache interface {
	GetCandidates(ctx context.Context, key string) ([]models.NearbyStation, error)
	SaveCandidates(ctx context.Context, key string, candidates []models.NearbyStation) error
}

type Option func(*PlacesFinder)

func WithPredictionCache(c PredictionCache) Option {
	return func(f *PlacesFinder) {
		f.predictions = c
	}
}

func WithPlaceCache(c PlaceCache) Option {
	return func(f *PlacesFinder) {
		f.places = c
	}
}

func WithSearchCache(c SearchCache) Option {
	return func(f *PlacesFinder) {
		f.searches = c
	}
}

// PlacesFinder implements models.StationFinder on top of the Maps web services.
// Caches are optional and never change what a call returns.
type PlacesFinder struct {
	api         PlacesAPI
	predictions PredictionCache
	places      PlaceCache
	searches    SearchCache
}

var _ models.StationFinder = (*PlacesFinder)(nil)

func NewPlacesFinder(api PlacesAPI, opts ...Option) *PlacesFinder {
	f := &PlacesFinder{api: api}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Autocomplete never fails on upstream problems; they degrade to an empty list.
// Only a missing API key is reported.
func (f *PlacesFinder) Autocomplete(ctx context.Context, input string) ([]models.Prediction, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []models.Prediction{}, nil
	}

	query := NormalizeQuery(input)
	if f.predictions != nil {
		if cached, ok := f.predictions.Get(query); ok {
			log.Debug().Str("query", query).Msg("Autocomplete cache HIT")
			return cached, nil
		}
	}

	raw, err := f.api.Autocomplete(ctx, query)
	if err != nil {
		if errors.Is(err, places.ErrMissingAPIKey) {
			return nil, err
		}
		log.Warn().Err(err).Str("query", query).Msg("Autocomplete failed, returning no predictions")
		return []models.Prediction{}, nil
	}

	predictions := make([]models.Prediction, len(raw))
	for i, p := range raw {
		predictions[i] = models.Prediction{
			Description: p.Description,
			PlaceID:     p.PlaceID,
			Types:       p.Types,
		}
		if p.StructuredFormatting != nil {
			predictions[i].StructuredFormatting = &models.StructuredFormatting{
				MainText:      p.StructuredFormatting.MainText,
				SecondaryText: p.StructuredFormatting.SecondaryText,
			}
		}
	}

	filtered := FilterPredictions(predictions)
	if f.predictions != nil {
		f.predictions.Add(query, filtered)
	}
	return filtered, nil
}

// Resolve turns a user-entered station into coordinates. A place id is tried
// first through Place Details; the name is geocoded otherwise or on failure.
func (f *PlacesFinder) Resolve(ctx context.Context, name, placeID string) (*models.Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if placeID != "" {
		station, err := f.resolveByPlaceID(ctx, name, placeID)
		if err == nil {
			return station, nil
		}
		if errors.Is(err, places.ErrMissingAPIKey) {
			return nil, err
		}
		log.Debug().Err(err).Str("place_id", placeID).Msg("Place details failed, falling back to geocoding")
	}

	results, err := f.api.Geocode(ctx, NormalizeQuery(name))
	if err != nil {
		if places.IsStatusError(err) {
			return nil, &NotFoundError{Name: name, Err: err}
		}
		return nil, fmt.Errorf("geocoding %s: %w", name, err)
	}
	if len(results) == 0 {
		return nil, &NotFoundError{Name: name}
	}

	first := results[0]
	return &models.Station{
		Name:      name,
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
		PlaceID:   first.PlaceID,
		Address:   first.FormattedAddress,
	}, nil
}

func (f *PlacesFinder) resolveByPlaceID(ctx context.Context, name, placeID string) (*models.Station, error) {
	station, err := f.placeDetails(ctx, placeID)
	if err != nil {
		return nil, err
	}
	// the cache holds what upstream returned; the caller's name only fills a gap
	if station.Name == "" {
		station.Name = name
	}
	return &station, nil
}

func (f *PlacesFinder) placeDetails(ctx context.Context, placeID string) (models.Station, error) {
	if f.places != nil {
		if cached, ok := f.places.GetPlace(ctx, placeID); ok {
			return *cached, nil
		}
	}

	details, err := f.api.Details(ctx, placeID, detailsFields...)
	if err != nil {
		return models.Station{}, err
	}

	station := models.Station{
		Name:      details.Name,
		Latitude:  details.Geometry.Location.Lat,
		Longitude: details.Geometry.Location.Lng,
		PlaceID:   placeID,
		Address:   details.FormattedAddress,
	}
	if f.places != nil {
		f.places.SavePlace(ctx, station)
	}
	return station, nil
}

// FindCenterStations returns the centroid of the inputs and the closest stations to it
func (f *PlacesFinder) FindCenterStations(ctx context.Context, stations []models.Station) (*models.CenterSearchResult, error) {
	if len(stations) < 2 {
		return nil, ErrInsufficientStations
	}

	points := make([]geo.Point, len(stations))
	for i, s := range stations {
		if !geo.ValidCoordinates(s.Latitude, s.Longitude) {
			return nil, fmt.Errorf("%w: %s (%f, %f)", ErrInvalidCoordinates, s.Name, s.Latitude, s.Longitude)
		}
		points[i] = geo.Point{Latitude: s.Latitude, Longitude: s.Longitude}
	}

	center, err := geo.Centroid(points)
	if err != nil {
		return nil, fmt.Errorf("computing centroid: %w", err)
	}

	log.Debug().Float64("lat", center.Latitude).Float64("lon", center.Longitude).Msg("Center point")

	candidates, err := f.centerCandidates(ctx, center)
	if err != nil {
		return nil, err
	}

	ranked := rankByDistance(center, candidates)
	if len(ranked) > MaxCenterStations {
		ranked = ranked[:MaxCenterStations]
	}

	return &models.CenterSearchResult{
		CenterPoint: models.CenterPoint{Latitude: center.Latitude, Longitude: center.Longitude},
		Stations:    ranked,
	}, nil
}

func (f *PlacesFinder) centerCandidates(ctx context.Context, center geo.Point) ([]models.NearbyStation, error) {
	key := fmt.Sprintf("%.6f,%.6f", center.Latitude, center.Longitude)

	if f.searches != nil {
		cached, err := f.searches.GetCandidates(ctx, key)
		if err != nil {
			log.Error().Err(err).Msg("Error getting candidates from search cache")
		} else if cached != nil {
			log.Debug().Str("key", key).Msg("Search cache HIT")
			return cached, nil
		}
	}

	seen := make(map[string]struct{})
	candidates := make([]models.NearbyStation, 0)
	for _, placeType := range centerSearchTypes {
		results, err := f.api.NearbySearch(ctx, places.NearbyRequest{
			Latitude:  center.Latitude,
			Longitude: center.Longitude,
			RadiusM:   CenterSearchRadiusM,
			Type:      placeType,
		})
		if err != nil {
			if errors.Is(err, places.ErrMissingAPIKey) {
				return nil, err
			}
			log.Warn().Err(err).Str("type", placeType).Msg("Nearby station search failed, skipping")
			continue
		}

		for _, p := range results {
			if _, dup := seen[p.PlaceID]; dup {
				continue
			}
			seen[p.PlaceID] = struct{}{}
			candidates = append(candidates, models.NearbyStation{
				Name:      p.Name,
				Address:   p.Vicinity,
				Latitude:  p.Geometry.Location.Lat,
				Longitude: p.Geometry.Location.Lng,
				PlaceID:   p.PlaceID,
			})
		}
	}

	log.Debug().Int("count", len(candidates)).Msg("Found candidate stations")

	if f.searches != nil && len(candidates) > 0 {
		if err := f.searches.SaveCandidates(ctx, key, candidates); err != nil {
			log.Error().Err(err).Msg("Failed to save candidates to search cache")
		}
	}
	return candidates, nil
}

// rankByDistance fills in rounded distances and stably sorts ascending
func rankByDistance(center geo.Point, candidates []models.NearbyStation) []models.NearbyStation {
	ranked := make([]models.NearbyStation, len(candidates))
	for i, c := range candidates {
		c.DistanceKm = geo.RoundKm(geo.Distance(center.Latitude, center.Longitude, c.Latitude, c.Longitude))
		ranked[i] = c
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked
}
