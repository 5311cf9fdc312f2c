// Package app wires configuration into the handler graph shared by the
// Lambda and local server binaries.
package app

import (
	"context"
	"fmt"

	"github.com/bbernstein/meetpoint/backend-go/internal/cache"
	"github.com/bbernstein/meetpoint/backend-go/internal/config"
	"github.com/bbernstein/meetpoint/backend-go/internal/handler"
	"github.com/bbernstein/meetpoint/backend-go/internal/meeting"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/places"
	"github.com/bbernstein/meetpoint/backend-go/internal/restaurant"
	"github.com/bbernstein/meetpoint/backend-go/internal/station"
	"github.com/bbernstein/meetpoint/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

// Factories let tests swap the AWS clients for fakes
var (
	newDynamoClient = cache.NewDynamoClient
	newS3Client     = cache.NewS3Client
)

// NewHandler builds the full dependency graph for cfg
func NewHandler(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig) (*handler.Handler, error) {
	httpClient := client.New(client.Options{
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.MapsRequestsPerSecond,
	})

	mapsClient := places.NewClient(httpClient, places.Options{
		APIKey:   cfg.MapsAPIKey,
		BaseURL:  cfg.MapsBaseURL,
		Language: cfg.MapsLanguage,
		Region:   cfg.MapsRegion,
	})

	opts, err := finderOptions(ctx, cacheCfg)
	if err != nil {
		return nil, err
	}
	stationFinder := station.NewPlacesFinder(mapsClient, opts...)

	if !cfg.HasMapsAPIKey() {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is not set; API calls will fail")
	}

	return handler.New(handler.Deps{
		Stations:         stationFinder,
		Restaurants:      restaurant.NewSearcher(mapsClient),
		Planner:          meeting.NewPlanner(stationFinder),
		APIKeyConfigured: cfg.HasMapsAPIKey(),
	}), nil
}

func finderOptions(ctx context.Context, cacheCfg *config.CacheConfig) ([]station.Option, error) {
	var opts []station.Option

	if cacheCfg.EnableLRUCache {
		predictions, err := cache.NewTTLCache[[]models.Prediction]("autocomplete", cacheCfg.AutocompleteLRUSize, cacheCfg.GetAutocompleteLRUTTL())
		if err != nil {
			return nil, fmt.Errorf("initializing autocomplete cache: %w", err)
		}
		opts = append(opts, station.WithPredictionCache(predictions))
	}

	if cacheCfg.EnableLRUCache || cacheCfg.EnableDynamoCache {
		var store cache.PlaceStore
		if cacheCfg.EnableDynamoCache {
			dynamo, err := newDynamoClient(ctx)
			if err != nil {
				return nil, fmt.Errorf("initializing DynamoDB client: %w", err)
			}
			store = cache.NewDynamoPlaceCache(dynamo, cacheCfg.PlaceCacheTable, cacheCfg.GetDynamoTTL())
		}
		placeCache, err := cache.NewPlaceCacheService(cacheCfg, store)
		if err != nil {
			return nil, fmt.Errorf("initializing place cache: %w", err)
		}
		opts = append(opts, station.WithPlaceCache(placeCache))
	}

	if cacheCfg.EnableS3Cache {
		s3Client, err := newS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("initializing S3 client: %w", err)
		}
		opts = append(opts, station.WithSearchCache(cache.NewS3SearchCache(s3Client, cacheCfg.SearchCacheBucket, cacheCfg.SearchCacheTTL)))
	}

	log.Debug().
		Bool("lru", cacheCfg.EnableLRUCache).
		Bool("dynamo", cacheCfg.EnableDynamoCache).
		Bool("s3", cacheCfg.EnableS3Cache).
		Msg("Cache layers configured")

	return opts, nil
}
