package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bbernstein/meetpoint/backend-go/internal/config"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// PlaceStore is the persistent layer behind the in-memory place cache
type PlaceStore interface {
	GetPlace(ctx context.Context, placeID string) (*models.PlaceRecord, error)
	SavePlace(ctx context.Context, record models.PlaceRecord) error
}

// PlaceCacheService provides a two-layer place cache: an LRU in front of an
// optional persistent store. Store failures are logged and treated as misses.
type PlaceCacheService struct {
	lru   *TTLCache[models.Station]
	store PlaceStore

	lruHits    atomic.Uint64
	lruMisses  atomic.Uint64
	storeHits  atomic.Uint64
	storeMiss  atomic.Uint64
	storeError atomic.Uint64
}

// NewPlaceCacheService builds the cache from configuration. store may be nil.
func NewPlaceCacheService(cfg *config.CacheConfig, store PlaceStore) (*PlaceCacheService, error) {
	l, err := NewTTLCache[models.Station]("place", cfg.PlaceLRUSize, cfg.GetPlaceLRUTTL())
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &PlaceCacheService{
		lru:   l,
		store: store,
	}, nil
}

func (c *PlaceCacheService) GetPlace(ctx context.Context, placeID string) (*models.Station, bool) {
	if placeID == "" {
		return nil, false
	}

	if station, ok := c.lru.Get(placeID); ok {
		c.lruHits.Add(1)
		return &station, true
	}
	c.lruMisses.Add(1)

	if c.store == nil {
		return nil, false
	}

	record, err := c.store.GetPlace(ctx, placeID)
	if err != nil {
		c.storeError.Add(1)
		log.Warn().Err(err).Str("place_id", placeID).Msg("Place store lookup failed")
		return nil, false
	}
	if record == nil {
		c.storeMiss.Add(1)
		return nil, false
	}

	c.storeHits.Add(1)
	station := record.Station()
	c.lru.Add(placeID, station)
	return &station, true
}

func (c *PlaceCacheService) SavePlace(ctx context.Context, station models.Station) {
	if station.PlaceID == "" {
		return
	}

	c.lru.Add(station.PlaceID, station)

	if c.store == nil {
		return
	}
	if err := c.store.SavePlace(ctx, models.NewPlaceRecord(station)); err != nil {
		c.storeError.Add(1)
		log.Warn().Err(err).Str("place_id", station.PlaceID).Msg("Saving place to store failed")
	}
}

// GetCacheStats returns statistics about cache hits and misses
func (c *PlaceCacheService) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":     c.lruHits.Load(),
		"lru_misses":   c.lruMisses.Load(),
		"store_hits":   c.storeHits.Load(),
		"store_misses": c.storeMiss.Load(),
		"store_errors": c.storeError.Load(),
	}
}

// Clear removes all entries from the LRU layer
func (c *PlaceCacheService) Clear() {
	c.lru.Clear()
}
