package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCacheConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"CACHE_PLACE_LRU_SIZE",
		"CACHE_PLACE_LRU_TTL_MINUTES",
		"CACHE_AUTOCOMPLETE_LRU_SIZE",
		"CACHE_AUTOCOMPLETE_LRU_TTL_MINUTES",
		"PLACE_CACHE_TABLE",
		"CACHE_DYNAMO_TTL_DAYS",
		"SEARCH_CACHE_BUCKET",
		"CACHE_SEARCH_TTL",
		"CACHE_ENABLE_LRU",
		"CACHE_ENABLE_DYNAMO",
		"CACHE_ENABLE_S3",
	} {
		t.Setenv(k, "")
	}

	cfg := GetCacheConfig()

	// Empty strings are present but invalid for ints, so defaults apply
	assert.Equal(t, defaultPlaceLRUSize, cfg.PlaceLRUSize)
	assert.Equal(t, defaultAutocompleteLRUSize, cfg.AutocompleteLRUSize)
	assert.Equal(t, defaultPlaceCacheTable, cfg.PlaceCacheTable)
	assert.Equal(t, defaultSearchCacheTTL, cfg.SearchCacheTTL)
	assert.Equal(t, 60*time.Minute, cfg.GetPlaceLRUTTL())
	assert.Equal(t, 15*time.Minute, cfg.GetAutocompleteLRUTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.GetDynamoTTL())
	assert.False(t, cfg.EnableLRUCache)
	assert.False(t, cfg.EnableDynamoCache)
	assert.False(t, cfg.EnableS3Cache)
}

func TestGetCacheConfigFromEnv(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		verify func(t *testing.T, cfg *CacheConfig)
	}{
		{
			name: "custom sizes and ttl",
			env: map[string]string{
				"CACHE_PLACE_LRU_SIZE":        "50",
				"CACHE_PLACE_LRU_TTL_MINUTES": "5",
				"CACHE_DYNAMO_TTL_DAYS":       "7",
				"CACHE_SEARCH_TTL":            "2h",
			},
			verify: func(t *testing.T, cfg *CacheConfig) {
				assert.Equal(t, 50, cfg.PlaceLRUSize)
				assert.Equal(t, 5*time.Minute, cfg.GetPlaceLRUTTL())
				assert.Equal(t, 7*24*time.Hour, cfg.GetDynamoTTL())
				assert.Equal(t, 2*time.Hour, cfg.SearchCacheTTL)
			},
		},
		{
			name: "bucket enables s3 cache",
			env: map[string]string{
				"SEARCH_CACHE_BUCKET": "meetpoint-search",
			},
			verify: func(t *testing.T, cfg *CacheConfig) {
				assert.Equal(t, "meetpoint-search", cfg.SearchCacheBucket)
				assert.True(t, cfg.EnableS3Cache)
			},
		},
		{
			name: "boolean flags",
			env: map[string]string{
				"CACHE_ENABLE_LRU":    "no",
				"CACHE_ENABLE_DYNAMO": "1",
			},
			verify: func(t *testing.T, cfg *CacheConfig) {
				assert.False(t, cfg.EnableLRUCache)
				assert.True(t, cfg.EnableDynamoCache)
			},
		},
		{
			name: "invalid integer uses default",
			env: map[string]string{
				"CACHE_AUTOCOMPLETE_LRU_SIZE": "lots",
			},
			verify: func(t *testing.T, cfg *CacheConfig) {
				assert.Equal(t, defaultAutocompleteLRUSize, cfg.AutocompleteLRUSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.verify(t, GetCacheConfig())
		})
	}
}
