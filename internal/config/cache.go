package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// LRU cache settings
	PlaceLRUSize              int
	PlaceLRUTTLMinutes        int
	AutocompleteLRUSize       int
	AutocompleteLRUTTLMinutes int

	// DynamoDB place cache settings
	PlaceCacheTable    string
	PlaceDynamoTTLDays int

	// S3 nearby-search cache settings
	SearchCacheBucket string
	SearchCacheTTL    time.Duration

	// General settings
	EnableLRUCache    bool
	EnableDynamoCache bool
	EnableS3Cache     bool
}

const (
	defaultPlaceLRUSize              = 1000
	defaultPlaceLRUTTLMinutes        = 60
	defaultAutocompleteLRUSize       = 5000
	defaultAutocompleteLRUTTLMinutes = 15
	defaultPlaceDynamoTTLDays        = 30
	defaultSearchCacheTTL            = 24 * time.Hour
	defaultPlaceCacheTable           = "meetpoint-place-cache"
)

// GetCacheConfig returns the cache configuration from environment variables or defaults.
// DynamoDB and S3 layers stay off unless their table or bucket is configured.
func GetCacheConfig() *CacheConfig {
	bucket := os.Getenv("SEARCH_CACHE_BUCKET")

	config := &CacheConfig{
		PlaceLRUSize:              getEnvInt("CACHE_PLACE_LRU_SIZE", defaultPlaceLRUSize),
		PlaceLRUTTLMinutes:        getEnvInt("CACHE_PLACE_LRU_TTL_MINUTES", defaultPlaceLRUTTLMinutes),
		AutocompleteLRUSize:       getEnvInt("CACHE_AUTOCOMPLETE_LRU_SIZE", defaultAutocompleteLRUSize),
		AutocompleteLRUTTLMinutes: getEnvInt("CACHE_AUTOCOMPLETE_LRU_TTL_MINUTES", defaultAutocompleteLRUTTLMinutes),
		PlaceCacheTable:           getEnvOrDefault("PLACE_CACHE_TABLE", defaultPlaceCacheTable),
		PlaceDynamoTTLDays:        getEnvInt("CACHE_DYNAMO_TTL_DAYS", defaultPlaceDynamoTTLDays),
		SearchCacheBucket:         bucket,
		SearchCacheTTL:            getDurationEnvOrDefault("CACHE_SEARCH_TTL", defaultSearchCacheTTL),
		EnableLRUCache:            getEnvBool("CACHE_ENABLE_LRU", true),
		EnableDynamoCache:         getEnvBool("CACHE_ENABLE_DYNAMO", false),
		EnableS3Cache:             getEnvBool("CACHE_ENABLE_S3", bucket != ""),
	}

	log.Debug().
		Int("PlaceLRUSize", config.PlaceLRUSize).
		Int("PlaceLRUTTLMinutes", config.PlaceLRUTTLMinutes).
		Int("AutocompleteLRUSize", config.AutocompleteLRUSize).
		Int("AutocompleteLRUTTLMinutes", config.AutocompleteLRUTTLMinutes).
		Str("PlaceCacheTable", config.PlaceCacheTable).
		Int("PlaceDynamoTTLDays", config.PlaceDynamoTTLDays).
		Str("SearchCacheBucket", config.SearchCacheBucket).
		Dur("SearchCacheTTL", config.SearchCacheTTL).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Bool("EnableS3Cache", config.EnableS3Cache).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetPlaceLRUTTL() time.Duration {
	return time.Duration(c.PlaceLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetAutocompleteLRUTTL() time.Duration {
	return time.Duration(c.AutocompleteLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetDynamoTTL() time.Duration {
	return time.Duration(c.PlaceDynamoTTLDays) * 24 * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
