package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const searchKeyPrefix = "center-search/"

// S3SearchCache stores the de-duplicated candidate stations found around a centre point
type S3SearchCache struct {
	client     S3Client
	bucketName string
	ttl        time.Duration
	clock      clock
}

// SearchCacheRecord represents the cached candidates with metadata
type SearchCacheRecord struct {
	Candidates  []models.NearbyStation `json:"candidates"`
	LastUpdated int64                  `json:"lastUpdated"`
	TTL         int64                  `json:"ttl"`
}

func NewS3SearchCache(client S3Client, bucketName string, ttl time.Duration) *S3SearchCache {
	return &S3SearchCache{
		client:     client,
		bucketName: bucketName,
		ttl:        ttl,
		clock:      systemClock{},
	}
}

// GetCandidates returns nil without error on a miss or an expired record
func (c *S3SearchCache) GetCandidates(ctx context.Context, key string) ([]models.NearbyStation, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(searchKeyPrefix + key + ".json"),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting search cache object: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var record SearchCacheRecord
	if err := json.NewDecoder(result.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding cache record: %w", err)
	}

	if c.clock.Now().Unix() > record.TTL {
		log.Debug().Str("key", key).Msg("Search cache expired")
		return nil, nil
	}

	return record.Candidates, nil
}

func (c *S3SearchCache) SaveCandidates(ctx context.Context, key string, candidates []models.NearbyStation) error {
	if c.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	now := c.clock.Now().Unix()
	record := SearchCacheRecord{
		Candidates:  candidates,
		LastUpdated: now,
		TTL:         now + int64(c.ttl.Seconds()),
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	if _, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(searchKeyPrefix + key + ".json"),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("saving to S3: %w", err)
	}

	log.Debug().Str("key", key).Int("candidate_count", len(candidates)).Msg("Saved search candidates to S3 cache")
	return nil
}
