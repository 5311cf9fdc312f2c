package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// DynamoPlaceCache stores resolved places keyed by place identifier
type DynamoPlaceCache struct {
	client DynamoDBClient
	table  string
	ttl    time.Duration
	clock  clock
}

func NewDynamoPlaceCache(client DynamoDBClient, table string, ttl time.Duration) *DynamoPlaceCache {
	return &DynamoPlaceCache{
		client: client,
		table:  table,
		ttl:    ttl,
		clock:  systemClock{},
	}
}

// GetPlace returns nil without error when the place is absent or expired.
// DynamoDB TTL deletion is lazy, so expiry is checked here too.
func (c *DynamoPlaceCache) GetPlace(ctx context.Context, placeID string) (*models.PlaceRecord, error) {
	result, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"placeId": &types.AttributeValueMemberS{Value: placeID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting place from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record models.PlaceRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling place record: %w", err)
	}

	if c.clock.Now().Unix() >= record.TTL {
		log.Debug().Str("place_id", placeID).Msg("Place cache entry expired")
		return nil, nil
	}

	return &record, nil
}

func (c *DynamoPlaceCache) SavePlace(ctx context.Context, record models.PlaceRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid place record: %w", err)
	}

	now := c.clock.Now().Unix()
	record.LastUpdated = now
	record.TTL = now + int64(c.ttl.Seconds())

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling place record: %w", err)
	}

	if _, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("putting place in DynamoDB: %w", err)
	}

	log.Debug().Str("place_id", record.PlaceID).Msg("Saved place to cache")
	return nil
}
