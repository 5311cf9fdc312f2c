package cache

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCandidates() []models.NearbyStation {
	return []models.NearbyStation{
		{Name: "代々木駅", PlaceID: "p1", Latitude: 35.6830, Longitude: 139.7020},
		{Name: "新宿駅", PlaceID: "p2", Latitude: 35.6909, Longitude: 139.7003},
	}
}

func TestGetCandidates(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	recordBody := func(ttl time.Time) []byte {
		b, _ := json.Marshal(SearchCacheRecord{
			Candidates:  createTestCandidates(),
			LastUpdated: now.Unix(),
			TTL:         ttl.Unix(),
		})
		return b
	}

	tests := []struct {
		name    string
		getFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
		want    []models.NearbyStation
		wantErr bool
	}{
		{
			name: "valid cache",
			getFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "center-search/35.690000,139.700000.json", *params.Key)
				return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(recordBody(now.Add(time.Hour))))}, nil
			},
			want: createTestCandidates(),
		},
		{
			name: "expired cache",
			getFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(recordBody(now.Add(-time.Hour))))}, nil
			},
			want: nil,
		},
		{
			name: "missing object",
			getFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return nil, &types.NoSuchKey{}
			},
			want: nil,
		},
		{
			name: "s3 failure",
			getFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return nil, errors.New("access denied")
			},
			wantErr: true,
		},
		{
			name: "corrupt object",
			getFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("{not json")))}, nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewS3SearchCache(&mockS3Client{getObjectFunc: tt.getFunc}, "test-bucket", 24*time.Hour)
			c.clock = &fakeClock{now: now}

			got, err := c.GetCandidates(context.Background(), "35.690000,139.700000")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveCandidates(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var saved SearchCacheRecord
	mock := &mockS3Client{
		putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "test-bucket", *params.Bucket)
			assert.Equal(t, "center-search/k.json", *params.Key)
			body, err := io.ReadAll(params.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &saved))
			return &s3.PutObjectOutput{}, nil
		},
	}

	c := NewS3SearchCache(mock, "test-bucket", time.Hour)
	c.clock = &fakeClock{now: now}

	require.NoError(t, c.SaveCandidates(context.Background(), "k", createTestCandidates()))
	assert.Equal(t, createTestCandidates(), saved.Candidates)
	assert.Equal(t, now.Add(time.Hour).Unix(), saved.TTL)
}

func TestEmptyBucketName(t *testing.T) {
	c := NewS3SearchCache(&mockS3Client{}, "", time.Hour)

	_, err := c.GetCandidates(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, c.SaveCandidates(context.Background(), "k", nil))
}
