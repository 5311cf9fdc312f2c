package models

import (
	"fmt"
)

// PlaceRecord represents a cached place lookup keyed by place identifier
type PlaceRecord struct {
	PlaceID     string  `dynamodbav:"placeId"`
	Name        string  `dynamodbav:"name"`
	Latitude    float64 `dynamodbav:"latitude"`
	Longitude   float64 `dynamodbav:"longitude"`
	Address     string  `dynamodbav:"address"`
	LastUpdated int64   `dynamodbav:"lastUpdated"`
	TTL         int64   `dynamodbav:"ttl"`
}

// NewPlaceRecord builds a cache record from a resolved station
func NewPlaceRecord(s Station) PlaceRecord {
	return PlaceRecord{
		PlaceID:   s.PlaceID,
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Address:   s.Address,
	}
}

// Station converts the record back into the API shape
func (r PlaceRecord) Station() Station {
	return Station{
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		PlaceID:   r.PlaceID,
		Address:   r.Address,
	}
}

// Validate checks if a PlaceRecord's fields are valid
func (r *PlaceRecord) Validate() error {
	if r.PlaceID == "" {
		return fmt.Errorf("place ID is required")
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", r.Latitude)
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("invalid longitude: %f", r.Longitude)
	}

	return nil
}
