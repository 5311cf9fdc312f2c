package models

import "context"

type StationFinder interface {
	Autocomplete(ctx context.Context, input string) ([]Prediction, error)
	Resolve(ctx context.Context, name, placeID string) (*Station, error)
	FindCenterStations(ctx context.Context, stations []Station) (*CenterSearchResult, error)
}

type RestaurantFinder interface {
	Search(ctx context.Context, query RestaurantQuery) ([]Restaurant, error)
}
