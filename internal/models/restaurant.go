package models

type Restaurant struct {
	Name             string   `json:"name"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"userRatingsTotal,omitempty"`
	PriceLevel       *int     `json:"priceLevel,omitempty"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	PlaceID          string   `json:"placeId"`
	PhotoURL         string   `json:"photoUrl,omitempty"`
}

// RestaurantQuery describes a restaurant search around a point. Nil filters use defaults.
type RestaurantQuery struct {
	Latitude      *float64 `json:"latitude" validate:"required,latitude"`
	Longitude     *float64 `json:"longitude" validate:"required,longitude"`
	Category      string   `json:"type,omitempty"`
	MinRating     *float64 `json:"minRating,omitempty"`
	MinReviews    *int     `json:"minReviews,omitempty"`
	MaxPriceLevel *int     `json:"maxPriceLevel,omitempty"`
}
