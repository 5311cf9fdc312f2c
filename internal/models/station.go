package models

// Station is a resolved station with coordinates
type Station struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	PlaceID   string  `json:"placeId,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// Participant is one person's input: the station they entered and, when picked
// from suggestions, its place identifier
type Participant struct {
	ID             string `json:"id"`
	StationName    string `json:"stationName"`
	StationPlaceID string `json:"stationPlaceId,omitempty"`
}

// NearbyStation is a candidate meeting station ranked by distance from the centre
type NearbyStation struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PlaceID    string  `json:"placeId"`
	DistanceKm float64 `json:"distanceKm"`
}

type CenterPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CenterSearchResult is the centroid of the inputs and the stations closest to it
type CenterSearchResult struct {
	CenterPoint CenterPoint     `json:"centerPoint"`
	Stations    []NearbyStation `json:"stations"`
}

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

// Prediction is an autocomplete suggestion. Field names follow the upstream wire format.
type Prediction struct {
	Description          string                `json:"description"`
	PlaceID              string                `json:"place_id"`
	StructuredFormatting *StructuredFormatting `json:"structured_formatting,omitempty"`
	Types                []string              `json:"-"`
}
