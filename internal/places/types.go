package places

// Status values shared by every Maps web service response
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type AutocompletePrediction struct {
	Description          string                `json:"description"`
	PlaceID              string                `json:"place_id"`
	StructuredFormatting *StructuredFormatting `json:"structured_formatting,omitempty"`
	Types                []string              `json:"types"`
}

type PlaceDetails struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
}

type GeocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
	PlaceID          string   `json:"place_id"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

// NearbyPlace is one Nearby Search result. Optional numeric fields stay nil when
// the upstream omits them.
type NearbyPlace struct {
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	PlaceID          string   `json:"place_id"`
	Geometry         Geometry `json:"geometry"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Types            []string `json:"types"`
	Photos           []Photo  `json:"photos,omitempty"`
}

type NearbyRequest struct {
	Latitude  float64
	Longitude float64
	RadiusM   int
	Type      string
}

type statusEnvelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type autocompleteResponse struct {
	statusEnvelope
	Predictions []AutocompletePrediction `json:"predictions"`
}

type detailsResponse struct {
	statusEnvelope
	Result PlaceDetails `json:"result"`
}

type geocodeResponse struct {
	statusEnvelope
	Results []GeocodeResult `json:"results"`
}

type nearbyResponse struct {
	statusEnvelope
	Results []NearbyPlace `json:"results"`
}
