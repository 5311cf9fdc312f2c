// Package places is a thin client for the Google Maps Places, Geocoding and
// Photo web services.
package places

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bbernstein/meetpoint/backend-go/internal/metrics"
	"github.com/bbernstein/meetpoint/backend-go/pkg/http/client"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	autocompletePath = "/maps/api/place/autocomplete/json"
	detailsPath      = "/maps/api/place/details/json"
	geocodePath      = "/maps/api/geocode/json"
	nearbyPath       = "/maps/api/place/nearbysearch/json"
	photoPath        = "/maps/api/place/photo"

	DefaultBaseURL = "https://maps.googleapis.com"
)

type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Region   string
}

type Client struct {
	http     client.Interface
	apiKey   string
	baseURL  string
	language string
	region   string
}

func NewClient(httpClient client.Interface, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = "ja"
	}
	if opts.Region == "" {
		opts.Region = "jp"
	}
	return &Client{
		http:     httpClient,
		apiKey:   opts.APIKey,
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		language: opts.Language,
		region:   opts.Region,
	}
}

// Autocomplete returns predictions for input restricted to the configured country.
// ZERO_RESULTS is an empty list, not an error.
func (c *Client) Autocomplete(ctx context.Context, input string) ([]AutocompletePrediction, error) {
	query := url.Values{}
	query.Set("input", input)
	query.Set("components", "country:"+c.region)

	var resp autocompleteResponse
	if err := c.call(ctx, "autocomplete", autocompletePath, query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("autocomplete", resp.statusEnvelope, true); err != nil {
		return nil, err
	}
	return resp.Predictions, nil
}

// Details fetches the requested fields of a place. Anything but OK is an error.
func (c *Client) Details(ctx context.Context, placeID string, fields ...string) (*PlaceDetails, error) {
	query := url.Values{}
	query.Set("place_id", placeID)
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	var resp detailsResponse
	if err := c.call(ctx, "details", detailsPath, query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("details", resp.statusEnvelope, false); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

func (c *Client) Geocode(ctx context.Context, address string) ([]GeocodeResult, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("region", c.region)

	var resp geocodeResponse
	if err := c.call(ctx, "geocode", geocodePath, query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("geocode", resp.statusEnvelope, true); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) NearbySearch(ctx context.Context, req NearbyRequest) ([]NearbyPlace, error) {
	query := url.Values{}
	query.Set("location", formatLocation(req.Latitude, req.Longitude))
	query.Set("radius", strconv.Itoa(req.RadiusM))
	if req.Type != "" {
		query.Set("type", req.Type)
	}

	var resp nearbyResponse
	if err := c.call(ctx, "nearbysearch", nearbyPath, query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus("nearbysearch", resp.statusEnvelope, true); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// PhotoURL builds a Place Photo URL. The key is embedded, so the URL must only
// be handed to clients that are allowed to see it.
func (c *Client) PhotoURL(photoReference string, maxWidth int) string {
	query := url.Values{}
	query.Set("maxwidth", strconv.Itoa(maxWidth))
	query.Set("photo_reference", photoReference)
	query.Set("key", c.apiKey)
	return c.baseURL + photoPath + "?" + query.Encode()
}

func (c *Client) call(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	query.Set("language", c.language)
	query.Set("key", c.apiKey)

	resp, err := c.http.Get(ctx, c.baseURL+path, query)
	if err != nil {
		metrics.UpstreamStatus.WithLabelValues(endpoint, "transport_error").Inc()
		return newAPIError(endpoint, "", "request failed", err)
	}
	if resp == nil {
		return newAPIError(endpoint, "", "empty response", nil)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamStatus.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		apiErr := newAPIError(endpoint, "", "unexpected HTTP status", nil)
		apiErr.HTTPStatus = resp.StatusCode
		return apiErr
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return newAPIError(endpoint, "", "decoding response", err)
	}
	return nil
}

func checkStatus(endpoint string, env statusEnvelope, allowZero bool) error {
	metrics.UpstreamStatus.WithLabelValues(endpoint, env.Status).Inc()

	switch {
	case env.Status == StatusOK:
		return nil
	case allowZero && env.Status == StatusZeroResults:
		return nil
	default:
		log.Debug().
			Str("endpoint", endpoint).
			Str("status", env.Status).
			Str("error_message", env.ErrorMessage).
			Msg("Maps API returned non-OK status")
		return newAPIError(endpoint, env.Status, env.ErrorMessage, nil)
	}
}

func formatLocation(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
