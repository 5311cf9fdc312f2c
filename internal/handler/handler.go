// Package handler implements the API Gateway handlers for every endpoint.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/metrics"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/places"
	"github.com/rs/zerolog/log"
)

// MeetingPlanner is the group flow behind /api/meeting-point
type MeetingPlanner interface {
	Normalize(participants []models.Participant) ([]models.Participant, error)
	Plan(ctx context.Context, participants []models.Participant) (*models.MeetingPlan, error)
}

type Deps struct {
	Stations    models.StationFinder
	Restaurants models.RestaurantFinder
	Planner     MeetingPlanner
	// APIKeyConfigured is checked after input validation, before any upstream work
	APIKeyConfigured bool
}

type Handler struct {
	stations         models.StationFinder
	restaurants      models.RestaurantFinder
	planner          MeetingPlanner
	apiKeyConfigured bool
}

func New(deps Deps) *Handler {
	return &Handler{
		stations:         deps.Stations,
		restaurants:      deps.Restaurants,
		planner:          deps.Planner,
		apiKeyConfigured: deps.APIKeyConfigured,
	}
}

type route struct {
	method string
	path   string
	fn     func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

func (h *Handler) routes() []route {
	return []route{
		{method: http.MethodGet, path: "/api/autocomplete", fn: h.Autocomplete},
		{method: http.MethodPost, path: "/api/geocode", fn: h.Geocode},
		{method: http.MethodPost, path: "/api/find-center-stations", fn: h.FindCenterStations},
		{method: http.MethodPost, path: "/api/nearby-restaurants", fn: h.NearbyRestaurants},
		{method: http.MethodPost, path: "/api/meeting-point", fn: h.MeetingPoint},
	}
}

// HandleRequest dispatches on method and path so a single function can serve every endpoint
func (h *Handler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := strings.TrimSuffix(request.Path, "/")

	var allowed []string
	for _, r := range h.routes() {
		if r.path != path {
			continue
		}
		if r.method == request.HTTPMethod {
			resp, err := r.fn(ctx, request)
			metrics.HandlerRequests.WithLabelValues(r.path, strconv.Itoa(resp.StatusCode)).Inc()
			return resp, err
		}
		allowed = append(allowed, r.method)
	}

	if len(allowed) == 0 {
		return api.Error(api.MsgNotFound, http.StatusNotFound)
	}
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusNoContent,
			Headers: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": strings.Join(append(allowed, http.MethodOptions), ", "),
				"Access-Control-Allow-Headers": "Content-Type",
			},
		}, nil
	}

	resp, err := api.Error(api.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	resp.Headers["Allow"] = strings.Join(allowed, ", ")
	return resp, err
}

func (h *Handler) missingKey() (events.APIGatewayProxyResponse, error) {
	log.Error().Msg("Maps API key is not configured")
	return api.Error(api.MsgMissingAPIKey, http.StatusInternalServerError)
}

// upstreamFailure logs err and answers with the endpoint's generic message,
// unless the error is a missing key
func (h *Handler) upstreamFailure(err error, message string) (events.APIGatewayProxyResponse, error) {
	if errors.Is(err, places.ErrMissingAPIKey) {
		return h.missingKey()
	}
	log.Error().Err(err).Msg(message)
	return api.Error(message, http.StatusInternalServerError)
}
