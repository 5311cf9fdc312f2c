package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/goccy/go-json"
)

// mockStationFinder implements models.StationFinder interface for testing
type mockStationFinder struct {
	autocompleteFn func(ctx context.Context, input string) ([]models.Prediction, error)
	resolveFn      func(ctx context.Context, name, placeID string) (*models.Station, error)
	centerFn       func(ctx context.Context, stations []models.Station) (*models.CenterSearchResult, error)
}

func (m *mockStationFinder) Autocomplete(ctx context.Context, input string) ([]models.Prediction, error) {
	if m.autocompleteFn != nil {
		return m.autocompleteFn(ctx, input)
	}
	return nil, nil
}

func (m *mockStationFinder) Resolve(ctx context.Context, name, placeID string) (*models.Station, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, name, placeID)
	}
	return nil, nil
}

func (m *mockStationFinder) FindCenterStations(ctx context.Context, stations []models.Station) (*models.CenterSearchResult, error) {
	if m.centerFn != nil {
		return m.centerFn(ctx, stations)
	}
	return &models.CenterSearchResult{}, nil
}

type mockRestaurantFinder struct {
	searchFn func(ctx context.Context, q models.RestaurantQuery) ([]models.Restaurant, error)
}

func (m *mockRestaurantFinder) Search(ctx context.Context, q models.RestaurantQuery) ([]models.Restaurant, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, nil
}

type mockPlanner struct {
	normalizeFn func(participants []models.Participant) ([]models.Participant, error)
	planFn      func(ctx context.Context, participants []models.Participant) (*models.MeetingPlan, error)
}

func (m *mockPlanner) Normalize(participants []models.Participant) ([]models.Participant, error) {
	if m.normalizeFn != nil {
		return m.normalizeFn(participants)
	}
	return participants, nil
}

func (m *mockPlanner) Plan(ctx context.Context, participants []models.Participant) (*models.MeetingPlan, error) {
	if m.planFn != nil {
		return m.planFn(ctx, participants)
	}
	return &models.MeetingPlan{}, nil
}

func newTestHandler(stations *mockStationFinder, restaurants *mockRestaurantFinder, planner *mockPlanner) *Handler {
	if stations == nil {
		stations = &mockStationFinder{}
	}
	if restaurants == nil {
		restaurants = &mockRestaurantFinder{}
	}
	if planner == nil {
		planner = &mockPlanner{}
	}
	return New(Deps{
		Stations:         stations,
		Restaurants:      restaurants,
		Planner:          planner,
		APIKeyConfigured: true,
	})
}

func post(path, body string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{HTTPMethod: "POST", Path: path, Body: body}
}

func errorMessage(resp events.APIGatewayProxyResponse) string {
	var body api.ErrorResponse
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		return ""
	}
	return body.Error
}
