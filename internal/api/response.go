package api

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type PredictionsResponse struct {
	APIResponse
	Predictions []models.Prediction `json:"predictions"`
}

type StationResponse struct {
	APIResponse
	Station models.Station `json:"station"`
}

type CenterStationsResponse struct {
	APIResponse
	CenterPoint models.CenterPoint     `json:"centerPoint"`
	Stations    []models.NearbyStation `json:"stations"`
}

type RestaurantsResponse struct {
	APIResponse
	Restaurants []models.Restaurant `json:"restaurants"`
}

type MeetingPlanResponse struct {
	APIResponse
	models.MeetingPlan
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewPredictionsResponse(predictions []models.Prediction) *PredictionsResponse {
	if predictions == nil {
		predictions = []models.Prediction{}
	}
	return &PredictionsResponse{
		APIResponse: APIResponse{ResponseType: "predictions"},
		Predictions: predictions,
	}
}

func NewStationResponse(station models.Station) *StationResponse {
	return &StationResponse{
		APIResponse: APIResponse{ResponseType: "station"},
		Station:     station,
	}
}

func NewCenterStationsResponse(result models.CenterSearchResult) *CenterStationsResponse {
	stations := result.Stations
	if stations == nil {
		stations = []models.NearbyStation{}
	}
	return &CenterStationsResponse{
		APIResponse: APIResponse{ResponseType: "centerStations"},
		CenterPoint: result.CenterPoint,
		Stations:    stations,
	}
}

func NewRestaurantsResponse(restaurants []models.Restaurant) *RestaurantsResponse {
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return &RestaurantsResponse{
		APIResponse: APIResponse{ResponseType: "restaurants"},
		Restaurants: restaurants,
	}
}

func NewMeetingPlanResponse(plan models.MeetingPlan) *MeetingPlanResponse {
	return &MeetingPlanResponse{
		APIResponse: APIResponse{ResponseType: "meetingPlan"},
		MeetingPlan: plan,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

func headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json; charset=utf-8",
		"Access-Control-Allow-Origin": "*",
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
		return Error(MsgInternalError, http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers(),
		Body:       string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(body),
	}, nil
}
