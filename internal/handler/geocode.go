package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/station"
	"github.com/bbernstein/meetpoint/backend-go/internal/validation"
	"github.com/goccy/go-json"
)

// geocodeBody defers decoding stationName so a value of the wrong type reads
// as a missing name rather than a malformed body
type geocodeBody struct {
	StationName json.RawMessage `json:"stationName"`
	PlaceID     string          `json:"placeId"`
}

type geocodeRequest struct {
	StationName string `json:"stationName" validate:"required"`
	PlaceID     string `json:"placeId"`
}

func (h *Handler) Geocode(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var body geocodeBody
	if err := api.DecodeBody(request, &body); err != nil {
		return api.Error(api.MsgMalformedRequest, http.StatusBadRequest)
	}

	req := geocodeRequest{PlaceID: body.PlaceID}
	if len(body.StationName) > 0 {
		if err := json.Unmarshal(body.StationName, &req.StationName); err != nil {
			return api.Error(api.MsgStationNameRequired, http.StatusBadRequest)
		}
	}
	if err := validation.Struct(&req); err != nil {
		return api.Error(api.MsgStationNameRequired, http.StatusBadRequest)
	}

	if !h.apiKeyConfigured {
		return h.missingKey()
	}

	resolved, err := h.stations.Resolve(ctx, req.StationName, req.PlaceID)
	if err != nil {
		var notFound *station.NotFoundError
		switch {
		case errors.Is(err, station.ErrEmptyName):
			return api.Error(api.MsgStationNameRequired, http.StatusBadRequest)
		case errors.As(err, &notFound):
			return api.Error(api.StationNotFound(notFound.Name), http.StatusNotFound)
		default:
			return h.upstreamFailure(err, api.MsgGeocodeFailed)
		}
	}

	return api.Success(api.NewStationResponse(*resolved))
}
