package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/station"
	"github.com/bbernstein/meetpoint/backend-go/internal/validation"
)

type centerStationsRequest struct {
	Stations []models.Station `json:"stations" validate:"dive"`
}

func (h *Handler) FindCenterStations(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req centerStationsRequest
	if err := api.DecodeBody(request, &req); err != nil {
		return api.Error(api.MsgMalformedRequest, http.StatusBadRequest)
	}
	if len(req.Stations) < 2 {
		return api.Error(api.MsgTwoStationsRequired, http.StatusBadRequest)
	}
	if err := validation.Struct(&req); err != nil {
		return api.Error(api.MsgInvalidCoordinates, http.StatusBadRequest)
	}

	if !h.apiKeyConfigured {
		return h.missingKey()
	}

	result, err := h.stations.FindCenterStations(ctx, req.Stations)
	if err != nil {
		switch {
		case errors.Is(err, station.ErrInsufficientStations):
			return api.Error(api.MsgTwoStationsRequired, http.StatusBadRequest)
		case errors.Is(err, station.ErrInvalidCoordinates):
			return api.Error(api.MsgInvalidCoordinates, http.StatusBadRequest)
		default:
			return h.upstreamFailure(err, api.MsgCenterSearchFailed)
		}
	}

	return api.Success(api.NewCenterStationsResponse(*result))
}
