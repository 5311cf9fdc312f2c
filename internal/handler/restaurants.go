package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/restaurant"
	"github.com/bbernstein/meetpoint/backend-go/internal/validation"
)

func (h *Handler) NearbyRestaurants(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var query models.RestaurantQuery
	if err := api.DecodeBody(request, &query); err != nil {
		return api.Error(api.MsgMalformedRequest, http.StatusBadRequest)
	}
	if query.Latitude == nil || query.Longitude == nil {
		return api.Error(api.MsgCoordinatesRequired, http.StatusBadRequest)
	}
	// only the coordinates carry rules; filters outside the usual ranges just match nothing
	if err := validation.Struct(&query); err != nil {
		return api.Error(api.MsgInvalidCoordinates, http.StatusBadRequest)
	}

	if !h.apiKeyConfigured {
		return h.missingKey()
	}

	restaurants, err := h.restaurants.Search(ctx, query)
	if err != nil {
		if errors.Is(err, restaurant.ErrMissingCoordinates) {
			return api.Error(api.MsgCoordinatesRequired, http.StatusBadRequest)
		}
		return h.upstreamFailure(err, api.MsgRestaurantSearchFailed)
	}

	return api.Success(api.NewRestaurantsResponse(restaurants))
}
