package handler

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/rs/zerolog/log"
)

// Autocomplete always answers with a prediction list; failures give an empty one
func (h *Handler) Autocomplete(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	input := request.QueryStringParameters["input"]
	if strings.TrimSpace(input) == "" {
		return api.Success(api.NewPredictionsResponse(nil))
	}

	if !h.apiKeyConfigured {
		return h.missingKey()
	}

	predictions, err := h.stations.Autocomplete(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("input", input).Msg("Autocomplete error")
		return api.Success(api.NewPredictionsResponse([]models.Prediction{}))
	}

	return api.Success(api.NewPredictionsResponse(predictions))
}
