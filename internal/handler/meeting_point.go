package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/meetpoint/backend-go/internal/api"
	"github.com/bbernstein/meetpoint/backend-go/internal/meeting"
	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/station"
)

type meetingPointRequest struct {
	Participants []models.Participant `json:"participants"`
}

// MeetingPoint runs the whole group flow in one call
func (h *Handler) MeetingPoint(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req meetingPointRequest
	if err := api.DecodeBody(request, &req); err != nil {
		return api.Error(api.MsgMalformedRequest, http.StatusBadRequest)
	}

	participants, err := h.planner.Normalize(req.Participants)
	if err != nil {
		return meetingInputError(err)
	}

	if !h.apiKeyConfigured {
		return h.missingKey()
	}

	plan, err := h.planner.Plan(ctx, participants)
	if err != nil {
		var notFound *station.NotFoundError
		switch {
		case errors.As(err, &notFound):
			return api.Error(api.StationNotFound(notFound.Name), http.StatusNotFound)
		case errors.Is(err, station.ErrInvalidCoordinates):
			return api.Error(api.MsgInvalidCoordinates, http.StatusBadRequest)
		case errors.Is(err, meeting.ErrTooFewParticipants), errors.Is(err, meeting.ErrTooManyParticipants):
			return meetingInputError(err)
		default:
			return h.upstreamFailure(err, api.MsgMeetingPointFailed)
		}
	}

	return api.Success(api.NewMeetingPlanResponse(*plan))
}

func meetingInputError(err error) (events.APIGatewayProxyResponse, error) {
	if errors.Is(err, meeting.ErrTooManyParticipants) {
		return api.Error(api.MsgTooManyParticipants, http.StatusBadRequest)
	}
	return api.Error(api.MsgTwoParticipantsNeeded, http.StatusBadRequest)
}
