// Package meeting runs the whole flow for a group: resolve every participant's
// station, rank stations around their centre and link each person to the best one.
package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bbernstein/meetpoint/backend-go/internal/models"
	"github.com/bbernstein/meetpoint/backend-go/internal/transit"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	MinParticipants = 2
	MaxParticipants = 5
)

var (
	ErrTooFewParticipants  = errors.New("at least two participants with a station are required")
	ErrTooManyParticipants = errors.New("too many participants")
)

type Planner struct {
	finder models.StationFinder
	newID  func() string
}

func NewPlanner(finder models.StationFinder) *Planner {
	return &Planner{
		finder: finder,
		newID:  uuid.NewString,
	}
}

// Normalize drops participants without a station name, trims names, assigns
// missing ids and enforces the group size limits
func (p *Planner) Normalize(participants []models.Participant) ([]models.Participant, error) {
	active := make([]models.Participant, 0, len(participants))
	for _, part := range participants {
		part.StationName = strings.TrimSpace(part.StationName)
		if part.StationName == "" {
			continue
		}
		if part.ID == "" {
			part.ID = p.newID()
		}
		active = append(active, part)
	}

	if len(active) < MinParticipants {
		return nil, ErrTooFewParticipants
	}
	if len(active) > MaxParticipants {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyParticipants, len(active), MaxParticipants)
	}
	return active, nil
}

// Plan resolves all participants concurrently. Results keep input order; the
// first resolution error cancels the rest and is returned as is.
func (p *Planner) Plan(ctx context.Context, participants []models.Participant) (*models.MeetingPlan, error) {
	active, err := p.Normalize(participants)
	if err != nil {
		return nil, err
	}

	origins := make([]models.Station, len(active))
	g, gctx := errgroup.WithContext(ctx)
	for i, part := range active {
		i, part := i, part
		g.Go(func() error {
			station, err := p.finder.Resolve(gctx, part.StationName, part.StationPlaceID)
			if err != nil {
				return err
			}
			origins[i] = *station
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stations := make([]models.Station, len(origins))
	copy(stations, origins)
	result, err := p.finder.FindCenterStations(ctx, stations)
	if err != nil {
		return nil, err
	}

	plan := &models.MeetingPlan{
		Participants: active,
		Origins:      origins,
		CenterPoint:  result.CenterPoint,
		Stations:     result.Stations,
		Routes:       []models.RouteLink{},
	}
	if len(result.Stations) > 0 {
		plan.Routes = transit.RouteLinks(active, origins, result.Stations[0])
	}

	log.Debug().
		Int("participants", len(active)).
		Int("stations", len(result.Stations)).
		Msg("Meeting plan ready")

	return plan, nil
}
