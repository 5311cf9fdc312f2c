// Package transit builds public-transport directions links. Routing itself is
// left to the maps application that opens the link.
package transit

import (
	"net/url"

	"github.com/bbernstein/meetpoint/backend-go/internal/models"
)

const directionsBaseURL = "https://www.google.com/maps/dir/"

// DirectionsURL returns a Maps URL for transit directions between two stations.
// Place ids are attached when known so the app does not have to re-resolve names.
func DirectionsURL(origin, destination models.Station) string {
	query := url.Values{}
	query.Set("api", "1")
	query.Set("origin", origin.Name)
	query.Set("destination", destination.Name)
	query.Set("travelmode", "transit")
	if origin.PlaceID != "" {
		query.Set("origin_place_id", origin.PlaceID)
	}
	if destination.PlaceID != "" {
		query.Set("destination_place_id", destination.PlaceID)
	}
	return directionsBaseURL + "?" + query.Encode()
}

// RouteLinks builds one link per participant from their resolved station to the destination.
// participants and origins are matched by position.
func RouteLinks(participants []models.Participant, origins []models.Station, destination models.NearbyStation) []models.RouteLink {
	dest := models.Station{
		Name:      destination.Name,
		Latitude:  destination.Latitude,
		Longitude: destination.Longitude,
		PlaceID:   destination.PlaceID,
	}

	links := make([]models.RouteLink, 0, len(origins))
	for i, origin := range origins {
		if i >= len(participants) {
			break
		}
		links = append(links, models.RouteLink{
			ParticipantID: participants[i].ID,
			Origin:        origin.Name,
			Destination:   dest.Name,
			URL:           DirectionsURL(origin, dest),
		})
	}
	return links
}
