package models

// RouteLink is a transit directions link from one participant's station to the meeting station
type RouteLink struct {
	ParticipantID string `json:"participantId"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	URL           string `json:"url"`
}

// MeetingPlan is the full answer for a group: where everyone starts, the candidate
// stations, and how each participant gets to the best one
type MeetingPlan struct {
	Participants []Participant   `json:"participants"`
	Origins      []Station       `json:"origins"`
	CenterPoint  CenterPoint     `json:"centerPoint"`
	Stations     []NearbyStation `json:"stations"`
	Routes       []RouteLink     `json:"routes"`
}
