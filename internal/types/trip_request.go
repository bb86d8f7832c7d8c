package types

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// GenerateItineraryRequest is the HTTP body for itinerary generation. Callers
// send either a duration or a start/end date range.
type GenerateItineraryRequest struct {
	Source      string   `json:"source" example:"Mumbai"`
	Destination string   `json:"destination" example:"Goa"`
	Duration    int      `json:"duration,omitempty" example:"3"`
	StartDate   string   `json:"startDate,omitempty" example:"2025-12-20"`
	EndDate     string   `json:"endDate,omitempty" example:"2025-12-22"`
	TripType    TripType `json:"tripType" example:"adventure"`
}

// ToTripRequest resolves the duration and returns a validated TripRequest.
// Both ends of a date range are inclusive, so the same start and end date is a
// one-day trip.
func (g GenerateItineraryRequest) ToTripRequest() (TripRequest, error) {
	var fe fieldErrors
	duration := g.Duration

	if g.StartDate != "" || g.EndDate != "" {
		from, errFrom := time.Parse(dateLayout, g.StartDate)
		if errFrom != nil {
			fe.add("startDate", "must be a date in YYYY-MM-DD format")
		}
		to, errTo := time.Parse(dateLayout, g.EndDate)
		if errTo != nil {
			fe.add("endDate", "must be a date in YYYY-MM-DD format")
		}
		if errFrom == nil && errTo == nil {
			days := int(to.Sub(from).Hours()/24) + 1
			switch {
			case days <= 0:
				fe.add("endDate", "end date must be on or after start date")
			case g.Duration != 0 && g.Duration != days:
				fe.add("duration", "does not match the date range (%d days)", days)
			default:
				duration = days
			}
		}
	}

	req := TripRequest{
		Source:      g.Source,
		Destination: g.Destination,
		Duration:    duration,
		TripType:    g.TripType,
	}
	// an unresolved date range already explains a missing duration
	rangeFailed := len(fe.fields) > 0
	var ve *ValidationError
	if errors.As(req.Validate(), &ve) {
		for _, f := range ve.Fields {
			if rangeFailed && f.Field == "duration" {
				continue
			}
			fe.fields = append(fe.fields, f)
		}
	}
	return req, fe.err()
}
