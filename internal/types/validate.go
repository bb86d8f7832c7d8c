package types

import (
	"fmt"
	"strings"
)

const (
	MinActivitiesPerDay = 3
	MaxActivitiesPerDay = 4
	MaxStayRating       = 5
)

func (r TripRequest) Validate() error {
	var fe fieldErrors
	if strings.TrimSpace(r.Source) == "" {
		fe.add("source", "is required")
	}
	if strings.TrimSpace(r.Destination) == "" {
		fe.add("destination", "is required")
	}
	if r.Duration < 1 {
		fe.add("duration", "must be at least 1 day, got %d", r.Duration)
	}
	if !r.TripType.IsValid() {
		fe.add("tripType", "must be one of %s, got %q", joinEnum(TripTypes), r.TripType)
	}
	return fe.err()
}

func (a Activity) Validate() error {
	var fe fieldErrors
	if strings.TrimSpace(a.Title) == "" {
		fe.add("title", "is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		fe.add("description", "is required")
	}
	if !a.Type.IsValid() {
		fe.add("type", "must be one of %s, got %q", joinEnum(ActivityTypes), a.Type)
	}
	if !a.TimeOfDay.IsValid() {
		fe.add("timeOfDay", "must be exactly one of %s, got %q", joinEnum(TimesOfDay), a.TimeOfDay)
	}
	return fe.err()
}

func (d DayPlan) Validate() error {
	var fe fieldErrors
	if d.Day < 1 {
		fe.add("day", "must be at least 1, got %d", d.Day)
	}
	if strings.TrimSpace(d.Theme) == "" {
		fe.add("theme", "is required")
	}
	if n := len(d.Activities); n < MinActivitiesPerDay || n > MaxActivitiesPerDay {
		fe.add("activities", "must contain %d-%d activities, got %d", MinActivitiesPerDay, MaxActivitiesPerDay, n)
	}
	for i, a := range d.Activities {
		fe.merge(fmt.Sprintf("activities[%d]", i), a.Validate())
	}
	return fe.err()
}

func (t TravelSuggestion) Validate() error {
	var fe fieldErrors
	if !t.Mode.IsValid() {
		fe.add("mode", "must be one of %s, got %q", joinEnum(TravelModes), t.Mode)
	}
	if strings.TrimSpace(t.Details) == "" {
		fe.add("details", "is required")
	}
	switch {
	case t.missingPrice:
		fe.add("price", "is required")
	case t.Price < 0:
		fe.add("price", "must not be negative, got %d", t.Price)
	}
	if strings.TrimSpace(t.Duration) == "" {
		fe.add("duration", "is required")
	}
	return fe.err()
}

func (s StaySuggestion) Validate() error {
	var fe fieldErrors
	if strings.TrimSpace(s.Name) == "" {
		fe.add("name", "is required")
	}
	if !s.Type.IsValid() {
		fe.add("type", "must be one of %s, got %q", joinEnum(StayTypes), s.Type)
	}
	switch {
	case s.missingRating:
		fe.add("rating", "is required")
	case s.Rating < 0 || s.Rating > MaxStayRating:
		fe.add("rating", "must be between 0 and %d, got %v", MaxStayRating, s.Rating)
	}
	switch {
	case s.missingPrice:
		fe.add("price", "is required")
	case s.Price < 0:
		fe.add("price", "must not be negative, got %d", s.Price)
	}
	return fe.err()
}

// Validate checks the structural invariants of an itinerary: at least one
// day, day numbers exactly 1..n in order, every day and suggestion valid.
func (it Itinerary) Validate() error {
	var fe fieldErrors
	if len(it.DailyItineraries) == 0 {
		fe.add("dailyItineraries", "must contain at least one day")
	}
	for i, d := range it.DailyItineraries {
		prefix := fmt.Sprintf("dailyItineraries[%d]", i)
		if d.Day != i+1 {
			fe.add(prefix+".day", "days must be contiguous from 1, expected %d got %d", i+1, d.Day)
		}
		fe.merge(prefix, d.Validate())
	}
	for i, s := range it.TravelSuggestions {
		fe.merge(fmt.Sprintf("travelSuggestions[%d]", i), s.Validate())
	}
	for i, s := range it.StaySuggestions {
		fe.merge(fmt.Sprintf("staySuggestions[%d]", i), s.Validate())
	}
	return fe.err()
}

// ValidateFor validates the itinerary and additionally requires exactly
// duration day plans.
func (it Itinerary) ValidateFor(duration int) error {
	var fe fieldErrors
	if err := it.Validate(); err != nil {
		fe.fields = append(fe.fields, err.(*ValidationError).Fields...)
	}
	if len(it.DailyItineraries) != duration {
		fe.add("dailyItineraries", "must contain %d days, got %d", duration, len(it.DailyItineraries))
	}
	return fe.err()
}

// Validate checks the refinement input. When the itinerary carries travel
// suggestions the selected option has to be one of them.
func (r RefinementRequest) Validate() error {
	var fe fieldErrors
	fe.merge("itinerary", r.Itinerary.Validate())
	fe.merge("selectedTravel", r.SelectedTravel.Validate())
	if len(r.Itinerary.TravelSuggestions) > 0 && !r.isKnownTravel() {
		fe.add("selectedTravel", "must be one of the itinerary's travel suggestions")
	}
	return fe.err()
}

func (r RefinementRequest) isKnownTravel() bool {
	for _, s := range r.Itinerary.TravelSuggestions {
		if s.Equal(r.SelectedTravel) {
			return true
		}
	}
	return false
}

func joinEnum[T ~string](set []T) string {
	parts := make([]string, len(set))
	for i, v := range set {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
