package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// TripType is the closed set of trip flavours the planner tailors activities to.
type TripType string

const (
	TripTypeSolo      TripType = "solo"
	TripTypeFamily    TripType = "family"
	TripTypeAdventure TripType = "adventure"
	TripTypeBusiness  TripType = "business"
)

var TripTypes = []TripType{TripTypeSolo, TripTypeFamily, TripTypeAdventure, TripTypeBusiness}

func (t TripType) IsValid() bool {
	switch t {
	case TripTypeSolo, TripTypeFamily, TripTypeAdventure, TripTypeBusiness:
		return true
	}
	return false
}

// ActivityType categorises an activity inside a day plan.
type ActivityType string

const (
	ActivityTypeAttraction ActivityType = "Attraction"
	ActivityTypeFood       ActivityType = "Food"
	ActivityTypeActivity   ActivityType = "Activity"
	ActivityTypeTravel     ActivityType = "Travel"
	ActivityTypeShopping   ActivityType = "Shopping"
)

var ActivityTypes = []ActivityType{ActivityTypeAttraction, ActivityTypeFood, ActivityTypeActivity, ActivityTypeTravel, ActivityTypeShopping}

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityTypeAttraction, ActivityTypeFood, ActivityTypeActivity, ActivityTypeTravel, ActivityTypeShopping:
		return true
	}
	return false
}

// TimeOfDay is exactly one slot of the day. Composite values such as
// "Morning/Afternoon" are never valid.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "Morning"
	TimeOfDayAfternoon TimeOfDay = "Afternoon"
	TimeOfDayEvening   TimeOfDay = "Evening"
)

var TimesOfDay = []TimeOfDay{TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening}

func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return true
	}
	return false
}

// TravelMode is the means of transport between source and destination.
type TravelMode string

const (
	TravelModeFlight TravelMode = "Flight"
	TravelModeTrain  TravelMode = "Train"
	TravelModeBus    TravelMode = "Bus"
	TravelModeCar    TravelMode = "Car"
)

var TravelModes = []TravelMode{TravelModeFlight, TravelModeTrain, TravelModeBus, TravelModeCar}

func (m TravelMode) IsValid() bool {
	switch m {
	case TravelModeFlight, TravelModeTrain, TravelModeBus, TravelModeCar:
		return true
	}
	return false
}

// StayType is the kind of accommodation offered by the stay provider.
type StayType string

const (
	StayTypeHotel         StayType = "Hotel"
	StayTypeHostel        StayType = "Hostel"
	StayTypeResort        StayType = "Resort"
	StayTypeBoutiqueHotel StayType = "Boutique Hotel"
	StayTypeApartment     StayType = "Apartment"
)

var StayTypes = []StayType{StayTypeHotel, StayTypeHostel, StayTypeResort, StayTypeBoutiqueHotel, StayTypeApartment}

func (s StayType) IsValid() bool {
	switch s {
	case StayTypeHotel, StayTypeHostel, StayTypeResort, StayTypeBoutiqueHotel, StayTypeApartment:
		return true
	}
	return false
}

// Rupees is a whole amount of Indian Rupees. Fractional amounts are rejected
// when decoding.
type Rupees int64

func (r *Rupees) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("rupee amount must be a number: %w", err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return fmt.Errorf("rupee amount must be a whole number, got %v", f)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if f >= float64(math.MaxInt64) || f < float64(math.MinInt64) {
		return fmt.Errorf("rupee amount is out of range, got %v", f)
	}
	*r = Rupees(f)
	return nil
}

func (r Rupees) String() string {
	return fmt.Sprintf("RS %d", int64(r))
}

// TripRequest is the validated input to itinerary generation.
type TripRequest struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	TripType    TripType `json:"tripType"`
}

type Activity struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ActivityType `json:"type"`
	TimeOfDay   TimeOfDay    `json:"timeOfDay"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

type TravelSuggestion struct {
	Mode     TravelMode `json:"mode"`
	Details  string     `json:"details"`
	Price    Rupees     `json:"price"`
	Duration string     `json:"duration"`

	// set when a decoded document had no price, or a null one
	missingPrice bool
}

func (t *TravelSuggestion) UnmarshalJSON(data []byte) error {
	type plain TravelSuggestion
	var raw struct {
		plain
		Price *Rupees `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TravelSuggestion(raw.plain)
	t.Price, t.missingPrice = 0, raw.Price == nil
	if raw.Price != nil {
		t.Price = *raw.Price
	}
	return nil
}

type StaySuggestion struct {
	Name   string   `json:"name"`
	Type   StayType `json:"type"`
	Rating float64  `json:"rating"`
	Price  Rupees   `json:"price"`

	missingRating bool
	missingPrice  bool
}

func (s *StaySuggestion) UnmarshalJSON(data []byte) error {
	type plain StaySuggestion
	var raw struct {
		plain
		Rating *float64 `json:"rating"`
		Price  *Rupees  `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = StaySuggestion(raw.plain)
	s.Rating, s.missingRating = 0, raw.Rating == nil
	if raw.Rating != nil {
		s.Rating = *raw.Rating
	}
	s.Price, s.missingPrice = 0, raw.Price == nil
	if raw.Price != nil {
		s.Price = *raw.Price
	}
	return nil
}

// Itinerary is a complete multi-day plan plus the suggestion lists gathered
// while generating it.
type Itinerary struct {
	DailyItineraries  []DayPlan          `json:"dailyItineraries"`
	TravelSuggestions []TravelSuggestion `json:"travelSuggestions,omitempty"`
	StaySuggestions   []StaySuggestion   `json:"staySuggestions,omitempty"`
}

// RefinementRequest asks for an existing itinerary to be adjusted around the
// chosen travel option.
type RefinementRequest struct {
	Itinerary      Itinerary        `json:"itinerary"`
	SelectedTravel TravelSuggestion `json:"selectedTravel"`
}

// Normalize coerces enum values that differ from the canonical spelling only by
// case or surrounding whitespace. Anything else is left untouched so Validate
// can reject it.
func (it *Itinerary) Normalize() {
	for d := range it.DailyItineraries {
		day := &it.DailyItineraries[d]
		for a := range day.Activities {
			act := &day.Activities[a]
			act.TimeOfDay = canonical(act.TimeOfDay, TimesOfDay)
			act.Type = canonical(act.Type, ActivityTypes)
		}
	}
	for i := range it.TravelSuggestions {
		it.TravelSuggestions[i].Mode = canonical(it.TravelSuggestions[i].Mode, TravelModes)
	}
	for i := range it.StaySuggestions {
		it.StaySuggestions[i].Type = canonical(it.StaySuggestions[i].Type, StayTypes)
	}
}

// Normalize applies Itinerary.Normalize and coerces the selected option's mode
// the same way, so it still matches its entry in the itinerary.
func (r *RefinementRequest) Normalize() {
	r.Itinerary.Normalize()
	r.SelectedTravel.Mode = canonical(r.SelectedTravel.Mode, TravelModes)
}

func canonical[T ~string](v T, set []T) T {
	trimmed := strings.TrimSpace(string(v))
	for _, s := range set {
		if strings.EqualFold(trimmed, string(s)) {
			return s
		}
	}
	return v
}

// Equal reports whether two travel suggestions describe the same option.
func (t TravelSuggestion) Equal(other TravelSuggestion) bool {
	return t.Mode == other.Mode &&
		strings.EqualFold(strings.TrimSpace(t.Details), strings.TrimSpace(other.Details)) &&
		t.Price == other.Price &&
		strings.TrimSpace(t.Duration) == strings.TrimSpace(other.Duration)
}

// Modes returns the distinct travel modes present, in first-seen order.
func (it Itinerary) Modes() []TravelMode {
	seen := make(map[TravelMode]bool)
	var modes []TravelMode
	for _, s := range it.TravelSuggestions {
		if !seen[s.Mode] {
			seen[s.Mode] = true
			modes = append(modes, s.Mode)
		}
	}
	return modes
}
