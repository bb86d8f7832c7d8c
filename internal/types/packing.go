package types

import (
	"fmt"
	"strings"
)

// PackingListRequest describes the trip a packing list is generated for.
type PackingListRequest struct {
	Destination   string     `json:"destination"`
	Duration      int        `json:"duration"`
	Climate       string     `json:"climate"`
	TripType      string     `json:"tripType"`
	TransportMode TravelMode `json:"transportMode"`
	Preferences   string     `json:"preferences,omitempty"`
}

type PackingListResult struct {
	PackingList        []string `json:"packingList"`
	EssentialChecklist []string `json:"essentialChecklist"`
	SafeTravelTips     []string `json:"safeTravelTips"`
}

func (r PackingListRequest) Validate() error {
	var fe fieldErrors
	if strings.TrimSpace(r.Destination) == "" {
		fe.add("destination", "is required")
	}
	if r.Duration < 1 {
		fe.add("duration", "must be at least 1 day, got %d", r.Duration)
	}
	if strings.TrimSpace(r.Climate) == "" {
		fe.add("climate", "is required")
	}
	if strings.TrimSpace(r.TripType) == "" {
		fe.add("tripType", "is required")
	}
	if !r.TransportMode.IsValid() {
		fe.add("transportMode", "must be one of %s, got %q", joinEnum(TravelModes), r.TransportMode)
	}
	return fe.err()
}

func (r PackingListResult) Validate() error {
	var fe fieldErrors
	check := func(field string, items []string) {
		if len(items) == 0 {
			fe.add(field, "must not be empty")
		}
		for i, item := range items {
			if strings.TrimSpace(item) == "" {
				fe.add(fmt.Sprintf("%s[%d]", field, i), "must not be blank")
			}
		}
	}
	check("packingList", r.PackingList)
	check("essentialChecklist", r.EssentialChecklist)
	check("safeTravelTips", r.SafeTravelTips)
	return fe.err()
}
