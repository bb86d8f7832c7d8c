package itinerary

import (
	"strings"
	"text/template"

	"github.com/FACorreiaa/wanderspark-api/internal/api/suggestions"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

const (
	generatePromptName = "generateItineraryPrompt"
	refinePromptName   = "refineItineraryPrompt"
)

const systemInstruction = `You are an expert travel planner for trips within India. All prices are whole Indian Rupees (RS) without decimals.`

const generateTemplate = `Generate a detailed, day-by-day itinerary for the trip below.

First call {{.TravelTool}} to get flight, train and bus options from the starting place to the destination.
Then call {{.StayTool}} to get accommodation options at the destination.
Include every suggestion those tools return in your final answer.

Starting Place: {{.Request.Source}}
Destination: {{.Request.Destination}}
Duration: {{.Request.Duration}} days
Trip Type: {{.Request.TripType}}

Return exactly {{.Request.Duration}} days numbered 1 to {{.Request.Duration}}. For each day give a theme and {{.MinActivities}} to {{.MaxActivities}} activities.
Each activity has a title, an engaging description of 4-5 sentences, a type ({{.ActivityTypes}}) and a time of day.

The timeOfDay of an activity MUST be exactly one of {{.TimesOfDay}}. Never combine them (no "Morning/Afternoon").

Account for the journey from the starting place: the first and last day should be lighter, with activities close to the arrival and departure points.
Keep the plan geographically sensible.
{{- if .Bias}}
{{.Bias}}
{{- end}}
`

const refineTemplate = `A traveller has an existing itinerary and has chosen how to get there.
Refine the itinerary so the first and last day reflect that travel time.

Selected Travel Option:
- Mode: {{.Selected.Mode}}
- Details: {{.Selected.Details}}
- Duration: {{.Selected.Duration}}
- Price: {{.Selected.Price}}

Current day plans (JSON):
{{.DaysJSON}}

Adjust only day 1 and day {{.LastDay}}: a long journey means fewer or lighter activities on those days, a short one can keep more.
Leave every other day exactly as it is. Keep the same number of days ({{.LastDay}}), the same day numbers and the same JSON shape.
Each day must keep {{.MinActivities}} to {{.MaxActivities}} activities and every timeOfDay must be exactly one of {{.TimesOfDay}}.
Return only dailyItineraries; travel and stay suggestions are kept from the original itinerary.
`

var tripTypeBias = map[types.TripType]string{
	types.TripTypeFamily:    "This is a family trip: prefer kid-friendly options and a relaxed pace.",
	types.TripTypeAdventure: "This is an adventure trip: include exciting, high-intensity activities.",
	types.TripTypeBusiness:  "This is a business trip: leave time for work and add some leisure around it.",
	types.TripTypeSolo:      "This is a solo trip: favour social, flexible activities that are safe to do alone.",
}

type generateData struct {
	Request       types.TripRequest
	TravelTool    string
	StayTool      string
	Bias          string
	MinActivities int
	MaxActivities int
	ActivityTypes string
	TimesOfDay    string
}

type refineData struct {
	Selected      types.TravelSuggestion
	DaysJSON      string
	LastDay       int
	MinActivities int
	MaxActivities int
	TimesOfDay    string
}

func quoted[T ~string](set []T) string {
	parts := make([]string, len(set))
	for i, v := range set {
		parts[i] = "'" + string(v) + "'"
	}
	return strings.Join(parts, ", ")
}

func newGenerateData(req types.TripRequest) generateData {
	return generateData{
		Request:       req,
		TravelTool:    suggestions.TravelToolName,
		StayTool:      suggestions.StayToolName,
		Bias:          tripTypeBias[req.TripType],
		MinActivities: types.MinActivitiesPerDay,
		MaxActivities: types.MaxActivitiesPerDay,
		ActivityTypes: quoted(types.ActivityTypes),
		TimesOfDay:    quoted(types.TimesOfDay),
	}
}

func newRefineData(req types.RefinementRequest, daysJSON string) refineData {
	return refineData{
		Selected:      req.SelectedTravel,
		DaysJSON:      daysJSON,
		LastDay:       len(req.Itinerary.DailyItineraries),
		MinActivities: types.MinActivitiesPerDay,
		MaxActivities: types.MaxActivitiesPerDay,
		TimesOfDay:    quoted(types.TimesOfDay),
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
