package itinerary

import (
	"google.golang.org/genai"

	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

func enumOf[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}

var activitySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString},
		"description": {Type: genai.TypeString, Description: "4-5 engaging sentences"},
		"type":        {Type: genai.TypeString, Enum: enumOf(types.ActivityTypes)},
		"timeOfDay":   {Type: genai.TypeString, Enum: enumOf(types.TimesOfDay), Description: "exactly one value, never combined"},
	},
	Required:         []string{"title", "description", "type", "timeOfDay"},
	PropertyOrdering: []string{"title", "description", "type", "timeOfDay"},
}

var dayPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"day":   {Type: genai.TypeInteger, Minimum: genai.Ptr[float64](1)},
		"theme": {Type: genai.TypeString},
		"activities": {
			Type:     genai.TypeArray,
			Items:    activitySchema,
			MinItems: genai.Ptr[int64](types.MinActivitiesPerDay),
			MaxItems: genai.Ptr[int64](types.MaxActivitiesPerDay),
		},
	},
	Required:         []string{"day", "theme", "activities"},
	PropertyOrdering: []string{"day", "theme", "activities"},
}

var travelSuggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"mode":     {Type: genai.TypeString, Enum: enumOf(types.TravelModes)},
		"details":  {Type: genai.TypeString, Description: "operator or carrier name"},
		"price":    {Type: genai.TypeInteger, Minimum: genai.Ptr[float64](0), Description: "whole Indian Rupees"},
		"duration": {Type: genai.TypeString, Description: "estimate such as 2.3 hours"},
	},
	Required: []string{"mode", "details", "price", "duration"},
}

var staySuggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":   {Type: genai.TypeString},
		"type":   {Type: genai.TypeString, Enum: enumOf(types.StayTypes)},
		"rating": {Type: genai.TypeNumber, Minimum: genai.Ptr[float64](0), Maximum: genai.Ptr[float64](types.MaxStayRating)},
		"price":  {Type: genai.TypeInteger, Minimum: genai.Ptr[float64](0), Description: "per night, whole Indian Rupees"},
	},
	Required: []string{"name", "type", "rating", "price"},
}

// ItinerarySchema is the response schema shared by generation and refinement.
var ItinerarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"dailyItineraries":  {Type: genai.TypeArray, Items: dayPlanSchema},
		"travelSuggestions": {Type: genai.TypeArray, Items: travelSuggestionSchema},
		"staySuggestions":   {Type: genai.TypeArray, Items: staySuggestionSchema},
	},
	Required:         []string{"dailyItineraries"},
	PropertyOrdering: []string{"dailyItineraries", "travelSuggestions", "staySuggestions"},
}
