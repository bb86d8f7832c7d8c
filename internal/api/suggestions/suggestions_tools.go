package suggestions

import (
	"context"

	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/wanderspark-api/internal/api/generative_ai"
)

const (
	TravelToolName = "getTravelSuggestions"
	StayToolName   = "findBestStay"
)

var (
	_ generativeAI.Tool = (*TravelTool)(nil)
	_ generativeAI.Tool = (*StayTool)(nil)
)

// TravelTool exposes a TravelProvider to the model.
type TravelTool struct {
	provider TravelProvider
}

func NewTravelTool(provider TravelProvider) *TravelTool {
	return &TravelTool{provider: provider}
}

func (t *TravelTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        TravelToolName,
		Description: "Get a list of the best travel suggestions (flights, trains, buses) between two locations. Prices are in Indian Rupees.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"source":      {Type: genai.TypeString, Description: "Starting place"},
				"destination": {Type: genai.TypeString, Description: "Destination place"},
			},
			Required: []string{"source", "destination"},
		},
	}
}

func (t *TravelTool) Call(ctx context.Context, args map[string]any) (any, error) {
	source, err := generativeAI.StringArg(args, "source")
	if err != nil {
		return nil, err
	}
	destination, err := generativeAI.StringArg(args, "destination")
	if err != nil {
		return nil, err
	}
	return t.provider.LookupTravel(ctx, source, destination)
}

// StayTool exposes a StayProvider to the model.
type StayTool struct {
	provider StayProvider
}

func NewStayTool(provider StayProvider) *StayTool {
	return &StayTool{provider: provider}
}

func (t *StayTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        StayToolName,
		Description: "Find the best stay options like hotels, hostels, etc., from various booking websites for a given destination. Prices are per night in Indian Rupees.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"destination": {Type: genai.TypeString, Description: "Destination place"},
			},
			Required: []string{"destination"},
		},
	}
}

func (t *StayTool) Call(ctx context.Context, args map[string]any) (any, error) {
	destination, err := generativeAI.StringArg(args, "destination")
	if err != nil {
		return nil, err
	}
	return t.provider.LookupStay(ctx, destination)
}
