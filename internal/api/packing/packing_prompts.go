package packing

import (
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

const packingPromptName = "generatePackingListPrompt"

const systemInstruction = `You are a travel expert who helps people pack. Keep every item short and concrete.`

const packingTemplate = `Generate a packing list for this trip. Every suggestion must be relevant to the details below.

Destination: {{.Destination}}
Duration: {{.Duration}} days
Climate: {{.Climate}}
Trip Type: {{.TripType}}
Transport Mode: {{.TransportMode}}
{{- if .Preferences}}
Preferences: {{.Preferences}}
{{- end}}

1. essentialChecklist: critical documents and items for travelling by {{.TransportMode}}. {{modeHint .TransportMode}}
   Never include items that only apply to another transport mode.
2. packingList: clothing, accessories and other items for the climate and trip type, respecting the luggage limits of travelling by {{.TransportMode}}.
3. safeTravelTips: practical safety tips for {{.Destination}}.
`

var modeHints = map[types.TravelMode]string{
	types.TravelModeFlight: "For example flight tickets or boarding passes and a photo ID or passport.",
	types.TravelModeTrain:  "For example the train ticket or PNR and a photo ID.",
	types.TravelModeBus:    "For example the bus ticket and a photo ID.",
	types.TravelModeCar:    "For example a driving licence, vehicle registration and insurance documents.",
}

func modeHint(m types.TravelMode) string {
	return modeHints[m]
}

var packingSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"packingList":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "items to pack"},
		"essentialChecklist": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "critical documents and items for the transport mode"},
		"safeTravelTips":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "safety tips for the destination"},
	},
	Required:         []string{"packingList", "essentialChecklist", "safeTravelTips"},
	PropertyOrdering: []string{"essentialChecklist", "packingList", "safeTravelTips"},
}

// modeTerms are phrases that tie a checklist item to one transport mode.
var modeTerms = map[types.TravelMode][]string{
	types.TravelModeFlight: {"boarding pass", "flight", "airline", "air ticket", "airport"},
	types.TravelModeTrain:  {"train ticket", "railway", "pnr", "irctc"},
	types.TravelModeBus:    {"bus ticket", "bus pass"},
	types.TravelModeCar: {
		"driving licence", "driving license", "driver's license", "drivers license",
		"vehicle registration", "registration certificate", "car insurance", "vehicle insurance",
		"vehicle document", "car document", "puc certificate", "fastag", "spare tyre", "spare tire",
	},
}

// foreignMode returns the other transport mode an item belongs to, if any.
func foreignMode(item string, mode types.TravelMode) (types.TravelMode, bool) {
	lower := strings.ToLower(item)
	for _, other := range types.TravelModes {
		if other == mode {
			continue
		}
		for _, term := range modeTerms[other] {
			if strings.Contains(lower, term) {
				return other, true
			}
		}
	}
	return "", false
}
