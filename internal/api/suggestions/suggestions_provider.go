package suggestions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

var ErrEmptyPlace = errors.New("place name must not be empty")

// TravelProvider returns transit candidates between two places, ranked.
type TravelProvider interface {
	LookupTravel(ctx context.Context, source, destination string) ([]types.TravelSuggestion, error)
}

// StayProvider returns lodging candidates at a destination, ranked.
type StayProvider interface {
	LookupStay(ctx context.Context, destination string) ([]types.StaySuggestion, error)
}

var (
	_ TravelProvider = (*DummyProvider)(nil)
	_ StayProvider   = (*DummyProvider)(nil)
)

// DummyProvider stands in for booking APIs. It returns fixed operators and
// properties with prices drawn from plausible ranges.
type DummyProvider struct {
	logger *slog.Logger
	intN   func(n int) int
	float  func() float64
}

func NewDummyProvider(logger *slog.Logger) *DummyProvider {
	return &DummyProvider{logger: logger, intN: rand.IntN, float: rand.Float64}
}

type travelOption struct {
	mode        types.TravelMode
	details     string
	basePrice   int
	priceSpread int
	baseHours   float64
	hoursSpread float64
}

var travelOptions = []travelOption{
	{types.TravelModeFlight, "IndiGo", 3500, 4000, 1.5, 2},
	{types.TravelModeFlight, "Air India", 4000, 4000, 1.6, 2},
	{types.TravelModeTrain, "Shatabdi Express", 800, 1500, 8, 10},
	{types.TravelModeTrain, "Rajdhani Express", 1200, 2000, 7.5, 10},
	{types.TravelModeBus, "Volvo Sleeper", 500, 800, 10, 12},
	{types.TravelModeBus, "State Transport", 300, 600, 11, 12},
}

type stayOption struct {
	name        string
	stayType    types.StayType
	rating      float64
	basePrice   int
	priceSpread int
}

var stayOptions = []stayOption{
	{"Grand Heritage Hotel", types.StayTypeHotel, 4.5, 4000, 5000},
	{"The Backpacker Hostel", types.StayTypeHostel, 4.2, 800, 800},
	{"Ocean View Resort", types.StayTypeResort, 4.8, 10000, 8000},
	{"Cozy Inn Boutique", types.StayTypeBoutiqueHotel, 4.6, 6000, 4000},
}

func (p *DummyProvider) LookupTravel(ctx context.Context, source, destination string) ([]types.TravelSuggestion, error) {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(destination) == "" {
		return nil, ErrEmptyPlace
	}
	p.logger.InfoContext(ctx, "Getting travel suggestions",
		slog.String("source", source), slog.String("destination", destination))

	out := make([]types.TravelSuggestion, 0, len(travelOptions))
	for _, o := range travelOptions {
		out = append(out, types.TravelSuggestion{
			Mode:     o.mode,
			Details:  o.details,
			Price:    types.Rupees(o.basePrice + p.intN(o.priceSpread)),
			Duration: fmt.Sprintf("%.1f hours", p.float()*o.hoursSpread+o.baseHours),
		})
	}
	return out, nil
}

func (p *DummyProvider) LookupStay(ctx context.Context, destination string) ([]types.StaySuggestion, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, ErrEmptyPlace
	}
	p.logger.InfoContext(ctx, "Finding stay options", slog.String("destination", destination))

	out := make([]types.StaySuggestion, 0, len(stayOptions))
	for _, o := range stayOptions {
		out = append(out, types.StaySuggestion{
			Name:   o.name,
			Type:   o.stayType,
			Rating: o.rating,
			Price:  types.Rupees(o.basePrice + p.intN(o.priceSpread)),
		})
	}
	return out, nil
}
