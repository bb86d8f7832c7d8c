package suggestions

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wanderspark-api/internal/api"
	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{service: service, logger: logger}
}

// GetTravelSuggestions godoc
// @Summary      Travel options
// @Description  Lists ranked travel options (flight, train, bus) between two places. Prices are whole Rupees.
// @Tags         Suggestions
// @Produce      json
// @Param        source      query string true "Starting place"
// @Param        destination query string true "Destination"
// @Success      200 {array}  types.TravelSuggestion
// @Failure      400 {object} types.Response "Missing place"
// @Failure      502 {object} types.Response "Provider failure"
// @Router       /suggestions/travel [get]
func (h *HandlerImpl) GetTravelSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SuggestionsHandler").Start(r.Context(), "GetTravelSuggestions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/suggestions/travel"),
	))
	defer span.End()

	source := r.URL.Query().Get("source")
	destination := r.URL.Query().Get("destination")
	l := h.logger.With(slog.String("handler", "GetTravelSuggestions"))

	out, err := h.service.LookupTravel(ctx, source, destination)
	if err != nil {
		h.writeLookupError(w, r, l, err, map[string]string{"source": source, "destination": destination})
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, out)
}

// GetStaySuggestions godoc
// @Summary      Stay options
// @Description  Lists ranked accommodation options at a destination. Prices are per night in whole Rupees.
// @Tags         Suggestions
// @Produce      json
// @Param        destination query string true "Destination"
// @Success      200 {array}  types.StaySuggestion
// @Failure      400 {object} types.Response "Missing place"
// @Failure      502 {object} types.Response "Provider failure"
// @Router       /suggestions/stay [get]
func (h *HandlerImpl) GetStaySuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SuggestionsHandler").Start(r.Context(), "GetStaySuggestions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/suggestions/stay"),
	))
	defer span.End()

	destination := r.URL.Query().Get("destination")
	l := h.logger.With(slog.String("handler", "GetStaySuggestions"))

	out, err := h.service.LookupStay(ctx, destination)
	if err != nil {
		h.writeLookupError(w, r, l, err, map[string]string{"destination": destination})
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, out)
}

func (h *HandlerImpl) writeLookupError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error, params map[string]string) {
	if errors.Is(err, ErrEmptyPlace) {
		ve := &types.ValidationError{}
		for _, name := range []string{"source", "destination"} {
			if v, ok := params[name]; ok && strings.TrimSpace(v) == "" {
				ve.Fields = append(ve.Fields, types.FieldError{Field: name, Message: "is required"})
			}
		}
		if len(ve.Fields) == 0 {
			ve.Fields = append(ve.Fields, types.FieldError{Field: "destination", Message: err.Error()})
		}
		api.ValidationErrorResponse(w, r, ve)
		return
	}
	api.ServiceErrorResponse(w, r, l, &types.GenerationError{Op: "lookup", Err: err})
}
