package itinerary

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

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

// GenerateItinerary godoc
// @Summary      Generate an itinerary
// @Description  Builds a day-by-day plan for the trip, with travel and stay suggestions. Send either duration or startDate/endDate.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        trip body types.GenerateItineraryRequest true "Trip"
// @Success      201 {object} types.Itinerary
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      429 {object} types.Response "Too many requests"
// @Failure      502 {object} types.Response "Generation failed"
// @Router       /itineraries [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var body types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &body); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req, err := body.ToTripRequest()
	if err != nil {
		api.ServiceErrorResponse(w, r, l, err)
		return
	}

	it, err := h.service.GenerateItinerary(ctx, req)
	if err != nil {
		api.ServiceErrorResponse(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// RefineItinerary godoc
// @Summary      Refine an itinerary
// @Description  Adjusts the first and last day around the selected travel option. Travel and stay suggestions are returned unchanged.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        refinement body types.RefinementRequest true "Itinerary and selected travel option"
// @Success      200 {object} types.Itinerary
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      429 {object} types.Response "Too many requests"
// @Failure      502 {object} types.Response "Refinement failed"
// @Router       /itineraries/refine [post]
func (h *HandlerImpl) RefineItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "RefineItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itineraries/refine"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RefineItinerary"))

	var req types.RefinementRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Normalize()

	it, err := h.service.RefineItinerary(ctx, req)
	if err != nil {
		api.ServiceErrorResponse(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// ExportItinerary godoc
// @Summary      Export an itinerary as PDF
// @Tags         Itinerary
// @Accept       json
// @Produce      application/pdf
// @Param        itinerary body  types.Itinerary true "Itinerary"
// @Param        title     query string false "Document title"
// @Success      200 {file} binary
// @Failure      400 {object} types.Response "Invalid itinerary"
// @Router       /itineraries/export [post]
func (h *HandlerImpl) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "ExportItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itineraries/export"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ExportItinerary"))

	var it types.Itinerary
	if err := api.DecodeJSONBody(w, r, &it); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	it.Normalize()
	if err := it.Validate(); err != nil {
		api.ServiceErrorResponse(w, r, l, err)
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		title = "Your " + strconv.Itoa(len(it.DailyItineraries)) + "-day itinerary"
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, title, it); err != nil {
		l.ErrorContext(ctx, "Failed to render itinerary pdf", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		l.ErrorContext(ctx, "Failed to write pdf", slog.Any("error", err))
	}
}
