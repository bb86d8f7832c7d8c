package packing

import (
	"log/slog"
	"net/http"

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

// GeneratePackingList godoc
// @Summary      Generate a packing list
// @Description  Builds a packing list, a transport-specific essential checklist and safety tips for a trip.
// @Tags         Packing
// @Accept       json
// @Produce      json
// @Param        trip body types.PackingListRequest true "Trip details"
// @Success      201 {object} types.PackingListResult
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      429 {object} types.Response "Too many requests"
// @Failure      502 {object} types.Response "Generation failed"
// @Router       /packing-lists [post]
func (h *HandlerImpl) GeneratePackingList(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PackingHandler").Start(r.Context(), "GeneratePackingList", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/packing-lists"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GeneratePackingList"))

	var req types.PackingListRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GeneratePackingList(ctx, req)
	if err != nil {
		api.ServiceErrorResponse(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, result)
}
