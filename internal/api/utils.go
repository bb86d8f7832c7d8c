package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

const maxBodyBytes = 1_048_576

// ErrorResponse writes the standard JSON error body including the request ID.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, map[string]any{
		"success":    false,
		"error":      message,
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// ValidationErrorResponse is ErrorResponse plus the violated fields.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, ve *types.ValidationError) {
	WriteJSONResponse(w, r, http.StatusBadRequest, map[string]any{
		"success":    false,
		"error":      "validation failed",
		"fields":     ve.Fields,
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// ServiceErrorResponse maps the core error taxonomy onto HTTP. Generation
// failures are opaque to the caller; the cause is only logged.
func ServiceErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		ve *types.ValidationError
		ge *types.GenerationError
		re *types.RefinementError
	)
	// Generation errors may wrap a ValidationError of the model output, so
	// they are matched first.
	switch {
	case errors.As(err, &ge), errors.As(err, &re):
		logger.ErrorContext(r.Context(), "Generation failed",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())))
		ErrorResponse(w, r, http.StatusBadGateway, types.UserMessage)
	case errors.As(err, &ve):
		ValidationErrorResponse(w, r, ve)
	default:
		logger.ErrorContext(r.Context(), "Unexpected service error",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())))
		ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// WriteJSONResponse encodes data and writes status and body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		// status already sent
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

// DecodeJSONBody decodes exactly one JSON value into dst, rejecting unknown
// keys and bodies over 1MB.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var (
			syntaxError           *json.SyntaxError
			unmarshalTypeError    *json.UnmarshalTypeError
			invalidUnmarshalError *json.InvalidUnmarshalError
			maxBytesError         *http.MaxBytesError
		)

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q (wanted %s)", unmarshalTypeError.Field, unmarshalTypeError.Type)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return fmt.Errorf("body contains unknown key %q", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(fmt.Errorf("developer error: invalid argument passed to json.Unmarshal: %w", err))
		default:
			return fmt.Errorf("error decoding JSON body: %w", err)
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}
