package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/services"
	"github.com/videohub/videohub/internal/shared"
)

// successBody is the catalog response shape consumed by the dashboard.
type successBody struct {
	Status string               `json:"status"`
	Data   []models.VideoRecord `json:"data"`
}

// errorBody is the error response shape; Details carries the raw upstream
// body and is omitted for configuration and unexpected failures.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// VideoHandler serves the normalized catalog.
//
// GET is the primary method; POST is tolerated as an alias with identical
// behavior. OPTIONS preflights get a bare 200. Everything else is a 405.
type VideoHandler struct {
	source services.VideoSource
	logger *log.Logger
}

// NewVideoHandler creates a VideoHandler backed by the given catalog source.
func NewVideoHandler(source services.VideoSource, logger *log.Logger) *VideoHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &VideoHandler{source: source, logger: logger}
}

// Routes returns the HTTP routes this handler serves. The /api/notion alias
// matches the path the original dashboard frontend requests.
func (h *VideoHandler) Routes() []string {
	return []string{"/api/videos", "/api/notion"}
}

// ServeHTTP handles one fetch-and-normalize request.
func (h *VideoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodPost:
		// fall through to the fetch
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	videos, err := h.source.FetchVideos(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successBody{Status: "success", Data: videos})
}

// fail maps the error taxonomy onto the wire: upstream errors mirror the
// upstream status with the raw body attached, configuration errors are a 500
// with a diagnostic message, anything else a generic 500.
func (h *VideoHandler) fail(w http.ResponseWriter, err error) {
	var upstream *shared.UpstreamError
	switch {
	case errors.As(err, &upstream):
		h.logger.Error("notion API error", "status", upstream.StatusCode)
		writeJSON(w, upstream.StatusCode, errorBody{
			Status:  "error",
			Message: err.Error(),
			Details: upstream.Body,
		})
	case errors.Is(err, shared.ErrMissingAPIKey), errors.Is(err, shared.ErrMissingDatabase):
		h.logger.Error("configuration error", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Status:  "error",
			Message: err.Error(),
		})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
	default:
		h.logger.Error("catalog fetch failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Status:  "error",
			Message: err.Error(),
		})
	}
}

// HealthHandler reports service liveness; the dashboard polls it to decide
// whether the backend is up.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP answers the liveness probe.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "service is running",
	})
}

// NewRouter assembles the catalog router with its middleware stack.
func NewRouter(source services.VideoSource, logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(Recover(logger), CORS, RequestLogger(logger))
	router.Handler(NewVideoHandler(source, logger))
	router.Handler(&HealthHandler{})

	return router
}
