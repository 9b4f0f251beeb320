// Package api exposes the directory and the map composer over HTTP. All
// endpoints are read-only; the only side effect is an optional highlight
// event published for downstream consumers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"campus/internal/directory"
	"campus/internal/events"
	"campus/internal/render"
)

// EventPublisher sends highlight events to the event stream. A nil publisher
// disables event publishing.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value any) error
}

// Handler serves the directory API.
type Handler struct {
	dir       *directory.Directory
	composer  *render.Composer
	publisher EventPublisher
	logger    *slog.Logger
}

// NewHandler wires the handler. publisher may be nil.
func NewHandler(dir *directory.Directory, composer *render.Composer, publisher EventPublisher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		dir:       dir,
		composer:  composer,
		publisher: publisher,
		logger:    logger,
	}
}

// Register attaches all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/locations", h.listLocations)
	mux.HandleFunc("GET /api/locations/search", h.searchLocations)
	mux.HandleFunc("GET /api/locations/{name}/distances", h.locationDistances)
	mux.HandleFunc("GET /api/render", h.renderMap)
	mux.HandleFunc("GET /health", h.health)
}

// listLocations returns every location, optionally filtered by exact type.
func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locType := r.URL.Query().Get("type")
	if locType != "" {
		h.writeJSON(w, http.StatusOK, h.dir.ByType(locType))
		return
	}
	h.writeJSON(w, http.StatusOK, h.dir.All())
}

// searchLocations performs a case-insensitive substring search over names.
// An empty q returns an empty list.
func (h *Handler) searchLocations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.dir.Search(r.URL.Query().Get("q")))
}

// locationDistances returns the geodesic distance from the named location to
// every other location, in directory order.
func (h *Handler) locationDistances(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	origin, ok := h.dir.Find(name)
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown location")
		return
	}

	distances, err := h.dir.DistancesFrom(origin)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("distance query failed", "origin", name, "error", err)
		h.writeError(w, http.StatusInternalServerError, "distance computation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, distances)
}

// renderMap composes one map frame. A q term takes precedence over an
// explicit highlight; an explicit highlight naming an unknown location is a
// 404 so callers notice the stale reference.
func (h *Handler) renderMap(w http.ResponseWriter, r *http.Request) {
	sel := render.Selection{
		SearchTerm: r.URL.Query().Get("q"),
		Selected:   r.URL.Query().Get("highlight"),
	}

	if sel.SearchTerm == "" && sel.Selected != "" {
		if _, ok := h.dir.Find(sel.Selected); !ok {
			h.writeError(w, http.StatusNotFound, "unknown location")
			return
		}
	}

	req := h.composer.Compose(sel)
	if req.State == render.StateHighlighted {
		h.publishHighlight(r.Context(), req)
	}
	h.writeJSON(w, http.StatusOK, req)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// publishHighlight emits a telemetry event for a highlighted render. Failures
// are logged and never affect the response.
func (h *Handler) publishHighlight(ctx context.Context, req render.Request) {
	if h.publisher == nil {
		return
	}
	event := events.HighlightEvent{
		Name:   req.Highlight,
		Center: req.Center,
		Zoom:   req.Zoom,
		At:     time.Now().UTC(),
	}
	if err := h.publisher.Publish(ctx, event.Name, event); err != nil {
		h.logger.Error("failed to publish highlight event", "name", event.Name, "error", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
