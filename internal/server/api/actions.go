// Package api provides HTTP API handlers for the Mudra engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/catalog"
	"github.com/ayusman/mudra/internal/pose"
	"github.com/ayusman/mudra/internal/store"
)

// ActionsHandler handles HTTP requests for sign action resources. Reads
// are served from the in-memory catalog, which is the engine's view;
// writes persist to the store and become visible on the next start, since
// the catalog is read-only for the lifetime of the process.
type ActionsHandler struct {
	catalog *catalog.Catalog
	store   *store.Store
}

// NewActionsHandler creates a new ActionsHandler. The store may be nil,
// in which case write endpoints report that persistence is unavailable.
func NewActionsHandler(c *catalog.Catalog, s *store.Store) *ActionsHandler {
	return &ActionsHandler{catalog: c, store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *ActionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/actions or /api/actions/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/actions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createActionRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Duration    float64       `json:"duration"`
	Keyframes   int           `json:"keyframes"`
	Difficulty  int           `json:"difficulty"`
	Tags        []string      `json:"tags"`
	Hand        pose.HandPose `json:"hand"`
}

type listActionsResponse struct {
	Actions []*pose.SignAction `json:"actions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/actions. Optional query parameters narrow the
// result: category, q (substring search) and max_difficulty.
func (h *ActionsHandler) list(w http.ResponseWriter, r *http.Request) {
	var actions []*pose.SignAction

	query := r.URL.Query()
	switch {
	case query.Get("q") != "":
		actions = h.catalog.Search(query.Get("q"))
	case query.Get("category") != "":
		actions = h.catalog.ByCategory(query.Get("category"))
	case query.Get("max_difficulty") != "":
		max, err := strconv.Atoi(query.Get("max_difficulty"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid max_difficulty")
			return
		}
		actions = h.catalog.ByMaxDifficulty(max)
	default:
		actions = h.catalog.List()
	}

	if actions == nil {
		actions = []*pose.SignAction{}
	}
	writeJSON(w, http.StatusOK, listActionsResponse{Actions: actions})
}

// get handles GET /api/actions/{id} and returns a single action.
func (h *ActionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	action, err := h.catalog.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Action not found")
		return
	}
	writeJSON(w, http.StatusOK, action)
}

// create handles POST /api/actions and persists a new action definition.
// The definition enters the live catalog on the next start.
func (h *ActionsHandler) create(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence not configured")
		return
	}

	var req createActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Duration <= 0 {
		writeError(w, http.StatusBadRequest, "Duration must be positive")
		return
	}

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = 1
	}

	action := &pose.SignAction{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Hand:        normalizeHand(req.Hand),
		Duration:    req.Duration,
		Keyframes:   req.Keyframes,
		Difficulty:  difficulty,
		Tags:        req.Tags,
	}

	if err := h.store.Actions().Create(action); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create action")
		return
	}

	writeJSON(w, http.StatusCreated, action)
}

// delete handles DELETE /api/actions/{id} and removes a stored action.
func (h *ActionsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Persistence not configured")
		return
	}

	err := h.store.Actions().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Action not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete action")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// normalizeHand retags each finger slot and defaults a zero palm rotation
// to the identity, so hand poses sent over the wire are always valid.
func normalizeHand(h pose.HandPose) pose.HandPose {
	for i := range h.Fingers {
		h.Fingers[i].Finger = pose.Finger(i)
		if h.Fingers[i].State == "" {
			h.Fingers[i].State = pose.StateExtended
		}
	}
	if (h.Palm.Rotation == pose.Quat{}) {
		h.Palm.Rotation = pose.QuatIdentity()
	}
	return h
}
