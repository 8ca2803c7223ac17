package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/catalog"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/pose"
	"github.com/ayusman/mudra/internal/sequence"
)

// PlaybackHandler exposes the playback controller over HTTP: play and
// queue requests resolved against the catalog, transport controls, and a
// status snapshot.
type PlaybackHandler struct {
	catalog *catalog.Catalog
	player  *player.Controller
}

// NewPlaybackHandler creates a new PlaybackHandler.
func NewPlaybackHandler(c *catalog.Catalog, p *player.Controller) *PlaybackHandler {
	return &PlaybackHandler{catalog: c, player: p}
}

// playRequest asks for one or more catalog actions to be played in order.
// The optional rhythm block re-times the sequence and optimize collapses
// visually redundant neighbors before enqueueing.
type playRequest struct {
	ActionIDs          []string `json:"action_ids"`
	Speed              float64  `json:"speed"`
	Smoothness         float64  `json:"smoothness"`
	Loop               bool     `json:"loop"`
	EaseIn             bool     `json:"ease_in"`
	EaseOut            bool     `json:"ease_out"`
	Transition         *bool    `json:"transition"`
	TransitionDuration float64  `json:"transition_duration"`
	Optimize           bool     `json:"optimize"`
	Rhythm             *struct {
		Pattern   string  `json:"pattern"`
		BaseSpeed float64 `json:"base_speed"`
		Variation float64 `json:"variation"`
	} `json:"rhythm"`
}

type playResponse struct {
	RequestID string  `json:"request_id"`
	Items     int     `json:"items"`
	Duration  float64 `json:"duration"`
}

type seekRequest struct {
	Time float64 `json:"time"`
}

type speedRequest struct {
	Speed float64 `json:"speed"`
}

// ServeHTTP routes playback control requests.
func (h *PlaybackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	op := strings.TrimPrefix(r.URL.Path, "/api/playback")
	op = strings.Trim(op, "/")

	if op == "status" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, h.player.Status())
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch op {
	case "play":
		h.play(w, r, false)
	case "queue":
		h.play(w, r, true)
	case "pause":
		h.player.Pause()
		writeJSON(w, http.StatusOK, h.player.Status())
	case "resume":
		h.player.Resume()
		writeJSON(w, http.StatusOK, h.player.Status())
	case "stop":
		h.player.Stop()
		writeJSON(w, http.StatusOK, h.player.Status())
	case "seek":
		h.seek(w, r)
	case "speed":
		h.speed(w, r)
	default:
		writeError(w, http.StatusNotFound, "Unknown playback operation")
	}
}

// play handles POST /api/playback/play and /api/playback/queue. A play
// request stops whatever is running first; a queue request appends.
func (h *PlaybackHandler) play(w http.ResponseWriter, r *http.Request, queueOnly bool) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.ActionIDs) == 0 {
		writeError(w, http.StatusBadRequest, "action_ids is required")
		return
	}

	actions, err := h.catalog.Resolve(req.ActionIDs)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown action id")
		return
	}

	params := pose.Params{
		Speed:      req.Speed,
		Smoothness: req.Smoothness,
		Loop:       req.Loop,
		EaseIn:     req.EaseIn,
		EaseOut:    req.EaseOut,
	}
	if req.Smoothness == 0 {
		params.Smoothness = pose.DefaultSmoothness
	}
	params = params.Clamped()

	seq := sequence.New(actions, params)

	if req.Rhythm != nil {
		seq = sequence.ApplyRhythm(seq, sequence.RhythmConfig{
			Pattern:   sequence.RhythmPattern(req.Rhythm.Pattern),
			BaseSpeed: req.Rhythm.BaseSpeed,
			Variation: req.Rhythm.Variation,
		})
	}
	if req.Optimize {
		seq = sequence.Optimize(seq, sequence.DefaultSimilarityThreshold)
	}

	transition := true
	if req.Transition != nil {
		transition = *req.Transition
	}
	transitionDuration := req.TransitionDuration
	if transitionDuration <= 0 {
		transitionDuration = player.DefaultTransitionDuration
	}

	if !queueOnly {
		h.player.Stop()
	}
	if !h.player.EnqueueSequence(seq, transition, transitionDuration) {
		writeError(w, http.StatusBadRequest, "Sequence failed validation")
		return
	}

	writeJSON(w, http.StatusAccepted, playResponse{
		RequestID: uuid.New().String(),
		Items:     len(seq),
		Duration:  sequence.TotalDuration(seq),
	})
}

// seek handles POST /api/playback/seek.
func (h *PlaybackHandler) seek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.player.SeekTo(req.Time)
	writeJSON(w, http.StatusOK, h.player.Status())
}

// speed handles POST /api/playback/speed.
func (h *PlaybackHandler) speed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.player.SetPlaybackSpeed(req.Speed)
	writeJSON(w, http.StatusOK, h.player.Status())
}
