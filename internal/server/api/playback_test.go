package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/catalog"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/pose"
)

// nullMixer satisfies player.Mixer so playback can start under test.
type nullMixer struct{}

func (nullMixer) Advance(float64)     {}
func (nullMixer) Apply(pose.Keyframe) {}

func newPlaybackTestHandler() (*PlaybackHandler, *player.Controller) {
	ctrl := player.New()
	ctrl.SetMixer(nullMixer{})
	h := NewPlaybackHandler(catalog.New(catalog.Builtin()), ctrl)
	return h, ctrl
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlaybackHandler_Play(t *testing.T) {
	h, ctrl := newPlaybackTestHandler()

	rec := post(h, "/api/playback/play", `{"action_ids": ["hello", "good"]}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	var resp playResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("expected a generated request id")
	}
	if resp.Items != 2 {
		t.Errorf("items = %d, want 2", resp.Items)
	}
	if resp.Duration <= 0 {
		t.Errorf("duration = %f, want > 0", resp.Duration)
	}

	if got := ctrl.Status().ActionID; got != "hello" {
		t.Errorf("current action = %q, want %q", got, "hello")
	}
}

func TestPlaybackHandler_PlayUnknownAction(t *testing.T) {
	h, _ := newPlaybackTestHandler()

	rec := post(h, "/api/playback/play", `{"action_ids": ["bogus"]}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestPlaybackHandler_PlayRequiresActionIDs(t *testing.T) {
	h, _ := newPlaybackTestHandler()

	rec := post(h, "/api/playback/play", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPlaybackHandler_PlayWithRhythm(t *testing.T) {
	h, ctrl := newPlaybackTestHandler()

	body := `{
		"action_ids": ["hello", "you", "good"],
		"rhythm": {"pattern": "accelerating", "base_speed": 1, "variation": 1}
	}`
	rec := post(h, "/api/playback/play", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	// First item plays, the other two wait in the queue
	if got := ctrl.QueueLen(); got != 2 {
		t.Errorf("queue length = %d, want 2", got)
	}
}

func TestPlaybackHandler_QueueAppends(t *testing.T) {
	h, ctrl := newPlaybackTestHandler()

	post(h, "/api/playback/play", `{"action_ids": ["hello"]}`)
	post(h, "/api/playback/queue", `{"action_ids": ["good"]}`)

	// Queue does not interrupt the current action
	if got := ctrl.Status().ActionID; got != "hello" {
		t.Errorf("current action = %q, want %q", got, "hello")
	}
	if got := ctrl.QueueLen(); got != 1 {
		t.Errorf("queue length = %d, want 1", got)
	}
}

func TestPlaybackHandler_TransportControls(t *testing.T) {
	h, ctrl := newPlaybackTestHandler()

	post(h, "/api/playback/play", `{"action_ids": ["hello"], "transition": false}`)
	if ctrl.State() != player.StatePlaying {
		t.Fatalf("state = %q, want %q", ctrl.State(), player.StatePlaying)
	}

	post(h, "/api/playback/pause", ``)
	if ctrl.State() != player.StatePaused {
		t.Errorf("state = %q, want %q", ctrl.State(), player.StatePaused)
	}

	post(h, "/api/playback/resume", ``)
	if ctrl.State() != player.StatePlaying {
		t.Errorf("state = %q, want %q", ctrl.State(), player.StatePlaying)
	}

	rec := post(h, "/api/playback/speed", `{"speed": 2.0}`)
	if rec.Code != http.StatusOK {
		t.Errorf("speed status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := ctrl.PlaybackSpeed(); got != 2.0 {
		t.Errorf("speed = %f, want 2.0", got)
	}

	post(h, "/api/playback/seek", `{"time": 0.5}`)
	if got := ctrl.Status().Clock; got != 0.5 {
		t.Errorf("clock = %f, want 0.5", got)
	}

	post(h, "/api/playback/stop", ``)
	if ctrl.State() != player.StateIdle {
		t.Errorf("state = %q, want %q", ctrl.State(), player.StateIdle)
	}
}

func TestPlaybackHandler_Status(t *testing.T) {
	h, _ := newPlaybackTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/playback/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var snap player.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if snap.State != player.StateIdle {
		t.Errorf("state = %q, want %q", snap.State, player.StateIdle)
	}
}

func TestPlaybackHandler_UnknownOperation(t *testing.T) {
	h, _ := newPlaybackTestHandler()

	rec := post(h, "/api/playback/rewind", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
