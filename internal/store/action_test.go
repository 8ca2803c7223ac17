package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/pose"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAction() *pose.SignAction {
	return &pose.SignAction{
		ID:          "wave",
		Name:        "Wave",
		Description: "Open palm waving",
		Category:    "greetings",
		Hand:        pose.OpenPalmHand(),
		Duration:    1.2,
		Keyframes:   24,
		Difficulty:  2,
		Tags:        []string{"greeting", "wave"},
	}
}

func TestActionRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	action := sampleAction()
	if err := s.Actions().Create(action); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Actions().GetByID("wave")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Name != action.Name {
		t.Errorf("name = %q, want %q", got.Name, action.Name)
	}
	if got.Duration != action.Duration {
		t.Errorf("duration = %f, want %f", got.Duration, action.Duration)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "greeting" {
		t.Errorf("tags = %v, want %v", got.Tags, action.Tags)
	}

	// The full hand pose round-trips: every finger and the palm
	for i := 0; i < pose.NumFingers; i++ {
		if got.Hand.Fingers[i] != action.Hand.Fingers[i] {
			t.Errorf("finger %d = %+v, want %+v", i, got.Hand.Fingers[i], action.Hand.Fingers[i])
		}
	}
	if got.Hand.Palm != action.Hand.Palm {
		t.Errorf("palm = %+v, want %+v", got.Hand.Palm, action.Hand.Palm)
	}

	if !got.Valid() {
		t.Error("loaded action should be valid")
	}
}

func TestActionRepository_GetByName(t *testing.T) {
	s := newTestStore(t)

	if err := s.Actions().Create(sampleAction()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Actions().GetByName("Wave")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got.ID != "wave" {
		t.Errorf("id = %q, want %q", got.ID, "wave")
	}
}

func TestActionRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Actions().GetByID("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestActionRepository_List(t *testing.T) {
	s := newTestStore(t)

	a := sampleAction()
	b := sampleAction()
	b.ID = "fist"
	b.Name = "Fist"
	b.Hand = pose.FistHand()

	if err := s.Actions().Create(a); err != nil {
		t.Fatalf("Create(a) error = %v", err)
	}
	if err := s.Actions().Create(b); err != nil {
		t.Fatalf("Create(b) error = %v", err)
	}

	actions, err := s.Actions().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("len = %d, want 2", len(actions))
	}
}

func TestActionRepository_Update(t *testing.T) {
	s := newTestStore(t)

	action := sampleAction()
	if err := s.Actions().Create(action); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	action.Duration = 2.5
	action.Hand = pose.FistHand()
	if err := s.Actions().Update(action); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Actions().GetByID("wave")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Duration != 2.5 {
		t.Errorf("duration = %f, want 2.5", got.Duration)
	}
	if got.Hand.Fingers[pose.Index].State != pose.StateFolded {
		t.Error("finger rows were not rewritten on update")
	}

	missing := sampleAction()
	missing.ID = "ghost"
	if err := s.Actions().Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestActionRepository_Delete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Actions().Create(sampleAction()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Actions().Delete("wave"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Finger rows cascade with the action
	var fingers int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM action_fingers WHERE action_id = 'wave'`).Scan(&fingers); err != nil {
		t.Fatalf("count fingers: %v", err)
	}
	if fingers != 0 {
		t.Errorf("finger rows = %d, want 0 after cascade", fingers)
	}

	if err := s.Actions().Delete("wave"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestActionRepository_Seed(t *testing.T) {
	s := newTestStore(t)

	seed := []*pose.SignAction{sampleAction()}
	if err := s.Actions().Seed(seed); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	n, err := s.Actions().Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}

	// Seeding again on a non-empty table is a no-op
	other := sampleAction()
	other.ID = "other"
	other.Name = "Other"
	if err := s.Actions().Seed([]*pose.SignAction{other}); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	n, _ = s.Actions().Count()
	if n != 1 {
		t.Errorf("count = %d, want 1 after no-op seed", n)
	}
}
