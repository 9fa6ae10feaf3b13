package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestRecordingRepository_Create(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{Name: "one plus one"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Create() should assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Create() should set CreatedAt")
	}

	got, err := repo.GetByID(rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "one plus one" || got.Frames != 0 {
		t.Errorf("GetByID() = %+v", got)
	}
}

func TestRecordingRepository_CreateKeepsID(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{ID: "fixed", Name: "x"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", rec.ID)
	}

	if err := repo.Create(&Recording{ID: "fixed", Name: "y"}); err == nil {
		t.Error("Create() with duplicate ID should fail")
	}
}

func TestRecordingRepository_GetByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Recordings().GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestRecordingRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() on empty store returned %d recordings", len(list))
	}

	for _, name := range []string{"a", "b", "c"} {
		if err := repo.Create(&Recording{Name: name}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	list, err = repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Errorf("List() returned %d recordings, want 3", len(list))
	}
}

func TestRecordingRepository_AppendFrames(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{Name: "frames"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first := []RecordedFrame{
		{Offset: 0, Hands: json.RawMessage(`[{"points":[],"handedness":"Right","score":0.9}]`)},
		{Offset: 100*time.Millisecond + 500*time.Microsecond},
	}
	if err := repo.AppendFrames(rec.ID, first); err != nil {
		t.Fatalf("AppendFrames() error = %v", err)
	}
	second := []RecordedFrame{{Offset: 200 * time.Millisecond, Hands: json.RawMessage(`[]`)}}
	if err := repo.AppendFrames(rec.ID, second); err != nil {
		t.Fatalf("AppendFrames() error = %v", err)
	}
	if err := repo.AppendFrames(rec.ID, nil); err != nil {
		t.Fatalf("AppendFrames(nil) error = %v", err)
	}

	frames, err := repo.Frames(rec.ID)
	if err != nil {
		t.Fatalf("Frames() error = %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Frames() returned %d, want 3", len(frames))
	}
	want := []time.Duration{0, 100*time.Millisecond + 500*time.Microsecond, 200 * time.Millisecond}
	for i, f := range frames {
		if f.Sequence != i {
			t.Errorf("frame %d sequence = %d", i, f.Sequence)
		}
		if f.Offset != want[i] {
			t.Errorf("frame %d offset = %v, want %v", i, f.Offset, want[i])
		}
	}
	if string(frames[1].Hands) != "[]" {
		t.Errorf("empty hands stored as %s, want []", frames[1].Hands)
	}

	got, _ := repo.GetByID(rec.ID)
	if got.Frames != 3 {
		t.Errorf("Frames count = %d, want 3", got.Frames)
	}
}

func TestRecordingRepository_AppendFramesMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Recordings().AppendFrames("missing", []RecordedFrame{{Offset: 0}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("AppendFrames() error = %v, want ErrNotFound", err)
	}
}

func TestRecordingRepository_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{Name: "gone"}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AppendFrames(rec.ID, []RecordedFrame{{Offset: 0}, {Offset: 66 * time.Millisecond}}); err != nil {
		t.Fatalf("AppendFrames() error = %v", err)
	}

	if err := repo.Delete(rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v", err)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM recording_frames WHERE recording_id = ?`, rec.ID).Scan(&count); err != nil {
		t.Fatalf("count frames: %v", err)
	}
	if count != 0 {
		t.Errorf("%d frames left after delete", count)
	}

	if err := repo.Delete(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
