package api

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/handycalc/internal/app"
	"github.com/ayusman/handycalc/internal/capture"
	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// newTestApp creates an App on a mock camera and detector.
func newTestApp(t *testing.T, s *store.Store) *app.App {
	t.Helper()
	return app.New(app.Config{
		Store:    s,
		Camera:   capture.NewMockCamera(0),
		Detector: detector.NewMockDetector(),
		Logger:   logger.Nop(),
	})
}

// hold feeds a pose to the app at 10 FPS for 1.6s starting at *now.
func hold(t *testing.T, a *app.App, now *time.Time, names ...string) {
	t.Helper()
	hands := make([]detector.HandLandmarks, 0, len(names))
	for _, name := range names {
		h, ok := detector.Preset(name)
		if !ok {
			t.Fatalf("missing preset %q", name)
		}
		hands = append(hands, h)
	}
	for i := 0; i < 16; i++ {
		a.ProcessHands(hands, *now)
		*now = now.Add(100 * time.Millisecond)
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}
