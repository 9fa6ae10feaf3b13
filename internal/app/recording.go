package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/metrics"
	"github.com/ayusman/handycalc/internal/replay"
	"github.com/ayusman/handycalc/internal/session"
	"github.com/ayusman/handycalc/internal/store"
)

// recordingFlushSize is how many frames are buffered before writing.
const recordingFlushSize = 30

type activeRecording struct {
	rec     *store.Recording
	start   time.Time
	started bool
	pending []store.RecordedFrame
}

// StartRecording begins saving every processed frame under name.
func (a *App) StartRecording(name string) (*store.Recording, error) {
	if a.config.Store == nil {
		return nil, ErrNoStore
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rec != nil {
		return nil, ErrRecordingActive
	}

	rec := &store.Recording{Name: name}
	if err := a.config.Store.Recordings().Create(rec); err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	a.rec = &activeRecording{rec: rec}

	a.log.Info(context.Background(), "recording started",
		logger.String("id", rec.ID), logger.String("name", name))
	return rec, nil
}

// StopRecording writes buffered frames and ends the recording.
func (a *App) StopRecording() (*store.Recording, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rec == nil {
		return nil, ErrNotRecording
	}
	active := a.rec
	a.rec = nil

	if err := a.flushLocked(active); err != nil {
		return nil, err
	}

	rec, err := a.config.Store.Recordings().GetByID(active.rec.ID)
	if err != nil {
		return nil, fmt.Errorf("reload recording: %w", err)
	}

	a.log.Info(context.Background(), "recording stopped",
		logger.String("id", rec.ID), logger.Int("frames", rec.Frames))
	return rec, nil
}

// Recording returns the recording in progress, if any.
func (a *App) Recording() (*store.Recording, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rec == nil {
		return nil, false
	}
	return a.rec.rec, true
}

// ReplayRecording runs a stored recording through a fresh session that uses
// the current hold duration.
func (a *App) ReplayRecording(id string) (replay.Result, error) {
	if a.config.Store == nil {
		return replay.Result{}, ErrNoStore
	}
	if _, err := a.config.Store.Recordings().GetByID(id); err != nil {
		return replay.Result{}, err
	}

	frames, err := replay.LoadRecording(a.config.Store.Recordings(), id)
	if err != nil {
		return replay.Result{}, err
	}
	return replay.Run(frames, session.WithHoldDuration(a.HoldDuration())), nil
}

// recordFrame appends a frame to the active recording. Callers hold a.mu.
func (a *App) recordFrame(hands []detector.HandLandmarks, now time.Time) {
	if a.rec == nil {
		return
	}
	if !a.rec.started {
		a.rec.start = now
		a.rec.started = true
	}

	rf, err := replay.EncodeFrame(now.Sub(a.rec.start), hands)
	if err != nil {
		a.log.Error(context.Background(), "error encoding frame", logger.Error(err))
		return
	}
	a.rec.pending = append(a.rec.pending, rf)

	if len(a.rec.pending) >= recordingFlushSize {
		if err := a.flushLocked(a.rec); err != nil {
			a.log.Error(context.Background(), "error saving recording frames", logger.Error(err))
		}
	}
}

func (a *App) flushLocked(active *activeRecording) error {
	if len(active.pending) == 0 {
		return nil
	}
	n := len(active.pending)
	if err := a.config.Store.Recordings().AppendFrames(active.rec.ID, active.pending); err != nil {
		return fmt.Errorf("save frames: %w", err)
	}
	active.pending = active.pending[:0]
	metrics.RecordRecordingFrames(n)
	return nil
}
