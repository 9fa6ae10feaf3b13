package app

import (
	"context"
	"errors"
	"time"

	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/logger"
)

// Start opens the camera and begins the frame loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.config.IdleFPS)
	a.active = false

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	a.log.Info(context.Background(), "detection pipeline started", logger.Int("fps", a.config.IdleFPS))
	return nil
}

// Stop halts the frame loop and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}

	ctx := context.Background()
	if _, err := a.StopRecording(); err != nil && !errors.Is(err, ErrNotRecording) {
		a.log.Error(ctx, "error saving recording", logger.Error(err))
	}
	if err := a.camera.Close(); err != nil {
		a.log.Error(ctx, "error closing camera", logger.Error(err))
	}
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			a.log.Error(ctx, "error closing detector", logger.Error(err))
		}
	}

	a.log.Info(ctx, "detection pipeline stopped")
}

// runPipeline ticks at the idle rate until hands appear, then at the active
// rate until no hands have been seen for IdleTimeout.
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(frameInterval(a.config.IdleFPS))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			if !a.IsEnabled() {
				continue
			}
			hands := a.readHands()
			a.ProcessHands(hands, now)

			if fps, changed := a.updateMode(len(hands) > 0, now); changed {
				a.camera.SetFPS(fps)
				ticker.Reset(frameInterval(fps))
			}
		}
	}
}

// readHands captures and detects one frame. A missing frame or a detector
// error counts as no hands.
func (a *App) readHands() []detector.HandLandmarks {
	ctx := context.Background()

	frame, err := a.camera.ReadFrame()
	if err != nil {
		a.log.Debug(ctx, "no frame", logger.Error(err))
		return nil
	}
	defer frame.Close()

	d := a.Detector()
	if d == nil {
		return nil
	}
	hands, err := d.Detect(frame)
	if err != nil {
		a.log.Error(ctx, "error detecting hands", logger.Error(err))
		return nil
	}
	return hands
}

// updateMode tracks hand presence and reports the frame rate to switch to.
func (a *App) updateMode(handsSeen bool, now time.Time) (fps int, changed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := context.Background()
	if handsSeen {
		a.lastHands = now
		if !a.active {
			a.active = true
			a.log.Info(ctx, "switched to active mode", logger.Int("fps", a.config.ActiveFPS))
			return a.config.ActiveFPS, true
		}
		return a.config.ActiveFPS, false
	}

	if a.active && now.Sub(a.lastHands) > IdleTimeout {
		a.active = false
		a.log.Info(ctx, "switched to idle mode", logger.Int("fps", a.config.IdleFPS))
		return a.config.IdleFPS, true
	}
	if a.active {
		return a.config.ActiveFPS, false
	}
	return a.config.IdleFPS, false
}

// Active reports whether the loop is running at the active rate.
func (a *App) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = IdleFPS
	}
	return time.Second / time.Duration(fps)
}
