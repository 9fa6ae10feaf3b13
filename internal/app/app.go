// Package app wires the camera, the landmark detector and the calculator
// session into a frame loop and fans snapshots out to displays.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/ayusman/handycalc/internal/capture"
	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/gesture"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/metrics"
	"github.com/ayusman/handycalc/internal/session"
	"github.com/ayusman/handycalc/internal/store"
)

// Pipeline timing defaults.
const (
	// IdleFPS is the frame rate while no hands are in view.
	IdleFPS = 5
	// ActiveFPS is the frame rate while hands are in view.
	ActiveFPS = 15
	// IdleTimeout is how long without hands before dropping back to IdleFPS.
	IdleTimeout = gesture.IdleTimeout

	subscriberBuffer = 8
)

// Config holds configuration options for the application.
type Config struct {
	Store *store.Store

	// Camera and Detector override the devices built from CameraConfig and
	// DetectorConfig.
	Camera         capture.Camera
	Detector       detector.Detector
	CameraConfig   capture.Config
	DetectorConfig detector.Config

	IdleFPS      int
	ActiveFPS    int
	HoldDuration time.Duration

	Logger logger.Logger
}

// App runs the gesture calculator.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	log      logger.Logger

	mu      sync.Mutex
	session *session.Session
	enabled bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	active    bool
	lastHands time.Time

	subs    map[int]chan session.Snapshot
	nextSub int

	rec *activeRecording
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.IdleFPS <= 0 {
		config.IdleFPS = IdleFPS
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = ActiveFPS
	}
	log := config.Logger
	if log == nil {
		log = logger.Named("app")
	}

	a := &App{
		config:  config,
		camera:  config.Camera,
		log:     log,
		enabled: true,
		subs:    make(map[int]chan session.Snapshot),
		session: session.New(
			session.WithHoldDuration(config.HoldDuration),
			session.WithLogger(log.Named("session")),
		),
	}

	if a.camera == nil {
		camCfg := config.CameraConfig
		camCfg.FPS = config.IdleFPS
		a.camera = capture.NewCamera(camCfg)
	}

	a.detector = config.Detector
	if a.detector == nil {
		detCfg := config.DetectorConfig
		if detCfg.MaxHands == 0 {
			detCfg = detector.DefaultConfig()
		}
		// Try MediaPipe first, fall back to mock detector
		if mp, err := detector.NewMediaPipeDetector(detCfg); err == nil {
			a.detector = mp
			log.Info(context.Background(), "using MediaPipe hand detection")
		} else {
			log.Warn(context.Background(), "MediaPipe not available, using mock detector", logger.Error(err))
			a.detector = detector.NewMockDetector()
		}
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// ProcessHands runs one frame cycle for hands observed at now and pushes
// the resulting snapshot to subscribers.
func (a *App) ProcessHands(hands []detector.HandLandmarks, now time.Time) session.Snapshot {
	a.mu.Lock()
	a.session.Process(hands, now)
	a.recordFrame(hands, now)
	snap := a.session.Snapshot(now)
	a.mu.Unlock()

	a.publish(snap)
	return snap
}

// Snapshot returns the current display state.
func (a *App) Snapshot() session.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Snapshot(time.Now())
}

// Clear empties the expression and notifies subscribers.
func (a *App) Clear() session.Snapshot {
	return a.command(func(s *session.Session) { s.Clear() })
}

// Evaluate computes the expression and notifies subscribers.
func (a *App) Evaluate() session.Snapshot {
	return a.command(func(s *session.Session) { s.Evaluate() })
}

// SetHoldDuration changes the confirmation delay.
func (a *App) SetHoldDuration(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.SetHoldDuration(d)
}

// HoldDuration returns the confirmation delay.
func (a *App) HoldDuration() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.HoldDuration()
}

func (a *App) command(fn func(*session.Session)) session.Snapshot {
	a.mu.Lock()
	fn(a.session)
	snap := a.session.Snapshot(time.Now())
	a.mu.Unlock()

	a.publish(snap)
	return snap
}

// Subscribe registers for snapshots. Slow subscribers miss snapshots rather
// than block the frame loop. The returned func unsubscribes.
func (a *App) Subscribe() (<-chan session.Snapshot, func()) {
	ch := make(chan session.Snapshot, subscriberBuffer)

	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = ch
	metrics.UpdateSubscribers(len(a.subs))
	a.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.subs, id)
			metrics.UpdateSubscribers(len(a.subs))
			a.mu.Unlock()
			close(ch)
		})
	}
}

func (a *App) publish(snap session.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, ch := range a.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
