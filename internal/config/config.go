// Package config defines process configuration and its loading.
package config

import (
	"fmt"
	"time"
)

// Hold duration bounds in seconds.
const (
	MinHoldDurationSec     = 0.5
	MaxHoldDurationSec     = 3.0
	DefaultHoldDurationSec = 1.5
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the SQLite database. Empty means ~/.handycalc.
	DataDir string `koanf:"data_dir"`

	// StaticDir is served at "/" when set.
	StaticDir string `koanf:"static_dir"`

	// CameraID selects the capture device.
	CameraID int `koanf:"camera_id"`

	// Mirror flips frames horizontally so the preview reads like a mirror.
	Mirror bool `koanf:"mirror"`

	// HoldDurationSec is how long a gesture must be held before it is confirmed.
	HoldDurationSec float64 `koanf:"hold_duration_sec"`

	// Passed through to the landmark model.
	MaxHands               int     `koanf:"max_hands"`
	MinDetectionConfidence float64 `koanf:"min_detection_confidence"`
	MinTrackingConfidence  float64 `koanf:"min_tracking_confidence"`

	// Frame rates while no hands are seen and while hands are tracked.
	IdleFPS   int `koanf:"idle_fps"`
	ActiveFPS int `koanf:"active_fps"`

	// Tray enables the system tray menu.
	Tray bool `koanf:"tray"`

	// Camera enables frame capture. Disable to run the API and replay only.
	Camera bool `koanf:"camera"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":8080",
		CameraID:               0,
		Mirror:                 true,
		HoldDurationSec:        DefaultHoldDurationSec,
		MaxHands:               2,
		MinDetectionConfidence: 0.7,
		MinTrackingConfidence:  0.7,
		IdleFPS:                5,
		ActiveFPS:              15,
		Tray:                   false,
		Camera:                 true,
	}
}

// HoldDuration returns HoldDurationSec as a time.Duration.
func (c *Config) HoldDuration() time.Duration {
	return SecondsToDuration(c.HoldDurationSec)
}

// Validate checks ranges and required fields.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if err := ValidateHoldDuration(c.HoldDurationSec); err != nil {
		return err
	}
	if c.MaxHands < 1 {
		return fmt.Errorf("%w: max_hands must be at least 1, got %d", ErrInvalidConfig, c.MaxHands)
	}
	if !inUnitRange(c.MinDetectionConfidence) || !inUnitRange(c.MinTrackingConfidence) {
		return fmt.Errorf("%w: confidence thresholds must be within [0, 1]", ErrInvalidConfig)
	}
	if c.IdleFPS <= 0 || c.ActiveFPS <= 0 {
		return fmt.Errorf("%w: frame rates must be positive", ErrInvalidConfig)
	}
	return nil
}

// ValidateHoldDuration checks a hold duration against [0.5, 3.0] seconds.
func ValidateHoldDuration(sec float64) error {
	if sec < MinHoldDurationSec || sec > MaxHoldDurationSec {
		return fmt.Errorf("%w: hold_duration_sec must be within [%.1f, %.1f], got %g",
			ErrInvalidConfig, MinHoldDurationSec, MaxHoldDurationSec, sec)
	}
	return nil
}

// SecondsToDuration converts fractional seconds to a Duration.
func SecondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
