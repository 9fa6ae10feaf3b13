package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/handycalc/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	config.EnvFile,
	"HANDYCALC_ADDR",
	"HANDYCALC_HOLD_DURATION_SEC",
	"HANDYCALC_MAX_HANDS",
	"HANDYCALC_TRAY",
	"HANDYCALC_LOG_LEVEL",
	"HANDYCALC_MIRROR",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "handycalc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then the defaults are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.HoldDurationSec, convey.ShouldEqual, 1.5)
				convey.So(cfg.HoldDuration(), convey.ShouldEqual, 1500*time.Millisecond)
				convey.So(cfg.MaxHands, convey.ShouldEqual, 2)
				convey.So(cfg.MinDetectionConfidence, convey.ShouldEqual, 0.7)
				convey.So(cfg.IdleFPS, convey.ShouldEqual, 5)
				convey.So(cfg.ActiveFPS, convey.ShouldEqual, 15)
				convey.So(cfg.Camera, convey.ShouldBeTrue)
				convey.So(cfg.Mirror, convey.ShouldBeTrue)
				convey.So(cfg.Tray, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("HANDYCALC_ADDR", ":9999")
			_ = os.Setenv("HANDYCALC_HOLD_DURATION_SEC", "2.25")
			_ = os.Setenv("HANDYCALC_TRAY", "true")
			_ = os.Setenv("HANDYCALC_MIRROR", "false")

			cfg, err := config.Load()

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9999")
				convey.So(cfg.HoldDurationSec, convey.ShouldEqual, 2.25)
				convey.So(cfg.Tray, convey.ShouldBeTrue)
				convey.So(cfg.Mirror, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			path := writeConfigFile(t, "addr: \":7070\"\nhold_duration_sec: 0.8\nmax_hands: 4\nlog_level: debug\n")
			_ = os.Setenv(config.EnvFile, path)

			cfg, err := config.Load()

			convey.Convey("Then the file values are loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.HoldDurationSec, convey.ShouldEqual, 0.8)
				convey.So(cfg.MaxHands, convey.ShouldEqual, 4)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})

			convey.Convey("And the environment still wins", func() {
				_ = os.Setenv("HANDYCALC_ADDR", ":6060")
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.HoldDurationSec, convey.ShouldEqual, 0.8)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_ = os.Setenv(config.EnvFile, filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the hold duration is out of range", func() {
			_ = os.Setenv("HANDYCALC_HOLD_DURATION_SEC", "5")

			_, err := config.Load()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.So(cfg.Validate(), convey.ShouldBeNil)

		convey.Convey("Empty addr is rejected", func() {
			cfg.Addr = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Hold duration bounds are inclusive", func() {
			convey.So(config.ValidateHoldDuration(0.5), convey.ShouldBeNil)
			convey.So(config.ValidateHoldDuration(3.0), convey.ShouldBeNil)
			convey.So(config.ValidateHoldDuration(0.49), convey.ShouldNotBeNil)
			convey.So(config.ValidateHoldDuration(3.01), convey.ShouldNotBeNil)
		})

		convey.Convey("Confidence outside [0, 1] is rejected", func() {
			cfg.MinTrackingConfidence = 1.2
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("Non-positive frame rates are rejected", func() {
			cfg.IdleFPS = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("Zero hands is rejected", func() {
			cfg.MaxHands = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
