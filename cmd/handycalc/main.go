package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ayusman/handycalc/internal/app"
	"github.com/ayusman/handycalc/internal/capture"
	"github.com/ayusman/handycalc/internal/config"
	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/server"
	"github.com/ayusman/handycalc/internal/store"
	"github.com/ayusman/handycalc/internal/tray"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "handycalc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger.Init()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	dataDir, err := resolveDataDir(cfg.DataDir)
	if err != nil {
		return err
	}
	st, err := store.New(filepath.Join(dataDir, "handycalc.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	hold := cfg.HoldDuration()
	if sec, err := st.Settings().GetFloat(store.SettingHoldDuration); err == nil {
		if config.ValidateHoldDuration(sec) == nil {
			hold = config.SecondsToDuration(sec)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Warn(ctx, "error reading saved hold duration", logger.Error(err))
	}

	calc := app.New(app.Config{
		Store: st,
		CameraConfig: capture.Config{
			DeviceID: cfg.CameraID,
			Mirror:   cfg.Mirror,
		},
		DetectorConfig: detector.Config{
			MaxHands:        cfg.MaxHands,
			MinConfidence:   cfg.MinDetectionConfidence,
			MinTrackingConf: cfg.MinTrackingConfidence,
		},
		IdleFPS:      cfg.IdleFPS,
		ActiveFPS:    cfg.ActiveFPS,
		HoldDuration: hold,
		Logger:       logger.Named("app"),
	})

	if cfg.Camera {
		if err := calc.Start(); err != nil {
			log.Error(ctx, "camera unavailable; serving API only", logger.Error(err))
		}
	}
	defer calc.Stop()

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(dataDir)
	}
	if staticDir != "" {
		log.Info(ctx, "serving static files", logger.String("dir", staticDir))
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		App:       calc,
		Logger:    logger.Named("server"),
	}).HTTPServer(cfg.Addr)

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	if cfg.Tray {
		runTray(ctx, stop, calc, cfg.Addr)
	} else {
		<-ctx.Done()
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	return nil
}

// runTray blocks on the tray loop until Quit is picked or ctx ends.
func runTray(ctx context.Context, stop context.CancelFunc, calc *app.App, addr string) {
	t := tray.New()
	t.OnToggle(calc.SetEnabled)
	t.OnClear(func() { calc.Clear() })
	t.OnEvaluate(func() { calc.Evaluate() })
	t.OnSettings(func() {
		if err := openBrowser(settingsURL(addr)); err != nil {
			logger.Named("tray").Warn(ctx, "error opening browser", logger.Error(err))
		}
	})
	t.OnQuit(stop)

	snaps, unsubscribe := calc.Subscribe()
	defer unsubscribe()
	t.Update(calc.Snapshot())
	go t.Watch(snaps)

	go func() {
		<-ctx.Done()
		t.Quit()
	}()
	t.Run()
}

func resolveDataDir(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("find home directory: %w", err)
		}
		dir = filepath.Join(home, ".handycalc")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	candidates := []string{"web", "../web", "../../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}

func settingsURL(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host + "/"
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
