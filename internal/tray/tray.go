// Package tray provides a system tray menu for the gesture calculator.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/handycalc/internal/session"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onClear    func()
	onEvaluate func()
	onSettings func()
	onQuit     func()
	enabled    bool
	last       session.Snapshot
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuLast   *systray.MenuItem
	menuResult *systray.MenuItem
	ready      bool
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnClear sets the callback for the Clear item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnEvaluate sets the callback for the Evaluate item.
func (t *Tray) OnEvaluate(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEvaluate = fn
}

// OnSettings sets the callback function to be called when the settings menu item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

// Watch updates the menu from snapshots until ch is closed.
func (t *Tray) Watch(ch <-chan session.Snapshot) {
	for snap := range ch {
		t.Update(snap)
	}
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTooltip("Hand gesture calculator")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleLabel(t.enabled), "Toggle gesture recognition")
	systray.AddSeparator()

	t.menuLast = systray.AddMenuItem(lastLabel(t.last), "Last confirmed gesture")
	t.menuLast.Disable()
	t.menuResult = systray.AddMenuItem(resultLabel(t.last), "Last evaluation")
	t.menuResult.Disable()
	systray.AddSeparator()

	menuClear := systray.AddMenuItem("Clear", "Empty the expression")
	menuEvaluate := systray.AddMenuItem("Evaluate", "Compute the expression")
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit the calculator")

	t.ready = true
	systray.SetTitle(titleLabel(t.last))
	t.mu.Unlock()

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuClear.ClickedCh:
				t.call(func() func() { return t.onClear })
			case <-menuEvaluate.ClickedCh:
				t.call(func() func() { return t.onEvaluate })
			case <-menuSettings.ClickedCh:
				t.call(func() func() { return t.onSettings })
			case <-menuQuit.ClickedCh:
				t.call(func() func() { return t.onQuit })
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	t.menuToggle.SetTitle(toggleLabel(enabled))
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// call runs the callback picked under the read lock.
func (t *Tray) call(pick func() func()) {
	t.mu.RLock()
	callback := pick()
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// Update shows snap in the title and menu. Before the menu is ready the
// snapshot is kept and shown once it is.
func (t *Tray) Update(snap session.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = snap
	if !t.ready {
		return
	}
	systray.SetTitle(titleLabel(snap))
	t.menuLast.SetTitle(lastLabel(snap))
	t.menuResult.SetTitle(resultLabel(snap))
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

func titleLabel(snap session.Snapshot) string {
	if snap.Display == "" {
		return "0"
	}
	return snap.Display
}

func lastLabel(snap session.Snapshot) string {
	if snap.LastConfirmed.IsUnknown() {
		return "Last: none"
	}
	return "Last: " + snap.LastConfirmed.Label()
}

func resultLabel(snap session.Snapshot) string {
	text := snap.ResultText()
	if text == "" {
		return "Result: -"
	}
	return "Result: " + text
}
