package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera produces blank frames for tests. The detector behind it
// decides what the frames contain.
type MockCamera struct {
	mu       sync.Mutex
	width    int
	height   int
	limit    int
	reads    int
	running  bool
	fps      int
	fpsLog   []int
	openErr  error
	frameErr error
}

// NewMockCamera creates a camera that returns up to limit frames.
// limit <= 0 means unlimited.
func NewMockCamera(limit int) *MockCamera {
	return &MockCamera{
		width:  DefaultWidth / 4,
		height: DefaultHeight / 4,
		limit:  limit,
		fps:    DefaultFPS,
	}
}

// Open starts the camera, or returns the error set by SetOpenError.
func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openErr != nil {
		return c.openErr
	}
	c.running = true
	return nil
}

// Close stops the camera.
func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns a new black frame. The caller closes it.
func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}
	if c.frameErr != nil {
		return nil, c.frameErr
	}
	if c.limit > 0 && c.reads >= c.limit {
		return nil, ErrNoFrame
	}

	c.reads++
	frame := gocv.NewMatWithSize(c.height, c.width, gocv.MatTypeCV8UC3)
	return &frame, nil
}

// SetFPS records the requested rate.
func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if fps != c.fps {
		c.fpsLog = append(c.fpsLog, fps)
	}
	c.fps = fps
}

// FPS returns the last requested rate.
func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen reports whether Open was called without a later Close.
func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Reads returns how many frames were handed out.
func (c *MockCamera) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// FPSChanges returns every rate change in order.
func (c *MockCamera) FPSChanges() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.fpsLog...)
}

// SetOpenError makes Open fail with err.
func (c *MockCamera) SetOpenError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openErr = err
}

// SetFrameError makes ReadFrame fail with err. nil restores frames.
func (c *MockCamera) SetFrameError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frameErr = err
}

// Reset restarts the frame count.
func (c *MockCamera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads = 0
}
