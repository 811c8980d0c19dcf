package parameter

import "time"

// Frame Loop & Clock
const (
	// FrameInterval is the frame ticker period (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// MaxFrameDelta caps frame-to-frame delta after a stall (suspend, debugger, slow terminal)
	MaxFrameDelta = 100 * time.Millisecond

	// InputQueueSize is the buffered capacity between the event poller and the frame loop
	InputQueueSize = 256

	// ReloadQueueSize is the buffered capacity for config hot-reload notifications
	ReloadQueueSize = 4
)
