package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FrameFunc is a one-shot per-frame callback receiving the frame timestamp
type FrameFunc func(ts time.Time)

// FrameID identifies a requested frame callback for cancellation
type FrameID uint64

// FrameSource delivers monotonically increasing frame timestamps
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

type tweenEntry struct {
	key   string
	tween *Tween
}

// Scheduler runs all active tweens, then the requested frame callback, in one ordered pass per frame
// Single-threaded: every method must be called from the goroutine that drives Frame or Run
type Scheduler struct {
	tweens []tweenEntry

	pending   FrameFunc
	pendingID FrameID
	nextID    FrameID

	frames  uint64
	stopped bool

	log *zap.Logger
}

// NewScheduler creates an idle scheduler
func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{log: log}
}

// RequestFrame registers fn to run once on the next frame, replacing any pending callback
// The callback must re-request to keep running
func (s *Scheduler) RequestFrame(fn FrameFunc) FrameID {
	s.nextID++
	s.pending = fn
	s.pendingID = s.nextID
	return s.pendingID
}

// CancelFrame drops the pending callback if id still identifies it
func (s *Scheduler) CancelFrame(id FrameID) {
	if s.pending != nil && s.pendingID == id {
		s.pending = nil
	}
}

// AddTween starts tw under key, replacing a running tween with the same key
func (s *Scheduler) AddTween(key string, tw *Tween) {
	for i := range s.tweens {
		if s.tweens[i].key == key {
			s.log.Debug("tween replaced", zap.String("key", key))
			s.tweens[i].tween = tw
			return
		}
	}
	s.tweens = append(s.tweens, tweenEntry{key: key, tween: tw})
}

// HasTween reports whether a tween with key is still running
func (s *Scheduler) HasTween(key string) bool {
	for _, e := range s.tweens {
		if e.key == key {
			return true
		}
	}
	return false
}

// ActiveTweens returns the number of running tweens
func (s *Scheduler) ActiveTweens() int {
	return len(s.tweens)
}

// FrameCount returns the number of frames run
func (s *Scheduler) FrameCount() uint64 {
	return s.frames
}

// Frame runs one ordered pass: tweens in insertion order, then the pending callback
func (s *Scheduler) Frame(ts time.Time) {
	if s.stopped {
		return
	}
	s.frames++

	// Iterate-and-compact: finished tweens are dropped in the same pass
	kept := s.tweens[:0]
	for _, e := range s.tweens {
		if !e.tween.Step(ts) {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = tweenEntry{}
	}
	s.tweens = kept

	if fn := s.pending; fn != nil {
		s.pending = nil
		fn(ts)
	}
}

// Stop cancels the pending callback, abandons running tweens and rejects further frames
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.pending = nil
	if n := len(s.tweens); n > 0 {
		s.log.Debug("tweens abandoned", zap.Int("count", n))
	}
	s.tweens = nil
}

// Stopped reports whether Stop was called
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Run drives Frame from src until ctx is done or the scheduler is stopped
func (s *Scheduler) Run(ctx context.Context, src FrameSource) error {
	defer src.Stop()
	frames := src.Frames()
	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case ts, ok := <-frames:
			if !ok {
				s.Stop()
				return nil
			}
			s.Frame(ts)
			if s.stopped {
				return nil
			}
		}
	}
}

// TickerSource is a FrameSource backed by time.Ticker
type TickerSource struct {
	ticker *time.Ticker
}

// NewTickerSource ticks every interval
func NewTickerSource(interval time.Duration) *TickerSource {
	return &TickerSource{ticker: time.NewTicker(interval)}
}

func (t *TickerSource) Frames() <-chan time.Time {
	return t.ticker.C
}

func (t *TickerSource) Stop() {
	t.ticker.Stop()
}
