// Package device accounts for every drawable resource the scene allocates
// Each buffer, material and texture lives behind a Handle and must be released exactly once
package device

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrDoubleRelease = errors.New("device: resource already released")
	ErrUnknownHandle = errors.New("device: unknown handle")
	ErrDeviceLost    = errors.New("device: context lost")
)

// Kind classifies a resource
type Kind uint8

const (
	KindBuffer Kind = iota + 1
	KindMaterial
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindMaterial:
		return "material"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Handle identifies one allocation, zero is never issued
type Handle uint64

// KindStats counts allocations of one kind
type KindStats struct {
	Allocated int
	Released  int
}

// Live returns allocations not yet released
func (s KindStats) Live() int {
	return s.Allocated - s.Released
}

type entry struct {
	kind     Kind
	resource any
	released bool
}

// Device owns resource records and enforces release discipline
type Device struct {
	mu      sync.Mutex
	entries map[Handle]*entry
	stats   map[Kind]*KindStats
	next    Handle
	lost    bool

	log *zap.Logger
}

// New creates an empty device
func New(log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{
		entries: make(map[Handle]*entry),
		stats: map[Kind]*KindStats{
			KindBuffer:   {},
			KindMaterial: {},
			KindTexture:  {},
		},
		log: log,
	}
}

func (d *Device) alloc(kind Kind, res any) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	h := d.next
	d.entries[h] = &entry{kind: kind, resource: res}
	d.stats[kind].Allocated++
	return h
}

// Release frees the resource behind h
// Released records are kept so a second release is detected rather than silently ignored
func (d *Device) Release(h Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[h]
	if !ok {
		return fmt.Errorf("release %d: %w", h, ErrUnknownHandle)
	}
	if e.released {
		return fmt.Errorf("release %s %d: %w", e.kind, h, ErrDoubleRelease)
	}
	if d.lost {
		// Lost context still counts the release
		e.released = true
		e.resource = nil
		d.stats[e.kind].Released++
		return fmt.Errorf("release %s %d: %w", e.kind, h, ErrDeviceLost)
	}

	e.released = true
	e.resource = nil
	d.stats[e.kind].Released++
	return nil
}

// Lose marks the device context as lost, later releases report ErrDeviceLost
func (d *Device) Lose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lost = true
}

// Lost reports whether Lose was called
func (d *Device) Lost() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lost
}

// Stats returns a copy of per-kind counters
func (d *Device) Stats() map[Kind]KindStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[Kind]KindStats, len(d.stats))
	for k, s := range d.stats {
		out[k] = *s
	}
	return out
}

// Live returns the number of unreleased resources across kinds
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, s := range d.stats {
		n += s.Live()
	}
	return n
}

// Close releases everything still live and returns how many leaked
func (d *Device) Close() int {
	d.mu.Lock()
	var leaked []Handle
	for h, e := range d.entries {
		if !e.released {
			leaked = append(leaked, h)
		}
	}
	d.mu.Unlock()

	sort.Slice(leaked, func(i, j int) bool { return leaked[i] < leaked[j] })
	for _, h := range leaked {
		kind := d.kindOf(h)
		d.log.Warn("resource leaked", zap.Stringer("kind", kind), zap.Uint64("handle", uint64(h)))
		if err := d.Release(h); err != nil && !errors.Is(err, ErrDeviceLost) {
			d.log.Error("release on close failed", zap.Error(err))
		}
	}
	return len(leaked)
}

func (d *Device) kindOf(h Handle) Kind {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.entries[h]; ok {
		return e.kind
	}
	return 0
}

func lookup[T any](d *Device, h Handle, kind Kind) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	e, ok := d.entries[h]
	if !ok || e.released || e.kind != kind {
		return zero, false
	}
	res, ok := e.resource.(T)
	return res, ok
}
