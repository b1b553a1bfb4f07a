// Package stats samples per-frame timing.
package stats

import (
	"fmt"
	"time"
)

// Snapshot is the most recent completed sample window.
type Snapshot struct {
	FPS       int           // Frames finished in the last full second
	FrameTime time.Duration // Average Begin to End time over that second
	MaxFrame  time.Duration // Slowest frame in that second
	Frames    uint64        // Total frames since creation
}

// String formats the snapshot for a title bar.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d fps  %.2f ms (max %.2f ms)",
		s.FPS,
		float64(s.FrameTime.Microseconds())/1000,
		float64(s.MaxFrame.Microseconds())/1000)
}

// Stats counts frames and frame times over one second windows.
// Not safe for concurrent use; call from the render loop.
type Stats struct {
	now func() time.Time

	frameStart  time.Time
	windowStart time.Time

	count     int
	busy      time.Duration
	maxFrame  time.Duration
	total     uint64
	last      Snapshot
	published bool
}

// New creates a Stats using the wall clock.
func New() *Stats {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Stats using a custom clock.
func NewWithClock(now func() time.Time) *Stats {
	return &Stats{now: now, windowStart: now()}
}

// Begin marks the start of a frame.
func (s *Stats) Begin() {
	s.frameStart = s.now()
}

// End marks the end of a frame. Returns true when a new one second window
// completed and Snapshot changed.
func (s *Stats) End() bool {
	t := s.now()
	frame := t.Sub(s.frameStart)

	s.count++
	s.total++
	s.busy += frame
	if frame > s.maxFrame {
		s.maxFrame = frame
	}

	if t.Sub(s.windowStart) < time.Second {
		return false
	}

	s.last = Snapshot{
		FPS:       s.count,
		FrameTime: s.busy / time.Duration(s.count),
		MaxFrame:  s.maxFrame,
		Frames:    s.total,
	}
	s.published = true
	s.count = 0
	s.busy = 0
	s.maxFrame = 0
	s.windowStart = t
	return true
}

// Snapshot returns the last completed window. ok is false before the first
// second has elapsed.
func (s *Stats) Snapshot() (snap Snapshot, ok bool) {
	return s.last, s.published
}
