package sim

import (
	"fmt"
	"time"
)

// FrameStats accumulates per-frame timings and periodically folds them
// into averaged rates for display.
type FrameStats struct {
	frameTimeAccum time.Duration
	frameCount     int
	simStepsAccum  int
	renderCount    int

	lastReport time.Time
	reportDT   time.Duration

	// Snapshot values, updated once per report interval.
	AvgFrameTimeMS float64
	PresentFPS     int
	SimTPS         int
	RenderFPS      int
}

func NewFrameStats(now time.Time) *FrameStats {
	return &FrameStats{
		lastReport: now,
		reportDT:   time.Second,
	}
}

// RecordFrame notes one presented frame that took dt.
func (fs *FrameStats) RecordFrame(dt time.Duration) {
	fs.frameTimeAccum += dt
	fs.frameCount++
}

// RecordSteps notes simulation steps run this frame.
func (fs *FrameStats) RecordSteps(n int) {
	fs.simStepsAccum += n
}

// RecordRender notes one rendered frame.
func (fs *FrameStats) RecordRender() {
	fs.renderCount++
}

// NeedsUpdate reports whether a report interval has elapsed.
func (fs *FrameStats) NeedsUpdate(now time.Time) bool {
	return now.Sub(fs.lastReport) >= fs.reportDT
}

// Update folds the accumulated counters into the snapshot values and
// resets them.
func (fs *FrameStats) Update(now time.Time) {
	secs := now.Sub(fs.lastReport).Seconds()

	if fs.frameCount > 0 {
		avg := fs.frameTimeAccum.Seconds() / float64(fs.frameCount)
		fs.AvgFrameTimeMS = avg * 1000
		fs.PresentFPS = int(1/avg + 0.5)
	}
	if secs > 0 {
		fs.SimTPS = int(float64(fs.simStepsAccum)/secs + 0.5)
		fs.RenderFPS = int(float64(fs.renderCount)/secs + 0.5)
	}

	fs.frameTimeAccum = 0
	fs.frameCount = 0
	fs.simStepsAccum = 0
	fs.renderCount = 0
	fs.lastReport = now
}

// String formats the snapshot for the stats overlay.
func (fs *FrameStats) String() string {
	return fmt.Sprintf("Frame:  %5.2f ms (%3d fps)\nSim:    %3d ticks/s\nRender: %3d fps",
		fs.AvgFrameTimeMS, fs.PresentFPS, fs.SimTPS, fs.RenderFPS)
}
