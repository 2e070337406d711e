package mrc

import (
	"log"
	"time"
)

const progressInterval = 2 * time.Second

// Progress logs throughput/ETA/elapsed-time progress lines to a *log.Logger
// as a long trace pass advances, mirroring the reference tool's progress
// bar tags (Tps/Eta/Time) without pulling in a terminal-UI dependency: this
// module's ambient stack sticks to stdlib log for all run-time reporting.
type Progress struct {
	logger *log.Logger
	total  int64
	start  time.Time
	last   time.Time
}

// NewProgress builds a progress reporter for a pass over total bytes (or
// any other unit the caller ticks in).
func NewProgress(logger *log.Logger, total int64) *Progress {
	now := time.Now()
	return &Progress{logger: logger, total: total, start: now, last: now}
}

// Tick reports done out of the configured total, rate-limited to at most
// one log line per progressInterval.
func (p *Progress) Tick(done int64) {
	now := time.Now()
	if now.Sub(p.last) < progressInterval {
		return
	}
	p.last = now

	elapsed := now.Sub(p.start)
	rate := float64(done) / elapsed.Seconds()

	var eta time.Duration
	if rate > 0 {
		eta = time.Duration(float64(p.total-done)/rate) * time.Second
	}

	p.logger.Printf("progress: %d/%d (%.0f/s, eta %s, elapsed %s)", done, p.total, rate, eta.Round(time.Second), elapsed.Round(time.Second))
}

// Done logs a final completion line.
func (p *Progress) Done() {
	p.logger.Printf("done in %s", time.Since(p.start).Round(time.Second))
}
