package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const progressWidth = 30

// ProgressBar draws a single-line "done/total" bar on a terminal stream.
// Its Observe method matches the lint progress callback.
type ProgressBar struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	started time.Time
	drawn   bool
}

// NewProgressBar returns a bar labelled label writing to w, or to os.Stderr
// when w is nil.
func NewProgressBar(w io.Writer, label string) *ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	return &ProgressBar{w: w, label: label}
}

// Observe redraws the bar for done out of total items. done == 0 restarts
// the rate clock and done == total ends the line.
func (b *ProgressBar) Observe(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if done == 0 || b.started.IsZero() {
		b.started = time.Now()
	}
	if total <= 0 {
		return
	}
	done = min(max(done, 0), total)

	filled := done * progressWidth / total
	rate := 0.0
	if secs := time.Since(b.started).Seconds(); secs > 0 {
		rate = float64(done) / secs
	}

	fmt.Fprintf(b.w, "\r%s [%s%s] %3d%% %d/%d (%.0f/s)",
		b.label,
		strings.Repeat("=", filled), strings.Repeat(" ", progressWidth-filled),
		done*100/total, done, total, rate)
	b.drawn = true

	if done == total {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

// Abort ends a partially drawn bar and prints err on its own line.
func (b *ProgressBar) Abort(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
	fmt.Fprintf(b.w, "%s failed: %v\n", b.label, err)
}
