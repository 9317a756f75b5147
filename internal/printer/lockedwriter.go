package printer

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// LockedWriter serialises writes from concurrent callers (§9's k-way merge
// prints from a single goroutine, but the lock lets future worker-per-file
// fan-out write directly without a separate collector stage) and caches
// once whether the destination is a terminal, matching the teacher's own
// output package guard before emitting ANSI escapes.
type LockedWriter struct {
	mu         sync.Mutex
	w          io.Writer
	isTerminal bool
}

// NewLockedWriter wraps w. Terminal detection only applies when w is an
// *os.File (e.g. os.Stdout); any other writer (a file, a buffer, a pipe)
// never gets ANSI codes regardless of the highlight argument to Print.
func NewLockedWriter(w io.Writer) *LockedWriter {
	lw := &LockedWriter{w: w}
	if f, ok := w.(*os.File); ok {
		lw.isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return lw
}

// Write implements io.Writer under the lock, for callers that want to
// interleave plain writes (e.g. a leading banner) with Print calls.
func (lw *LockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
