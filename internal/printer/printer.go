// Package printer writes Syslines to an output stream, optionally
// highlighting the extracted datetime, under a lock shared across callers
// (§6).
package printer

import (
	"github.com/jtmoon79/s4/internal/syslinereader"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// Print writes sl's bytes to lw, preceded by namePrefix (e.g. a filename
// tag in multi-file merge output; pass "" to omit). When highlight is true,
// lw is a terminal, and sl carries a datetime, the [DtBeg, DtEnd) byte range
// of the first line is bolded with ANSI escapes the same way the teacher's
// own output package bolds table titles/totals.
func Print(lw *LockedWriter, sl *syslinereader.Sysline, namePrefix string, highlight bool) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if namePrefix != "" {
		if _, err := lw.w.Write([]byte(namePrefix)); err != nil {
			return err
		}
	}

	if highlight && lw.isTerminal && sl.HasDatetime() {
		return printHighlighted(lw, sl)
	}
	return printPlain(lw, sl)
}

// printPlain writes every line's parts directly from the underlying blocks,
// without reassembling each line into one contiguous slice first.
func printPlain(lw *LockedWriter, sl *syslinereader.Sysline) error {
	for _, ln := range sl.Lines {
		for _, part := range ln.Parts {
			if _, err := lw.w.Write(part.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

// printHighlighted writes the first line with its datetime range bolded,
// then the remaining continuation lines verbatim. The first line alone is
// reassembled into one slice so the DtBeg/DtEnd byte offsets (measured
// against the line's own bytes) can be sliced directly; every other line
// still writes straight from its parts.
func printHighlighted(lw *LockedWriter, sl *syslinereader.Sysline) error {
	first := sl.Lines[0].Bytes()
	beg, end := sl.DtBeg, sl.DtEnd
	if beg < 0 || end > len(first) || beg > end {
		// Offsets out of range for this line's own bytes: fall back to
		// plain output rather than slicing out of bounds.
		return printPlain(lw, sl)
	}

	writes := [][]byte{
		first[:beg],
		[]byte(ansiBold),
		first[beg:end],
		[]byte(ansiReset),
		first[end:],
	}
	for _, b := range writes {
		if len(b) == 0 {
			continue
		}
		if _, err := lw.w.Write(b); err != nil {
			return err
		}
	}

	for _, ln := range sl.Lines[1:] {
		for _, part := range ln.Parts {
			if _, err := lw.w.Write(part.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}
