// Package syslinereader groups consecutive Lines into Syslines — one
// datetime-anchored record plus its continuation lines — and answers
// datetime-filtered lookups by binary search (§4.3).
package syslinereader

import (
	"time"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/linereader"
)

// Sysline is a datetime-anchored record: Lines[0] is the line the datetime
// was extracted from (or, for the rare file-leading record with no
// discoverable datetime anywhere before it, a line that never yields one —
// Dt is the zero time in that case); any further entries are continuation
// lines with no datetime of their own (§3, §8 "only lines[0] yields a
// datetime").
type Sysline struct {
	Lines []*linereader.Line
	Dt    time.Time
	DtBeg int
	DtEnd int
}

// FileOffsetBegin returns the offset of the sysline's first byte.
func (sl *Sysline) FileOffsetBegin() blockreader.FileOffset {
	return sl.Lines[0].FileOffsetBegin
}

// FileOffsetEnd returns the offset of the sysline's last byte (inclusive).
func (sl *Sysline) FileOffsetEnd() blockreader.FileOffset {
	return sl.Lines[len(sl.Lines)-1].FileOffsetEnd
}

// HasDatetime reports whether Dt was actually extracted from Lines[0], as
// opposed to being the zero-value placeholder used by the file-leading
// orphan sysline described on Sysline.
func (sl *Sysline) HasDatetime() bool {
	return !sl.Dt.IsZero()
}

// Bytes concatenates every Line's bytes into one contiguous slice, copying
// out of the shared blocks. Callers on the hot path should prefer iterating
// Lines directly (the printer does).
func (sl *Sysline) Bytes() []byte {
	n := 0
	for _, ln := range sl.Lines {
		n += int(ln.FileOffsetEnd-ln.FileOffsetBegin) + 1
	}
	out := make([]byte, 0, n)
	for _, ln := range sl.Lines {
		out = append(out, ln.Bytes()...)
	}
	return out
}
