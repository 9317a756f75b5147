package syslinereader

import (
	"fmt"
	"sort"
	"time"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/datetime"
	"github.com/jtmoon79/s4/internal/debugtrace"
	"github.com/jtmoon79/s4/internal/linereader"
)

// warmupThreshold is the typical N from §4.3 ("first N successful
// extractions, N≈8") after which the reader freezes its candidate pattern
// subset to whichever DATETIME_PARSE_DATAS entries this file has actually
// exercised.
const warmupThreshold = 8

// SyslineReader maintains the same two-map pattern as LineReader —
// syslines keyed by fileoffset_begin, foend_to_fobeg mapping
// fileoffset_end to fileoffset_begin — plus per-file pattern-analysis
// state (§4.3).
type SyslineReader struct {
	lr        *linereader.LineReader
	yearHint  int
	defaultTZ string

	syslines     *linereader.OffsetMap[*Sysline]
	foendToFobeg *linereader.OffsetMap[blockreader.FileOffset]

	// observed counts successful extractions per Table index; frozen is
	// nil until warmup completes, after which it holds the observed
	// indices ordered by descending frequency (§4.3 "freezes the
	// candidate subset ... ordered by frequency").
	observed  map[int]int
	totalHits int
	frozen    []int

	// warmupDisabled forces every extraction attempt to try the full
	// table, for --no-sysline-cache benchmarking/determinism runs.
	warmupDisabled bool
}

// DisableWarmup turns off pattern-frequency freezing: every extraction
// attempt tries the full datetime table instead of a learned subset. Safe
// to call at any point; already-frozen state (if any) is discarded.
func (sr *SyslineReader) DisableWarmup() {
	sr.warmupDisabled = true
	sr.frozen = nil
}

// New returns a SyslineReader over lr. yearHint fills in entries lacking a
// year group; defaultTZ fills in entries lacking a timezone (§4.4).
func New(lr *linereader.LineReader, yearHint int, defaultTZ string) *SyslineReader {
	return &SyslineReader{
		lr:           lr,
		yearHint:     yearHint,
		defaultTZ:    defaultTZ,
		syslines:     linereader.NewOffsetMap[*Sysline](),
		foendToFobeg: linereader.NewOffsetMap[blockreader.FileOffset](),
		observed:     make(map[int]int),
	}
}

// Filesz delegates to the underlying LineReader/BlockReader.
func (sr *SyslineReader) Filesz() (blockreader.FileSz, bool) {
	return sr.lr.Filesz()
}

// candidateIndices returns which Table indices to try, in order: the
// frozen, frequency-ordered subset once warmup has completed, or the full
// table beforehand.
func (sr *SyslineReader) candidateIndices() []int {
	if sr.frozen != nil {
		return sr.frozen
	}
	all := make([]int, len(datetime.Table))
	for i := range all {
		all[i] = i
	}
	return all
}

func (sr *SyslineReader) recordHit(idx int) {
	if sr.warmupDisabled {
		return
	}
	sr.observed[idx]++
	sr.totalHits++
	if sr.frozen == nil && sr.totalHits >= warmupThreshold {
		sr.freeze()
	}
}

func (sr *SyslineReader) freeze() {
	idxs := make([]int, 0, len(sr.observed))
	for idx := range sr.observed {
		idxs = append(idxs, idx)
	}
	sort.Slice(idxs, func(i, j int) bool {
		if sr.observed[idxs[i]] != sr.observed[idxs[j]] {
			return sr.observed[idxs[i]] > sr.observed[idxs[j]]
		}
		return idxs[i] < idxs[j]
	})
	sr.frozen = idxs
}

// tryExtract attempts datetime extraction against ln's bytes, trying the
// frozen subset (if any) before falling back to the full table once it's
// clear the frozen subset didn't match (§4.3 "try only the frozen subset
// before falling back to the full table").
func (sr *SyslineReader) tryExtract(ln *linereader.Line) (dtBeg, dtEnd int, dt time.Time, ok bool) {
	b := ln.Bytes()

	for _, idx := range sr.candidateIndices() {
		if beg, end, t, matched := datetime.BytesToRegexToDatetime(b, idx, sr.yearHint, sr.defaultTZ); matched {
			sr.recordHit(idx)
			return beg, end, t, true
		}
	}

	if sr.frozen != nil {
		for i := range datetime.Table {
			if sr.alreadyTried(i) {
				continue
			}
			if beg, end, t, matched := datetime.BytesToRegexToDatetime(b, i, sr.yearHint, sr.defaultTZ); matched {
				sr.recordHit(i)
				return beg, end, t, true
			}
		}
	}

	return 0, 0, time.Time{}, false
}

func (sr *SyslineReader) alreadyTried(idx int) bool {
	for _, f := range sr.frozen {
		if f == idx {
			return true
		}
	}
	return false
}

// insert records sl into both maps.
func (sr *SyslineReader) insert(sl *Sysline) {
	sr.syslines.Insert(sl.FileOffsetBegin(), sl)
	sr.foendToFobeg.Insert(sl.FileOffsetEnd(), sl.FileOffsetBegin())
}

// lookup performs the same two-map pattern as LineReader.FindLine's
// cache-lookup path: exact begin, then ceiling-on-end membership test.
func (sr *SyslineReader) lookup(fo blockreader.FileOffset) (*Sysline, bool) {
	if sl, ok := sr.syslines.Get(fo); ok {
		return sl, true
	}
	if end, begin, ok := sr.foendToFobeg.CeilingEntry(fo); ok {
		if sl, ok2 := sr.syslines.Get(begin); ok2 && uint64(begin) <= uint64(fo) && uint64(fo) <= uint64(end) {
			return sl, true
		}
	}
	return nil, false
}

func (sr *SyslineReader) classify(sl *Sysline) linereader.Result4[*Sysline] {
	if filesz, known := sr.lr.Filesz(); known && uint64(sl.FileOffsetEnd())+1 >= uint64(filesz) {
		return linereader.FoundEOF4(sl)
	}
	return linereader.Found4(sl)
}

func nextOffset(r linereader.Result4[*Sysline]) blockreader.FileOffset {
	if r.Kind != linereader.Found && r.Kind != linereader.FoundEOF {
		return 0
	}
	return r.Value.FileOffsetEnd() + 1
}

// FindSysline returns the Sysline whose first line covers fo, or — if fo
// lies within a continuation line — the sysline that claims it (§4.3).
func (sr *SyslineReader) FindSysline(fo blockreader.FileOffset) (blockreader.FileOffset, linereader.Result4[*Sysline]) {
	defer debugtrace.Enter("FindSysline(%d)", fo)()

	if sl, ok := sr.lookup(fo); ok {
		r := sr.classify(sl)
		return nextOffset(r), r
	}

	sl, err := sr.discoverSysline(fo)
	if err != nil {
		return 0, linereader.Err4[*Sysline](err)
	}
	if sl == nil {
		return 0, linereader.Done4[*Sysline]()
	}

	sr.insert(sl)
	r := sr.classify(sl)
	return nextOffset(r), r
}

// FindSyslineInBlock is the bounded probe used by binary search (§4.3
// "uses find_sysline_in_block probes to bound each step's work"). It tries
// to resolve the sysline touching fo using only line-local and block-local
// information; it returns Done whenever a conclusive answer would require
// scanning outside the block containing fo (e.g. a backward anchor search
// that doesn't terminate within the block).
func (sr *SyslineReader) FindSyslineInBlock(fo blockreader.FileOffset) linereader.Result4[*Sysline] {
	defer debugtrace.Enter("FindSyslineInBlock(%d)", fo)()

	if sl, ok := sr.lookup(fo); ok {
		return sr.classify(sl)
	}

	lr := sr.lr.FindLineInBlock(fo)
	switch lr.Kind {
	case linereader.Err:
		return linereader.Err4[*Sysline](lr.Error)
	case linereader.Done:
		return linereader.Done4[*Sysline]()
	}

	ln := lr.Value
	dtBeg, dtEnd, dt, ok := sr.tryExtract(ln)
	if !ok {
		// A real anchor might precede ln, but walking backward to find it
		// is unbounded in general — the bounded probe can't conclude.
		return linereader.Done4[*Sysline]()
	}

	sl := &Sysline{Lines: []*linereader.Line{ln}, Dt: dt, DtBeg: dtBeg, DtEnd: dtEnd}
	return sr.classify(sl)
}

// discoverSysline runs the full §4.3 algorithm step 2: locate the first
// candidate line at fo, then either accumulate forward from it (if it's
// already an anchor) or walk backward to find the real anchor first.
func (sr *SyslineReader) discoverSysline(fo blockreader.FileOffset) (*Sysline, error) {
	nextFo, r := sr.lr.FindLine(fo)
	switch r.Kind {
	case linereader.Err:
		return nil, r.Error
	case linereader.Done:
		return nil, nil
	}
	_ = nextFo
	candidate := r.Value

	dtBeg, dtEnd, dt, ok := sr.tryExtract(candidate)
	if ok {
		return sr.accumulateForward(candidate, dtBeg, dtEnd, dt)
	}

	anchor, aDtBeg, aDtEnd, aDt, leading, orphan, err := sr.findAnchorBackward(candidate)
	if err != nil {
		return nil, err
	}
	if orphan {
		// No preceding line ever yields a datetime (§7 "if no preceding
		// sysline has been found yet, lines accumulate until the first
		// datetime is seen"). leading holds every line from file start up
		// to and including candidate; this orphan sysline ends exactly
		// where the next anchor-bearing line begins, which the forward
		// accumulation below discovers.
		return sr.accumulateForwardFrom(leading, time.Time{}, 0, 0)
	}

	lines := append([]*linereader.Line{anchor}, leading...)
	return sr.accumulateForwardFrom(lines, aDt, aDtBeg, aDtEnd)
}

// findAnchorBackward walks backward from ln, line by line, looking for one
// whose first line yields a datetime. It returns the anchor line plus
// leading: the lines after the anchor up to and including ln, in forward
// order. leading always ends with ln itself, and begins either just after
// the anchor (orphan=false) or at file offset 0 (orphan=true, in which case
// anchor/dtBeg/dtEnd/dt are zero values).
func (sr *SyslineReader) findAnchorBackward(ln *linereader.Line) (anchor *linereader.Line, dtBeg, dtEnd int, dt time.Time, leading []*linereader.Line, orphan bool, err error) {
	var reverseLeading []*linereader.Line
	cur := ln

	for {
		reverseLeading = append(reverseLeading, cur)

		if cur.FileOffsetBegin == 0 {
			leading = reverseSlice(reverseLeading)
			return nil, 0, 0, time.Time{}, leading, true, nil
		}

		_, pr := sr.lr.FindLine(cur.FileOffsetBegin - 1)
		switch pr.Kind {
		case linereader.Err:
			return nil, 0, 0, time.Time{}, nil, false, pr.Error
		case linereader.Done:
			// No line precedes cur even though its begin offset is
			// nonzero: shouldn't happen, but treat defensively as orphan.
			leading = reverseSlice(reverseLeading)
			return nil, 0, 0, time.Time{}, leading, true, nil
		}

		prev := pr.Value
		if beg, end, t, ok := sr.tryExtract(prev); ok {
			leading = reverseSlice(reverseLeading)
			return prev, beg, end, t, leading, false, nil
		}

		cur = prev
	}
}

func reverseSlice(s []*linereader.Line) []*linereader.Line {
	out := make([]*linereader.Line, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// accumulateForward builds a one-line-so-far sysline anchored at anchor
// and extends it with accumulateForwardFrom.
func (sr *SyslineReader) accumulateForward(anchor *linereader.Line, dtBeg, dtEnd int, dt time.Time) (*Sysline, error) {
	return sr.accumulateForwardFrom([]*linereader.Line{anchor}, dt, dtBeg, dtEnd)
}

// accumulateForwardFrom extends lines (whose first element anchors the
// sysline, already classified) forward, appending continuation lines —
// lines whose own datetime extraction fails — until either a line with a
// successful extraction appears (it belongs to the next sysline; stop
// before consuming it) or EOF is reached (§4.3 step 2).
func (sr *SyslineReader) accumulateForwardFrom(lines []*linereader.Line, dt time.Time, dtBeg, dtEnd int) (*Sysline, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("syslinereader: accumulateForwardFrom called with no lines")
	}
	cur := lines[len(lines)-1]

	for {
		nextFo := cur.FileOffsetEnd + 1
		_, r := sr.lr.FindLine(nextFo)
		switch r.Kind {
		case linereader.Err:
			return nil, r.Error
		case linereader.Done:
			return &Sysline{Lines: lines, Dt: dt, DtBeg: dtBeg, DtEnd: dtEnd}, nil
		}

		next := r.Value
		if _, _, _, ok := sr.tryExtract(next); ok {
			// next anchors the following sysline; this one ends here.
			return &Sysline{Lines: lines, Dt: dt, DtBeg: dtBeg, DtEnd: dtEnd}, nil
		}

		lines = append(lines, next)
		cur = next
		if r.Kind == linereader.FoundEOF {
			return &Sysline{Lines: lines, Dt: dt, DtBeg: dtBeg, DtEnd: dtEnd}, nil
		}
	}
}

// DropSysline removes sl from both maps and releases its Lines' blocks via
// the underlying LineReader (mirrors LineReader.DropLine).
func (sr *SyslineReader) DropSysline(sl *Sysline, dropped map[blockreader.BlockOffset]struct{}) {
	sr.syslines.Delete(sl.FileOffsetBegin())
	sr.foendToFobeg.Delete(sl.FileOffsetEnd())
	for _, ln := range sl.Lines {
		sr.lr.DropLine(ln, dropped)
	}
}
