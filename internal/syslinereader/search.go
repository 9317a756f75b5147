package syslinereader

import (
	"time"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/debugtrace"
	"github.com/jtmoon79/s4/internal/linereader"
)

// peekDatetimeAt tries the bounded FindSyslineInBlock probe first, falling
// back to the full FindSysline when the bounded probe can't conclude
// locally (§4.3 "uses find_sysline_in_block probes to bound each step's
// work").
func (sr *SyslineReader) peekDatetimeAt(fo blockreader.FileOffset) (*Sysline, linereader.ResultKind, error) {
	r := sr.FindSyslineInBlock(fo)
	if r.Kind == linereader.Found || r.Kind == linereader.FoundEOF {
		return r.Value, r.Kind, nil
	}
	if r.Kind == linereader.Err {
		return nil, linereader.Err, r.Error
	}

	_, full := sr.FindSysline(fo)
	switch full.Kind {
	case linereader.Err:
		return nil, linereader.Err, full.Error
	case linereader.Done:
		return nil, linereader.Done, nil
	default:
		return full.Value, full.Kind, nil
	}
}

// FindSyslineAtDatetimeFilter returns the first sysline with dt >=
// dtTarget, found by binary search over the file offsets of the whole file,
// so the result does not depend on fo (§4.3). fo seeds the upper bound when
// filesz is not yet known, and is where the linear-scan fallback starts. It
// returns Done if no such sysline exists.
func (sr *SyslineReader) FindSyslineAtDatetimeFilter(fo blockreader.FileOffset, dtTarget time.Time) (blockreader.FileOffset, linereader.Result4[*Sysline]) {
	defer debugtrace.Enter("FindSyslineAtDatetimeFilter(%d, %s)", fo, dtTarget)()

	filesz, known := sr.lr.Filesz()
	lo := blockreader.FileOffset(0)
	var hi blockreader.FileOffset

	if known {
		if uint64(filesz) == 0 {
			return 0, linereader.Done4[*Sysline]()
		}
		hi = blockreader.FileOffset(uint64(filesz) - 1)
	} else {
		hi = fo
		for {
			_, kind, err := sr.peekDatetimeAt(hi)
			if err != nil {
				return 0, linereader.Err4[*Sysline](err)
			}
			if kind == linereader.Done || kind == linereader.FoundEOF {
				break
			}
			if hi == 0 {
				hi = 1
			} else {
				hi *= 2
			}
		}
	}

	if lo > hi {
		return 0, linereader.Done4[*Sysline]()
	}

	var bestBegin blockreader.FileOffset
	foundAny := false

search:
	for lo <= hi {
		mid := lo + (hi-lo)/2

		sl, kind, err := sr.peekDatetimeAt(mid)
		if err != nil {
			return 0, linereader.Err4[*Sysline](err)
		}
		if kind == linereader.Done {
			if mid == 0 {
				break search
			}
			hi = mid - 1
			continue
		}
		if sl == nil || !sl.HasDatetime() {
			// A pathological region (e.g. a single giant sysline, or no
			// timestamps at all) can't be bisected meaningfully; fall back
			// to a plain linear scan from fo (§4.3 "pathological files ...
			// fall back to linear scan").
			return sr.linearScanAtDatetimeFilter(fo, dtTarget)
		}

		switch {
		case sl.Dt.Equal(dtTarget) || sl.Dt.After(dtTarget):
			bestBegin = sl.FileOffsetBegin()
			foundAny = true
			if mid == 0 {
				break search
			}
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}

	if !foundAny {
		return 0, linereader.Done4[*Sysline]()
	}
	return sr.FindSysline(bestBegin)
}

// linearScanAtDatetimeFilter walks sysline-by-sysline from fo, returning
// the first whose dt >= dtTarget.
func (sr *SyslineReader) linearScanAtDatetimeFilter(fo blockreader.FileOffset, dtTarget time.Time) (blockreader.FileOffset, linereader.Result4[*Sysline]) {
	cur := fo
	for {
		next, r := sr.FindSysline(cur)
		switch r.Kind {
		case linereader.Err:
			return 0, r
		case linereader.Done:
			return 0, linereader.Done4[*Sysline]()
		}
		// A file-leading orphan sysline has no datetime; it sorts before
		// every real Dt, including dtTarget, so it never matches and the
		// scan moves on past it.
		if r.Value.HasDatetime() && (r.Value.Dt.Equal(dtTarget) || r.Value.Dt.After(dtTarget)) {
			return next, r
		}
		if r.Kind == linereader.FoundEOF {
			return 0, linereader.Done4[*Sysline]()
		}
		cur = next
	}
}
