// Package merger drives a minimal k-way merge across one SyslineReader per
// input file, printing syslines in timestamp order (§9 — not named by the
// original search-tool spec, added so the reader core has a runnable CLI
// end to end).
package merger

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/linereader"
	"github.com/jtmoon79/s4/internal/printer"
	"github.com/jtmoon79/s4/internal/syslinereader"
)

// Source pairs an opened SyslineReader with the display name the printer
// should prefix its output with.
type Source struct {
	Name   string
	Reader *syslinereader.SyslineReader
}

// Options configures one merge run.
type Options struct {
	After     *time.Time
	Before    *time.Time
	Highlight bool
	// ShowNames prefixes every printed sysline with "<name>: ", for runs
	// merging more than one file; a single-file run normally leaves this
	// false.
	ShowNames bool
}

// item is one source's current candidate sysline sitting in the heap,
// plus the file offset to resume that source from once it's popped.
type item struct {
	srcIdx int
	sl     *syslinereader.Sysline
	nextFo blockreader.FileOffset
}

type itemHeap []*item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].sl.Dt.Before(h[j].sl.Dt) }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(*item)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Merge reads one sysline at a time from every source in ascending
// datetime order and calls printer.Print for each one that passes the
// [After, Before] window, stopping a source early once it runs past
// Before (syslines within one file are discovered in non-decreasing
// datetime order, so nothing later in that file could still pass).
//
// Each source's consumed blocks are dropped as soon as its sysline has
// been printed, so a forward-only merge over many large files runs in
// bounded memory (§3) rather than holding every file fully resident.
func Merge(lw *printer.LockedWriter, sources []Source, opts Options) error {
	h := &itemHeap{}
	heap.Init(h)

	dropped := make([]map[blockreader.BlockOffset]struct{}, len(sources))
	for i := range dropped {
		dropped[i] = make(map[blockreader.BlockOffset]struct{})
	}

	for i, src := range sources {
		it, err := seed(src.Reader, i, opts.After)
		if err != nil {
			return fmt.Errorf("merger: seeding %s: %w", src.Name, err)
		}
		if it != nil {
			heap.Push(h, it)
		}
	}

	for h.Len() > 0 {
		it := heap.Pop(h).(*item)
		src := sources[it.srcIdx]

		verdict := syslinereader.PassesFilters(it.sl, opts.After, opts.Before)
		if verdict != syslinereader.AfterRange {
			if verdict == syslinereader.InRange {
				prefix := ""
				if opts.ShowNames {
					prefix = src.Name + ": "
				}
				if err := printer.Print(lw, it.sl, prefix, opts.Highlight); err != nil {
					return fmt.Errorf("merger: printing from %s: %w", src.Name, err)
				}
			}
			src.Reader.DropSysline(it.sl, dropped[it.srcIdx])

			next, r := src.Reader.FindSysline(it.nextFo)
			if nit := fromResult(it.srcIdx, next, r); nit != nil {
				heap.Push(h, nit)
			} else if r.Kind == linereader.Err {
				return fmt.Errorf("merger: reading %s: %w", src.Name, r.Error)
			}
			continue
		}
		// This source has run past Before; drop it and don't requeue.
		src.Reader.DropSysline(it.sl, dropped[it.srcIdx])
	}

	return nil
}

// seed produces the first item for a source: the sysline at or after
// 'after' via binary search when an after-bound is given, else the very
// first sysline in the file.
func seed(sr *syslinereader.SyslineReader, idx int, after *time.Time) (*item, error) {
	var fo blockreader.FileOffset
	var r linereader.Result4[*syslinereader.Sysline]
	if after != nil {
		fo, r = sr.FindSyslineAtDatetimeFilter(0, *after)
	} else {
		fo, r = sr.FindSysline(0)
	}
	if it := fromResult(idx, fo, r); it != nil {
		return it, nil
	}
	if r.Kind == linereader.Err {
		return nil, r.Error
	}
	return nil, nil
}

func fromResult(idx int, nextFo blockreader.FileOffset, r linereader.Result4[*syslinereader.Sysline]) *item {
	switch r.Kind {
	case linereader.Found, linereader.FoundEOF:
		return &item{srcIdx: idx, sl: r.Value, nextFo: nextFo}
	default:
		return nil
	}
}
