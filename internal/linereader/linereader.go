package linereader

import (
	"fmt"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/debugtrace"
)

// LineReader maintains two maps over a BlockReader — lines keyed by
// fileoffset_begin, and foend_to_fobeg mapping fileoffset_end to
// fileoffset_begin — and answers line lookups by either offset (§4.2).
type LineReader struct {
	br      *blockreader.BlockReader
	blocksz blockreader.BlockSz

	lines        *OffsetMap[*Line]
	foendToFobeg *OffsetMap[blockreader.FileOffset]

	// blockRefs counts, per block, how many LineParts currently reference
	// it. A block is reclaimed via BlockReader.DropBlock only once its
	// count reaches zero (§3 "a block is released only when no LinePart
	// still references it").
	blockRefs map[blockreader.BlockOffset]int

	cache *findLineCache
}

// New returns a LineReader over br. cacheEnabled toggles the find_line LRU
// (§9); it never affects correctness, only latency.
func New(br *blockreader.BlockReader, cacheEnabled bool) *LineReader {
	return &LineReader{
		br:           br,
		blocksz:      br.Blocksz(),
		lines:        NewOffsetMap[*Line](),
		foendToFobeg: NewOffsetMap[blockreader.FileOffset](),
		blockRefs:    make(map[blockreader.BlockOffset]int),
		cache:        newFindLineCache(cacheEnabled),
	}
}

// Filesz returns the logical file size, if known, delegating to the
// underlying BlockReader (§4.1 "filesz may become known lazily").
func (lr *LineReader) Filesz() (blockreader.FileSz, bool) {
	return lr.br.Filesz()
}

// Blocksz returns the configured block size.
func (lr *LineReader) Blocksz() blockreader.BlockSz {
	return lr.blocksz
}

// FindLine returns the Line containing byte fo and the offset one past its
// terminator (or one past EOF for a terminal, unterminated line), per the
// §4.2 algorithm.
func (lr *LineReader) FindLine(fo blockreader.FileOffset) (blockreader.FileOffset, Result4[*Line]) {
	defer debugtrace.Enter("FindLine(%d)", fo)()

	if filesz, known := lr.br.Filesz(); known && uint64(fo) >= uint64(filesz) {
		return 0, Done4[*Line]()
	}

	if cached, ok := lr.cache.get(fo); ok {
		return lr.nextOffset(cached), cached
	}

	if ln, ok := lr.lines.Get(fo); ok {
		r := lr.classify(ln)
		lr.cache.put(fo, r)
		return lr.nextOffset(r), r
	}

	if end, begin, ok := lr.foendToFobeg.CeilingEntry(fo); ok {
		if ln, ok2 := lr.lines.Get(begin); ok2 && uint64(begin) <= uint64(fo) && uint64(fo) <= uint64(end) {
			r := lr.classify(ln)
			lr.cache.put(fo, r)
			return lr.nextOffset(r), r
		}
	}

	ln, err := lr.discoverLine(fo, false)
	if err != nil {
		return 0, Err4[*Line](err)
	}
	if ln == nil {
		return 0, Done4[*Line]()
	}

	lr.insert(ln)
	r := lr.classify(ln)
	lr.cache.put(ln.FileOffsetBegin, r)
	return lr.nextOffset(r), r
}

// FindLineInBlock is the block-local variant used by the datetime-assisted
// binary search (§4.3): it performs the same discovery but returns Done
// whenever either boundary would require crossing into an adjacent block,
// bounding the probe's cost to O(1) blocks.
func (lr *LineReader) FindLineInBlock(fo blockreader.FileOffset) Result4[*Line] {
	defer debugtrace.Enter("FindLineInBlock(%d)", fo)()

	if filesz, known := lr.br.Filesz(); known && uint64(fo) >= uint64(filesz) {
		return Done4[*Line]()
	}

	if ln, ok := lr.lines.Get(fo); ok {
		return lr.classify(ln)
	}
	if end, begin, ok := lr.foendToFobeg.CeilingEntry(fo); ok {
		if ln, ok2 := lr.lines.Get(begin); ok2 && uint64(begin) <= uint64(fo) && uint64(fo) <= uint64(end) {
			return lr.classify(ln)
		}
	}

	ln, err := lr.discoverLine(fo, true)
	if err != nil {
		return Err4[*Line](err)
	}
	if ln == nil {
		return Done4[*Line]()
	}
	lr.insert(ln)
	return lr.classify(ln)
}

func (lr *LineReader) nextOffset(r Result4[*Line]) blockreader.FileOffset {
	if r.Kind != Found && r.Kind != FoundEOF {
		return 0
	}
	return r.Value.FileOffsetEnd + 1
}

func (lr *LineReader) classify(ln *Line) Result4[*Line] {
	if filesz, known := lr.br.Filesz(); known && uint64(ln.FileOffsetEnd)+1 >= uint64(filesz) {
		return FoundEOF4(ln)
	}
	return Found4(ln)
}

// discoverLine runs Phase B (forward scan for the terminating newline) and
// Phase A (backward scan for the preceding newline), then assembles the
// LineParts spanning the discovered range. If blockLocal is true, the scan
// gives up (returns nil, nil — the Done signal) as soon as a boundary would
// require a block beyond the one containing fo.
func (lr *LineReader) discoverLine(fo blockreader.FileOffset, blockLocal bool) (*Line, error) {
	startBO := blockreader.BlockOffsetAtFileOffset(fo, lr.blocksz)

	end, nlFound, err := lr.scanForward(fo, blockLocal, startBO)
	if err != nil {
		return nil, err
	}
	if blockLocal && !nlFound {
		// Forward scan left the block without finding a newline and this
		// isn't known to be true EOF: the probe is inconclusive within one
		// block, so the bounded search must treat this as Done.
		if filesz, known := lr.br.Filesz(); !known || uint64(end)+1 < uint64(filesz) {
			return nil, nil
		}
	}

	begin, err := lr.scanBackward(fo, blockLocal, startBO)
	if err != nil {
		return nil, err
	}
	if blockLocal && begin.crossedBlock {
		return nil, nil
	}

	parts, err := lr.assembleParts(begin.offset, end)
	if err != nil {
		return nil, err
	}

	return &Line{
		Parts:               parts,
		FileOffsetBegin:      begin.offset,
		FileOffsetEnd:        end,
		TerminatedByNewline: nlFound,
	}, nil
}

// scanForward implements Phase B: find the first 0x0A at or after fo,
// returning its offset (inclusive end-of-line) and whether one was found.
// If EOF is reached first, end is the offset of the last byte read.
func (lr *LineReader) scanForward(fo blockreader.FileOffset, blockLocal bool, startBO blockreader.BlockOffset) (blockreader.FileOffset, bool, error) {
	bo := startBO
	bi := blockreader.BlockIndexAtFileOffset(fo, lr.blocksz)

	for {
		res := lr.br.ReadBlock(bo)
		switch res.Kind {
		case blockreader.Err:
			return 0, false, res.Error
		case blockreader.Done:
			// True EOF: the line ends at the last byte of the previous
			// block, unterminated.
			prevBO := bo - 1
			prevLen := lr.br.BlockszAt(prevBO)
			last := blockreader.FileOffsetAtBlockOffsetIndex(prevBO, lr.blocksz, blockreader.BlockIndex(uint64(prevLen)-1))
			return last, false, nil
		}

		data := res.Value.Data
		for i := bi; uint64(i) < uint64(len(data)); i++ {
			if data[i] == blockreader.NewlineByte {
				return blockreader.FileOffsetAtBlockOffsetIndex(bo, lr.blocksz, i), true, nil
			}
		}

		if blockLocal {
			return blockreader.FileOffsetAtBlockOffsetIndex(bo, lr.blocksz, blockreader.BlockIndex(len(data))-1), false, nil
		}

		bo++
		bi = 0
	}
}

type backwardResult struct {
	offset       blockreader.FileOffset
	crossedBlock bool
}

// scanBackward implements Phase A: find the first 0x0A strictly before fo,
// scanning backward; the line begins immediately after it, or at 0.
func (lr *LineReader) scanBackward(fo blockreader.FileOffset, blockLocal bool, startBO blockreader.BlockOffset) (backwardResult, error) {
	if fo == 0 {
		return backwardResult{offset: 0}, nil
	}

	probe := fo - 1
	bo := blockreader.BlockOffsetAtFileOffset(probe, lr.blocksz)

	for {
		if blockLocal && bo != startBO {
			// The boundary wasn't found within the block containing fo:
			// the bounded probe cannot conclude locally.
			return backwardResult{crossedBlock: true}, nil
		}

		res := lr.br.ReadBlock(bo)
		if res.Kind == blockreader.Err {
			return backwardResult{}, res.Error
		}
		if res.Kind == blockreader.Done {
			// Shouldn't happen: bo <= startBO and startBO was already
			// readable. Treat as "begins at 0" defensively.
			return backwardResult{offset: 0}, nil
		}

		data := res.Value.Data
		bi := blockreader.BlockIndexAtFileOffset(probe, lr.blocksz)

		for i := int64(bi); i >= 0; i-- {
			if data[i] == blockreader.NewlineByte {
				begin := blockreader.FileOffsetAtBlockOffsetIndex(bo, lr.blocksz, blockreader.BlockIndex(i)) + 1
				return backwardResult{offset: begin, crossedBlock: bo != startBO}, nil
			}
		}

		if bo == 0 {
			return backwardResult{offset: 0, crossedBlock: bo != startBO}, nil
		}
		bo--
		probe = blockreader.FileOffsetAtBlockOffset(bo+1, lr.blocksz) - 1
	}
}

// assembleParts builds the LineParts spanning [begin, end] (inclusive),
// one per block touched, in ascending block order (§3 Line invariants).
func (lr *LineReader) assembleParts(begin, end blockreader.FileOffset) ([]LinePart, error) {
	boBegin := blockreader.BlockOffsetAtFileOffset(begin, lr.blocksz)
	boEnd := blockreader.BlockOffsetAtFileOffset(end, lr.blocksz)

	var parts []LinePart
	for bo := boBegin; bo <= boEnd; bo++ {
		res := lr.br.ReadBlock(bo)
		if res.Kind != blockreader.Found {
			return nil, fmt.Errorf("linereader: expected block %d while assembling line [%d,%d]", bo, begin, end)
		}
		blk := res.Value

		var bi blockreader.BlockIndex
		if bo == boBegin {
			bi = blockreader.BlockIndexAtFileOffset(begin, lr.blocksz)
		}
		endIdx := blockreader.BlockIndex(blk.Len())
		if bo == boEnd {
			endIdx = blockreader.BlockIndexAtFileOffset(end, lr.blocksz) + 1
		}

		parts = append(parts, LinePart{
			Block:           blk,
			BeginIndex:      bi,
			EndIndex:        endIdx,
			FileOffsetBegin: blockreader.FileOffsetAtBlockOffsetIndex(bo, lr.blocksz, bi),
			BlockOffset:     bo,
			BlockSz:         lr.blocksz,
		})
		lr.blockRefs[bo]++
	}
	return parts, nil
}

func (lr *LineReader) insert(ln *Line) {
	lr.lines.Insert(ln.FileOffsetBegin, ln)
	lr.foendToFobeg.Insert(ln.FileOffsetEnd, ln.FileOffsetBegin)
}

// DropLine removes ln from both maps and releases any block that no
// surviving LinePart still references, recording reclaimed offsets into
// dropped (§4.2 "Drop API").
func (lr *LineReader) DropLine(ln *Line, dropped map[blockreader.BlockOffset]struct{}) {
	lr.lines.Delete(ln.FileOffsetBegin)
	lr.foendToFobeg.Delete(ln.FileOffsetEnd)

	for _, p := range ln.Parts {
		lr.blockRefs[p.BlockOffset]--
		if lr.blockRefs[p.BlockOffset] <= 0 {
			delete(lr.blockRefs, p.BlockOffset)
			lr.br.DropBlock(p.BlockOffset, dropped)
		}
	}
}
