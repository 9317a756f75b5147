package blockreader

import (
	"errors"
	"fmt"
	"io"

	"github.com/jtmoon79/s4/internal/debugtrace"
)

// BlockReader presents one file (plain, gzip, xz, or a tar member of any of
// those) as a read-only sequence of fixed-size Blocks, keyed by BlockOffset
// (§4.1).
type BlockReader struct {
	path     string
	filetype FileType
	blocksz  BlockSz
	src      blockSource

	filesz          FileSz
	fileszKnown     bool
	blockoffsetLast BlockOffset
	hasBlocks       bool

	cache map[BlockOffset]*Block
}

// New opens path (interpreting SubpathSep as an archive-member separator)
// for block-wise reading. It must not read the file body (§4.1).
func New(path string, filetype FileType, blocksz BlockSz) (*BlockReader, error) {
	if blocksz < 1 {
		return nil, fmt.Errorf("blockreader: blocksz must be >= 1, got %d", blocksz)
	}

	var src blockSource
	var err error

	archivePath, memberPath, isMember := SplitSubpath(path)
	if isMember {
		src, err = newTarMemberSource(archivePath, memberPath, filetype)
	} else {
		switch filetype {
		case File:
			src, err = newPlainSource(path)
		case FileGz:
			src, err = newGzipSource(path)
		case FileXz:
			src, err = newXzSource(path)
		default:
			return nil, fmt.Errorf("blockreader: unsupported top-level filetype %s for %s", filetype, path)
		}
	}
	if err != nil {
		return nil, err
	}

	br := &BlockReader{
		path:     path,
		filetype: filetype,
		blocksz:  blocksz,
		src:      src,
		cache:    make(map[BlockOffset]*Block),
	}

	if sz, known := src.Filesz(); known {
		br.setFilesz(sz)
	}

	return br, nil
}

func (br *BlockReader) setFilesz(sz FileSz) {
	br.filesz = sz
	br.fileszKnown = true
	if bo, ok := LastBlockOffset(sz, br.blocksz); ok {
		br.blockoffsetLast = bo
		br.hasBlocks = true
	} else {
		br.hasBlocks = false
	}
}

// Filesz returns the logical file size, if known yet. For gzip/tar it is
// known from construction; for xz it becomes known once streaming reaches
// EOF (see source.go).
func (br *BlockReader) Filesz() (FileSz, bool) { return br.filesz, br.fileszKnown }

// Blocksz returns the configured block size.
func (br *BlockReader) Blocksz() BlockSz { return br.blocksz }

// Path returns the path this reader was constructed with.
func (br *BlockReader) Path() string { return br.path }

// ReadBlock returns the block at offset bo, or Done if bo is past the end
// of the file, or Err on I/O/decode failure (§4.1).
func (br *BlockReader) ReadBlock(bo BlockOffset) Result3[*Block] {
	defer debugtrace.Enter("ReadBlock(%d) %s", bo, br.path)()

	if blk, ok := br.cache[bo]; ok {
		return Found3[*Block](blk)
	}

	if br.fileszKnown {
		if !br.hasBlocks || bo > br.blockoffsetLast {
			return Done3[*Block]()
		}
	}

	off := int64(FileOffsetAtBlockOffset(bo, br.blocksz))
	buf := make([]byte, br.blocksz)
	n, err := br.src.ReadAt(buf, off)

	if n == 0 && err != nil {
		if isEOF(err) {
			br.learnFileszFromSource()
			return Done3[*Block]()
		}
		return Err3[*Block](fmt.Errorf("blockreader: read block %d of %s: %w", bo, br.path, err))
	}

	blk := &Block{Offset: bo, Data: buf[:n]}
	br.cache[bo] = blk

	if err != nil && isEOF(err) {
		// Short final block: now we know filesz precisely.
		br.learnFileszFromSource()
	}

	return Found3[*Block](blk)
}

func (br *BlockReader) learnFileszFromSource() {
	if sz, known := br.src.Filesz(); known {
		br.setFilesz(sz)
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// BlockszAt returns the actual length of block bo: equal to Blocksz()
// except possibly for the final, short block.
func (br *BlockReader) BlockszAt(bo BlockOffset) BlockSz {
	r := br.ReadBlock(bo)
	if r.Kind != Found {
		return 0
	}
	return BlockSz(r.Value.Len())
}

// DropBlock evicts block bo from the cache if nothing else in the caller's
// bookkeeping still references it, recording the eviction in dropped.
// BlockReader itself holds no reference-count beyond its own cache entry: by
// the time a LinePart's owning Line has been dropped (§3), the caller is
// expected to have already determined no other Line still refers to this
// block before calling DropBlock.
func (br *BlockReader) DropBlock(bo BlockOffset, dropped map[BlockOffset]struct{}) bool {
	if _, ok := br.cache[bo]; !ok {
		return false
	}
	delete(br.cache, bo)
	if dropped != nil {
		dropped[bo] = struct{}{}
	}
	return true
}

// Close releases the underlying OS resources.
func (br *BlockReader) Close() error {
	return br.src.Close()
}
