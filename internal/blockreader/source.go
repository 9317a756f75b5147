package blockreader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

// blockSource is the uniform random-access view a BlockReader reads from.
// Plain files and uncompressed tar members implement it directly over
// os.File/io.SectionReader (true random access). gzip, xz, and compressed
// tar members implement it as a forward-only stream with a hidden cursor
// (§4.1, §9 "Sequential-only compressors").
type blockSource interface {
	// ReadAt behaves like io.ReaderAt: it reads len(p) bytes starting at
	// file offset off, or fewer at EOF (with err == io.EOF).
	ReadAt(p []byte, off int64) (int, error)
	// Filesz returns the logical (uncompressed) file size and whether it
	// is known yet. Sequential sources may not know it until EOF.
	Filesz() (FileSz, bool)
	Close() error
}

// --- plain, fully random-access source -------------------------------------------------

type plainSource struct {
	f    *os.File
	size FileSz
}

func newPlainSource(path string) (*plainSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockreader: open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockreader: stat %s: %w", path, err)
	}
	return &plainSource{f: f, size: FileSz(st.Size())}, nil
}

func (s *plainSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *plainSource) Filesz() (FileSz, bool)                  { return s.size, true }
func (s *plainSource) Close() error                            { return s.f.Close() }

// sectionSource wraps an io.SectionReader (e.g. a tar member stored
// uncompressed inside a plain tar) to give it random access without a
// second open of the underlying file.
type sectionSource struct {
	sr   *io.SectionReader
	size FileSz
	// closer closes the underlying file once the member is released.
	closer io.Closer
}

func (s *sectionSource) ReadAt(p []byte, off int64) (int, error) { return s.sr.ReadAt(p, off) }
func (s *sectionSource) Filesz() (FileSz, bool)                  { return s.size, true }
func (s *sectionSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// --- forward-only streaming source (gzip, xz, compressed tar members) -----------------

// errRewindUnsupported is returned when a caller attempts to ReadAt behind
// the streaming cursor of a sequential-only source.
var errRewindUnsupported = errors.New("blockreader: cannot rewind a sequential-only source")

type streamSource struct {
	r      *bufio.Reader
	pos    int64 // next unread logical byte offset
	size   FileSz
	known  bool
	closer io.Closer

	// cache holds every byte span skipped while discarding forward, keyed
	// by its starting offset, so a later backward probe within an
	// already-streamed range (binary search in
	// FindSyslineAtDatetimeFilter, a merger seeded by --after, §9) is
	// served from memory instead of failing with errRewindUnsupported.
	cache map[int64][]byte
}

func newStreamSource(r io.Reader, closer io.Closer) *streamSource {
	return &streamSource{r: bufio.NewReaderSize(r, 256*1024), closer: closer, cache: make(map[int64][]byte)}
}

func (s *streamSource) Filesz() (FileSz, bool) { return s.size, s.known }
func (s *streamSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *streamSource) ReadAt(p []byte, off int64) (int, error) {
	if off < s.pos {
		if data, ok := s.fromCache(off, len(p)); ok {
			return copy(p, data), nil
		}
		return 0, errRewindUnsupported
	}
	if off > s.pos {
		if err := s.discard(off - s.pos); err != nil {
			return 0, err
		}
	}
	n, err := io.ReadFull(s.r, p)
	s.pos += int64(n)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		s.known = true
		s.size = FileSz(s.pos)
		return n, io.EOF
	}
	return n, err
}

// fromCache looks for a previously-skipped span covering [off, off+ln).
func (s *streamSource) fromCache(off int64, ln int) ([]byte, bool) {
	for start, seg := range s.cache {
		if off >= start && off+int64(ln) <= start+int64(len(seg)) {
			o := off - start
			return seg[o : o+int64(ln)], true
		}
	}
	return nil, false
}

// discard advances the stream by n bytes without returning them to the
// caller, but — unlike simply reading into io.Discard — remembers the
// whole skipped span in s.cache so a subsequent backward ReadAt can still
// be served (§4.1, §9).
func (s *streamSource) discard(n int64) error {
	start := s.pos
	seg := make([]byte, 0, n)
	buf := make([]byte, 64*1024)
	for int64(len(seg)) < n {
		remaining := n - int64(len(seg))
		chunk := int64(len(buf))
		if chunk > remaining {
			chunk = remaining
		}
		k, err := io.ReadFull(s.r, buf[:chunk])
		if k > 0 {
			seg = append(seg, buf[:k]...)
			s.pos += int64(k)
		}
		if err != nil {
			if len(seg) > 0 {
				s.cache[start] = seg
			}
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				s.known = true
				s.size = FileSz(s.pos)
				return io.EOF
			}
			return err
		}
	}
	s.cache[start] = seg
	return nil
}

// --- gzip ---------------------------------------------------------------------------

func newGzipSource(path string) (*streamSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockreader: open %s: %w", path, err)
	}
	size, sizeErr := gzipUncompressedSize(f)
	if sizeErr != nil {
		// Not fatal: the ISIZE trailer can be unreliable for multi-member
		// or very large (>4GiB, mod 2^32) streams, per §6's caveat. Fall
		// back to lazily discovering filesz at EOF.
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	gr, err := newParallelGzipReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockreader: gzip %s: %w", path, err)
	}
	ss := newStreamSource(gr, closerFunc(func() error {
		gr.Close()
		return f.Close()
	}))
	if sizeErr == nil {
		ss.size = size
		ss.known = true
	}
	return ss, nil
}

// gzipUncompressedSize reads the trailing 4-byte little-endian ISIZE field
// of a gzip stream (RFC 1952 §2.3.1). The value is the uncompressed size
// modulo 2^32, so it is unreliable for streams >= 4GiB; callers must treat
// it as a hint and tolerate truncation (§6).
func gzipUncompressedSize(f *os.File) (FileSz, error) {
	st, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if st.Size() < 8 {
		return 0, fmt.Errorf("blockreader: gzip file too short for ISIZE trailer")
	}
	var trailer [4]byte
	if _, err := f.ReadAt(trailer[:], st.Size()-4); err != nil {
		return 0, err
	}
	return FileSz(binary.LittleEndian.Uint32(trailer[:])), nil
}

func newParallelGzipReader(r io.Reader) (*pgzip.Reader, error) {
	return pgzip.NewReader(r)
}

// --- xz -------------------------------------------------------------------------------

// newXzSource opens an xz stream as a sequential source. ulikunitz/xz does
// not expose a lightweight stream-index reader publicly (only an internal
// one, see reader_at.go grounding in the retrieval pack), so unlike gzip's
// ISIZE trailer, filesz here is discovered lazily at EOF rather than at
// construction time; ReadBlock still returns Done once the streaming
// cursor passes the last real byte, honoring §4.1's in-band EOF contract.
func newXzSource(path string) (*streamSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockreader: open %s: %w", path, err)
	}
	xr, err := newXzReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockreader: xz %s: %w", path, err)
	}
	return newStreamSource(xr, f), nil
}

// newXzReader wraps xz.NewReader so both the top-level and tar-member xz
// sources share one construction point.
func newXzReader(r io.Reader) (io.Reader, error) {
	return xz.NewReader(r)
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }
