package blockreader

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SplitSubpath splits a path of the form "archive.tar||member/path" on
// SubpathSep. ok is false if the separator is absent.
func SplitSubpath(path string) (archivePath, memberPath string, ok bool) {
	i := strings.Index(path, SubpathSep)
	if i < 0 {
		return path, "", false
	}
	return path[:i], path[i+len(SubpathSep):], true
}

// countingReader tracks how many bytes have been read through it, so the
// tar index scan can learn a member's starting byte offset without ever
// reading the member's body (§4.1 "Opening must not read the body").
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// newTarMemberSource locates memberPath inside the tar archive at
// archivePath and returns a blockSource exposing just that member's
// uncompressed bytes as its own logical file.
//
// outerType must already reflect whether the archive itself is plain,
// gzip-, or xz-compressed (classification is an external concern, §6); a
// plain tar yields a true random-access source via io.SectionReader, while
// a compressed tar degrades to the same forward-only streaming discipline
// as gzip/xz (§9).
func newTarMemberSource(archivePath, memberPath string, outerType FileType) (blockSource, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("blockreader: open archive %s: %w", archivePath, err)
	}

	body, bodyCloser, err := openTarBody(f, archivePath, outerType)
	if err != nil {
		return nil, err
	}

	cr := &countingReader{r: body}
	tr := tar.NewReader(cr)

	for {
		hdr, herr := tr.Next()
		if herr == io.EOF {
			bodyCloser.Close()
			return nil, fmt.Errorf("blockreader: member %q not found in %s", memberPath, archivePath)
		}
		if herr != nil {
			bodyCloser.Close()
			return nil, fmt.Errorf("blockreader: reading archive %s: %w", archivePath, herr)
		}
		if hdr.Typeflag != tar.TypeReg && hdr.Typeflag != tar.TypeRegA {
			continue
		}
		if hdr.Name != memberPath {
			// Skip to the next header without reading this member's body
			// into caller memory beyond what tar.Reader itself buffers.
			if _, err := io.Copy(io.Discard, tr); err != nil {
				bodyCloser.Close()
				return nil, fmt.Errorf("blockreader: skipping %s in %s: %w", hdr.Name, archivePath, err)
			}
			continue
		}

		if outerType == FileTar {
			// Plain (uncompressed) tar: the member occupies a known byte
			// range of the underlying file, so a SectionReader gives true
			// random access without re-decoding anything.
			bodyCloser.Close()
			sr := io.NewSectionReader(f, cr.n, hdr.Size)
			return &sectionSource{sr: sr, size: FileSz(hdr.Size), closer: f}, nil
		}

		// Compressed tar: the member's bytes follow sequentially from the
		// current position of the decompressing reader. Limit reads to
		// the member's declared size so EOF is reported at the right
		// place even though the underlying stream continues.
		limited := io.LimitReader(tr, hdr.Size)
		ss := newStreamSource(limited, bodyCloser)
		ss.size = FileSz(hdr.Size)
		ss.known = true
		return ss, nil
	}
}

// newXzTarReader is split out so the xz import only appears once per file
// in this package; see source.go for the gzip equivalent.
func newXzTarReader(f *os.File) (io.Reader, error) {
	return newXzReader(bufio.NewReader(f))
}

// openTarBody opens the byte stream of the tar archive body for f,
// decompressing per outerType. Shared by newTarMemberSource (address one
// member) and ListTarMembers (enumerate all of them).
func openTarBody(f *os.File, archivePath string, outerType FileType) (io.Reader, io.Closer, error) {
	var body io.Reader = f
	var bodyCloser io.Closer = f
	switch outerType {
	case FileTarGz:
		gr, gerr := newParallelGzipReader(bufio.NewReader(f))
		if gerr != nil {
			f.Close()
			return nil, nil, fmt.Errorf("blockreader: gzip archive %s: %w", archivePath, gerr)
		}
		body = gr
		bodyCloser = closerFunc(func() error { gr.Close(); return f.Close() })
	case FileTarXz:
		xr, xerr := newXzTarReader(f)
		if xerr != nil {
			f.Close()
			return nil, nil, fmt.Errorf("blockreader: xz archive %s: %w", archivePath, xerr)
		}
		body = xr
		bodyCloser = f
	}
	return body, bodyCloser, nil
}

// TarMember describes one regular-file entry found while enumerating a tar
// archive, without reading any member's body (§4.1 "opening must not read
// the body").
type TarMember struct {
	Name string
	Size FileSz
}

// ListTarMembers walks the tar index of archivePath. outerType is the
// promoted FileType (FileTar, FileTarGz, or FileTarXz, per FileType.ToTar)
// that every member's BlockReader will later be opened with — the same
// convention newTarMemberSource uses for its outerType parameter. It
// returns every regular-file member. Used by internal/filepreprocessor to
// expand an archive argument into one composite path per member.
func ListTarMembers(archivePath string, outerType FileType) ([]TarMember, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("blockreader: open archive %s: %w", archivePath, err)
	}

	body, bodyCloser, err := openTarBody(f, archivePath, outerType)
	if err != nil {
		return nil, err
	}
	defer bodyCloser.Close()

	tr := tar.NewReader(body)
	var members []TarMember
	for {
		hdr, herr := tr.Next()
		if herr == io.EOF {
			return members, nil
		}
		if herr != nil {
			return members, fmt.Errorf("blockreader: reading archive %s: %w", archivePath, herr)
		}
		if hdr.Typeflag != tar.TypeReg && hdr.Typeflag != tar.TypeRegA {
			continue
		}
		members = append(members, TarMember{Name: hdr.Name, Size: FileSz(hdr.Size)})
	}
}
