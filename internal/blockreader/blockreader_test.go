package blockreader

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBlockReaderPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.log", []byte("abcdefgh"))

	br, err := New(path, File, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer br.Close()

	r0 := br.ReadBlock(0)
	if r0.Kind != Found || string(r0.Value.Data) != "abcd" {
		t.Fatalf("block 0 = %+v", r0)
	}
	r1 := br.ReadBlock(1)
	if r1.Kind != Found || string(r1.Value.Data) != "efgh" {
		t.Fatalf("block 1 = %+v", r1)
	}
	r2 := br.ReadBlock(2)
	if r2.Kind != Done {
		t.Fatalf("block 2 = %+v, want Done", r2)
	}

	// Repeated reads are idempotent and byte-equal (§8).
	r0again := br.ReadBlock(0)
	if r0again.Kind != Found || !bytes.Equal(r0again.Value.Data, r0.Value.Data) {
		t.Fatalf("repeated read diverged: %+v vs %+v", r0again, r0)
	}
}

// TestGzipTwoByte implements scenario S5: a two-byte gzip payload "AB"
// with blocksz=2.
func TestGzipTwoByte(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte("AB")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "sample.gz", buf.Bytes())

	br, err := New(path, FileGz, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer br.Close()

	r0 := br.ReadBlock(0)
	if r0.Kind != Found || !bytes.Equal(r0.Value.Data, []byte{0x41, 0x42}) {
		t.Fatalf("block 0 = %+v", r0)
	}
	r1 := br.ReadBlock(1)
	if r1.Kind != Done {
		t.Fatalf("block 1 = %+v, want Done", r1)
	}
}

// TestGzipForwardSkipThenBackwardProbe exercises the §9 "backward probes
// are served from cache" requirement for a sequential-only source: jumping
// straight to a later block must not strand the skipped blocks behind an
// unreadable cursor, since FindSyslineAtDatetimeFilter's binary search and a
// merger seeded by --after both read back and forth across a compressed
// file rather than strictly forward.
func TestGzipForwardSkipThenBackwardProbe(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	content := []byte("AABBCCDDEEFFGGHH") // 8 blocks of 2 bytes each
	if _, err := gw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "sample.gz", buf.Bytes())

	br, err := New(path, FileGz, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer br.Close()

	// Jump straight to block 6 ("GG"), skipping blocks 0-5 entirely.
	r6 := br.ReadBlock(6)
	if r6.Kind != Found || string(r6.Value.Data) != "GG" {
		t.Fatalf("block 6 = %+v, want GG", r6)
	}

	// A block skipped during that jump must still be readable, as a
	// binary search or a --after seek would require.
	r2 := br.ReadBlock(2)
	if r2.Kind != Found || string(r2.Value.Data) != "CC" {
		t.Fatalf("block 2 = %+v, want CC (served from the skipped-span cache)", r2)
	}
	r0 := br.ReadBlock(0)
	if r0.Kind != Found || string(r0.Value.Data) != "AA" {
		t.Fatalf("block 0 = %+v, want AA", r0)
	}
}

// TestTarMember implements scenario S6: "sample.tar||fileA" containing
// "ABCDEFGH" with blocksz=2.
func TestTarMember(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	content := []byte("ABCDEFGH")
	if err := tw.WriteHeader(&tar.Header{Name: "fileA", Size: int64(len(content)), Mode: 0o644}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	archivePath := writeFile(t, dir, "sample.tar", buf.Bytes())
	path := archivePath + SubpathSep + "fileA"

	br, err := New(path, FileTar, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer br.Close()

	cases := []struct {
		bo   BlockOffset
		want string
	}{
		{0, "AB"},
		{1, "CD"},
		{3, "GH"},
	}
	for _, c := range cases {
		r := br.ReadBlock(c.bo)
		if r.Kind != Found || string(r.Value.Data) != c.want {
			t.Fatalf("block %d = %+v, want %q", c.bo, r, c.want)
		}
	}
	r4 := br.ReadBlock(4)
	if r4.Kind != Done {
		t.Fatalf("block 4 = %+v, want Done", r4)
	}
}

// TestTarGzMember is TestTarMember's compressed-archive counterpart: the
// same "fileA" member, but the outer .tar is itself gzipped, exercising the
// streamSource path of newTarMemberSource instead of sectionSource.
func TestTarGzMember(t *testing.T) {
	dir := t.TempDir()
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	content := []byte("ABCDEFGH")
	if err := tw.WriteHeader(&tar.Header{Name: "fileA", Size: int64(len(content)), Mode: 0o644}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	if _, err := gw.Write(tarBuf.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}

	archivePath := writeFile(t, dir, "sample.tar.gz", gzBuf.Bytes())
	path := archivePath + SubpathSep + "fileA"

	br, err := New(path, FileTarGz, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer br.Close()

	cases := []struct {
		bo   BlockOffset
		want string
	}{
		{0, "AB"},
		{1, "CD"},
		{3, "GH"},
	}
	for _, c := range cases {
		r := br.ReadBlock(c.bo)
		if r.Kind != Found || string(r.Value.Data) != c.want {
			t.Fatalf("block %d = %+v, want %q", c.bo, r, c.want)
		}
	}
	r4 := br.ReadBlock(4)
	if r4.Kind != Done {
		t.Fatalf("block 4 = %+v, want Done", r4)
	}
}

// TestListTarMembersGz exercises ListTarMembers directly against a gzipped
// tar, the same entry point internal/filepreprocessor.ProcessPath uses for
// a .tar.gz argument, with the promoted FileTarGz type it is required to
// receive (see ListTarMembers's doc comment).
func TestListTarMembersGz(t *testing.T) {
	dir := t.TempDir()
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	files := map[string]string{"a.log": "1\n", "b.log": "2\n"}
	for name, body := range files {
		if err := tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(body)), Mode: 0o644}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	if _, err := gw.Write(tarBuf.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	archivePath := writeFile(t, dir, "sample.tar.gz", gzBuf.Bytes())

	members, err := ListTarMembers(archivePath, FileTarGz)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2: %+v", len(members), members)
	}
}

func TestSplitSubpath(t *testing.T) {
	archive, member, ok := SplitSubpath("logs.tar||inner/file.log")
	if !ok || archive != "logs.tar" || member != "inner/file.log" {
		t.Fatalf("SplitSubpath = %q, %q, %v", archive, member, ok)
	}
	if _, _, ok := SplitSubpath("plain.log"); ok {
		t.Fatalf("expected no subpath separator in plain.log")
	}
}

func TestRejectsZeroBlocksz(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.log", []byte("x"))
	if _, err := New(path, File, 0); err == nil {
		t.Fatalf("expected error for blocksz=0")
	}
}
