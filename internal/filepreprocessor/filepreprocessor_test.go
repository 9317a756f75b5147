package filepreprocessor

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/jtmoon79/s4/internal/blockreader"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProcessPathPlainLog(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "app.log", []byte("hello\n"))

	results := ProcessPath(p)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Kind != FileValid {
		t.Fatalf("kind = %v, want FileValid", results[0].Kind)
	}
	if results[0].Filetype != blockreader.File {
		t.Fatalf("filetype = %v, want File", results[0].Filetype)
	}
}

func TestProcessPathBareNamesAndSuffixRules(t *testing.T) {
	dir := t.TempDir()
	names := []string{"syslog", "messages", "faillog", "lastlog", "kernlog", "auth_log", "syslog.gz.old", "app.log.old"}
	for _, name := range names {
		p := writeFile(t, dir, name, []byte("x\n"))
		results := ProcessPath(p)
		if len(results) != 1 || results[0].Kind != FileValid {
			t.Fatalf("%s: results = %+v, want one FileValid", name, results)
		}
	}
}

func TestProcessPathUnsupportedZstd(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "app.log.zst", []byte("x"))

	results := ProcessPath(p)
	if len(results) != 1 || results[0].Kind != FileErrNotSupported {
		t.Fatalf("results = %+v, want one FileErrNotSupported", results)
	}
}

func TestProcessPathUnrecognizedName(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "notes.txt", []byte("x"))

	results := ProcessPath(p)
	if len(results) != 1 || results[0].Kind != FileErrNotSupported {
		t.Fatalf("results = %+v, want one FileErrNotSupported", results)
	}
}

func TestProcessPathNotAFile(t *testing.T) {
	dir := t.TempDir()

	results := ProcessPath(dir)
	if len(results) != 1 || results[0].Kind != FileErrNotAFile {
		t.Fatalf("results = %+v, want one FileErrNotAFile", results)
	}

	results = ProcessPath(filepath.Join(dir, "does-not-exist.log"))
	if len(results) != 1 || results[0].Kind != FileErrNotAFile {
		t.Fatalf("missing path: results = %+v, want one FileErrNotAFile", results)
	}
}

func writeTar(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tw := tar.NewWriter(f)
	defer tw.Close()

	for name, body := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(body))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestProcessPathTarExpandsMembers(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs.tar")
	writeTar(t, p, map[string]string{
		"var/log/syslog":  "a\n",
		"var/log/app.log": "b\n",
		"README.txt":      "not a log",
	})

	results := ProcessPath(p)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (README.txt should be skipped): %+v", len(results), results)
	}
	for _, r := range results {
		if r.Kind != FileValid {
			t.Fatalf("result = %+v, want FileValid", r)
		}
		if r.Filetype != blockreader.FileTar {
			t.Fatalf("filetype = %v, want FileTar", r.Filetype)
		}
	}
}

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	defer gw.Close()

	tw := tar.NewWriter(gw)
	defer tw.Close()

	for name, body := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(body))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestProcessPathTarGzExpandsMembers(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs.tar.gz")
	writeTarGz(t, p, map[string]string{
		"var/log/syslog":  "a\n",
		"var/log/app.log": "b\n",
		"README.txt":      "not a log",
	})

	results := ProcessPath(p)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (README.txt should be skipped): %+v", len(results), results)
	}
	for _, r := range results {
		if r.Kind != FileValid {
			t.Fatalf("result = %+v, want FileValid", r)
		}
		if r.Filetype != blockreader.FileTarGz {
			t.Fatalf("filetype = %v, want FileTarGz", r.Filetype)
		}
	}
}

func TestProcessPathMalformedTar(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "broken.tar", []byte("not a real tar archive"))

	results := ProcessPath(p)
	if len(results) != 1 || results[0].Kind != FileErrNotParseable {
		t.Fatalf("results = %+v, want one FileErrNotParseable", results)
	}
}
