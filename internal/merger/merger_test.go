package merger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/linereader"
	"github.com/jtmoon79/s4/internal/printer"
	"github.com/jtmoon79/s4/internal/syslinereader"
)

func newSource(t *testing.T, name, content string) Source {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	br, err := blockreader.New(p, blockreader.File, 32)
	if err != nil {
		t.Fatalf("blockreader.New: %v", err)
	}
	t.Cleanup(func() { _ = br.Close() })
	lr := linereader.New(br, true)
	return Source{Name: name, Reader: syslinereader.New(lr, 2025, "+00:00")}
}

func TestMergeInterleavesByDatetime(t *testing.T) {
	a := newSource(t, "a.log", "2020-01-01 00:00:01 from a\n2020-01-01 00:00:03 from a\n")
	b := newSource(t, "b.log", "2020-01-01 00:00:00 from b\n2020-01-01 00:00:02 from b\n")

	var buf bytes.Buffer
	lw := printer.NewLockedWriter(&buf)

	if err := Merge(lw, []Source{a, b}, Options{ShowNames: true}); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	want := "b.log: 2020-01-01 00:00:00 from b\n" +
		"a.log: 2020-01-01 00:00:01 from a\n" +
		"b.log: 2020-01-01 00:00:02 from b\n" +
		"a.log: 2020-01-01 00:00:03 from a\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMergeRespectsAfterBefore(t *testing.T) {
	a := newSource(t, "a.log", strings.Join([]string{
		"2020-01-01 00:00:00 one\n",
		"2020-01-01 00:00:05 two\n",
		"2020-01-01 00:00:10 three\n",
	}, ""))

	after := time.Date(2020, 1, 1, 0, 0, 1, 0, time.UTC)
	before := time.Date(2020, 1, 1, 0, 0, 9, 0, time.UTC)

	var buf bytes.Buffer
	lw := printer.NewLockedWriter(&buf)
	if err := Merge(lw, []Source{a}, Options{After: &after, Before: &before}); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	if !strings.Contains(got, "two") || strings.Contains(got, "one") || strings.Contains(got, "three") {
		t.Fatalf("got %q, want only the line at 00:00:05", got)
	}
}
