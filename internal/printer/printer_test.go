package printer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/linereader"
	"github.com/jtmoon79/s4/internal/syslinereader"
)

func newTestReader(t *testing.T, content string) *syslinereader.SyslineReader {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "test.log")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	br, err := blockreader.New(p, blockreader.File, 64)
	if err != nil {
		t.Fatalf("blockreader.New: %v", err)
	}
	t.Cleanup(func() { _ = br.Close() })
	lr := linereader.New(br, true)
	return syslinereader.New(lr, 2025, "+00:00")
}

func TestPrintPlainRoundTrips(t *testing.T) {
	const content = "2020-01-01 00:00:00 hello\n2020-01-01 00:00:01 world\n"
	sr := newTestReader(t, content)

	_, r := sr.FindSysline(0)
	if r.Kind != linereader.Found {
		t.Fatalf("want Found, got %v (%v)", r.Kind, r.Error)
	}

	var buf bytes.Buffer
	lw := NewLockedWriter(&buf)
	if err := Print(lw, r.Value, "", true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "2020-01-01 00:00:00 hello\n" {
		t.Fatalf("got %q", buf.String())
	}
	if strings.Contains(buf.String(), ansiBold) {
		t.Fatal("non-terminal writer should never receive ANSI codes")
	}
}

func TestPrintNamePrefix(t *testing.T) {
	const content = "2020-01-01 00:00:00 hello\n"
	sr := newTestReader(t, content)

	_, r := sr.FindSysline(0)
	if r.Kind != linereader.FoundEOF {
		t.Fatalf("want FoundEOF, got %v (%v)", r.Kind, r.Error)
	}

	var buf bytes.Buffer
	lw := NewLockedWriter(&buf)
	if err := Print(lw, r.Value, "app.log: ", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "app.log: ") {
		t.Fatalf("got %q, want prefix %q", buf.String(), "app.log: ")
	}
}
