package filepreprocessor

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jtmoon79/s4/internal/blockreader"
)

// rule maps a filename suffix to the FileType a match implies. Checked in
// order, most specific suffix first, so "app.tar.gz" resolves via ".tar.gz"
// rather than the generic ".gz" entry further down the table.
type rule struct {
	suffix      string
	ft          blockreader.FileType
	archive     bool
	unsupported bool
}

var rules = []rule{
	{".tar.gz", blockreader.FileGz, true, false},
	{".tgz", blockreader.FileGz, true, false},
	{".tar.xz", blockreader.FileXz, true, false},
	{".txz", blockreader.FileXz, true, false},
	{".tar.zst", blockreader.FileGz, true, true},
	{".tar.zstd", blockreader.FileGz, true, true},
	{".tzst", blockreader.FileGz, true, true},
	{".tar", blockreader.File, true, false},

	{".log.gz", blockreader.FileGz, false, false},
	{".csv.gz", blockreader.FileGz, false, false},
	{".json.gz", blockreader.FileGz, false, false},
	{".log.xz", blockreader.FileXz, false, false},
	{".csv.xz", blockreader.FileXz, false, false},
	{".json.xz", blockreader.FileXz, false, false},
	{".log.zst", blockreader.File, false, true},
	{".log.zstd", blockreader.File, false, true},
	{".csv.zst", blockreader.File, false, true},
	{".csv.zstd", blockreader.File, false, true},
	{".json.zst", blockreader.File, false, true},
	{".json.zstd", blockreader.File, false, true},
	{".log", blockreader.File, false, false},
	{".csv", blockreader.File, false, false},
	{".json", blockreader.File, false, false},
	{".gz", blockreader.FileGz, false, false},
	{".xz", blockreader.FileXz, false, false},
	{".zst", blockreader.File, false, true},
	{".zstd", blockreader.File, false, true},
}

// bareNames are well-known log file names carrying no extension at all.
var bareNames = map[string]bool{
	"syslog":   true,
	"messages": true,
	"faillog":  true,
	"lastlog":  true,
	"kernlog":  true,
}

// Recognized reports whether name looks like a supported log file or
// archive by name alone, without touching the filesystem. Used by callers
// scanning a directory's entries to decide which to hand to ProcessPath.
func Recognized(name string) bool {
	_, _, recognized, unsupported := classify(name)
	return recognized && !unsupported
}

// classify reports how the base name of a candidate path should be
// understood: its FileType if plain/compressed, whether it names a tar
// archive, whether it was recognised at all, and whether it was recognised
// but names a format this build can't decode (currently zstd, since
// internal/blockreader has no zstd blockSource, §2).
func classify(name string) (ft blockreader.FileType, archive, recognized, unsupported bool) {
	lower := strings.TrimSuffix(strings.ToLower(name), ".old")

	if bareNames[lower] {
		return blockreader.File, false, true, false
	}
	if strings.HasSuffix(lower, "_log") {
		return blockreader.File, false, true, false
	}
	for _, r := range rules {
		if strings.HasSuffix(lower, r.suffix) {
			return r.ft, r.archive, true, r.unsupported
		}
	}
	return blockreader.FileUnset, false, false, false
}

// ProcessPath resolves one user-supplied path into zero or more concrete
// sources. A plain or compressed file yields exactly one FileValid result;
// a tar archive yields one FileValid per recognised regular member, with
// composite paths joined by blockreader.SubpathSep; anything else yields
// exactly one error result (§6, §7).
func ProcessPath(path string) []ProcessPathResult {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsPermission(err) {
			return []ProcessPathResult{noPermissions(path, err)}
		}
		return []ProcessPathResult{notAFile(path)}
	}
	if !info.Mode().IsRegular() {
		return []ProcessPathResult{notAFile(path)}
	}

	ft, archive, recognized, unsupported := classify(filepath.Base(path))
	if !recognized || unsupported {
		return []ProcessPathResult{notSupported(path)}
	}
	if !archive {
		return []ProcessPathResult{valid(path, ft)}
	}

	// ListTarMembers wants the same promoted FileType that every member's
	// BlockReader will later be opened with (blockreader.New dispatches a
	// tar member through newTarMemberSource using this promoted type), not
	// the archive's own pre-promotion compression.
	archiveFt := ft.ToTar()
	members, err := blockreader.ListTarMembers(path, archiveFt)
	if err != nil {
		return []ProcessPathResult{notParseable(path, err)}
	}

	results := make([]ProcessPathResult, 0, len(members))
	for _, m := range members {
		_, _, mrecognized, munsupported := classify(filepath.Base(m.Name))
		if !mrecognized || munsupported {
			log.Printf("[INFO] Skipping unsupported file %s in archive %s", m.Name, path)
			continue
		}
		results = append(results, valid(path+blockreader.SubpathSep+m.Name, archiveFt))
	}
	return results
}
