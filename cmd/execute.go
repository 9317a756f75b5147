// Package cmd implements the command-line interface for s4.
package cmd

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jtmoon79/s4/internal/blockreader"
	"github.com/jtmoon79/s4/internal/debugtrace"
	"github.com/jtmoon79/s4/internal/filepreprocessor"
	"github.com/jtmoon79/s4/internal/linereader"
	"github.com/jtmoon79/s4/internal/merger"
	"github.com/jtmoon79/s4/internal/printer"
	"github.com/jtmoon79/s4/internal/syslinereader"
)

// executeRun is the main execution function for the root command. It
// orchestrates the entire pipeline:
//  1. Collect input file arguments
//  2. Resolve each into concrete, openable sources (plain/compressed
//     files, tar members)
//  3. Open a SyslineReader per source
//  4. Merge all sources in datetime order and print
func executeRun(cmd *cobra.Command, args []string) {
	startTime := time.Now()

	debugtrace.Enabled = debugFlag

	validateTimeFilters()

	cfg, err := loadConfig(configFlag)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	applyFlagOverrides(&cfg)

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "[ERROR] No files or directories given.")
		os.Exit(1)
	}

	paths := collectFiles(args)
	if len(paths) == 0 {
		fmt.Println("[INFO] No log files found. Exiting.")
		os.Exit(0)
	}

	sources, totalSize := openSources(paths, cfg)
	if len(sources) == 0 {
		log.Fatalf("[ERROR] No files could be opened. Check that files exist, are readable, and in a supported format.")
	}
	defer closeSources(sources)

	after, before := resolveWindow(startTime)

	highlight := !noHighlightFlag
	if !noHighlightFlag && cfg.Highlight != nil {
		highlight = *cfg.Highlight
	}

	lw := printer.NewLockedWriter(os.Stdout)
	opts := merger.Options{
		After:     after,
		Before:    before,
		Highlight: highlight,
		ShowNames: namesFlag || len(sources) > 1,
	}

	mergerSources := make([]merger.Source, len(sources))
	for i, s := range sources {
		mergerSources[i] = merger.Source{Name: s.name, Reader: s.sr}
	}

	if err := merger.Merge(lw, mergerSources, opts); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	duration := time.Since(startTime)
	debugtrace.Printf("processed %d source(s), %s, in %s", len(sources), formatBytes(totalSize), duration)
}

// openSource pairs an opened SyslineReader with its display name and the
// underlying resources that must be closed when the run finishes.
type openSource struct {
	name string
	sr   *syslinereader.SyslineReader
	br   *blockreader.BlockReader
}

// candidate is one filepreprocessor.FileValid result waiting to be opened.
type candidate struct {
	path string
	ft   blockreader.FileType
}

// openSources expands every collected path through internal/filepreprocessor
// (so a tar archive contributes one entry per member), then opens a
// BlockReader/LineReader/SyslineReader stack per valid result. Opening
// itself is fanned out across determineWorkerCount(len(candidates))
// goroutines, the same worker-pool sizing the teacher used for parallel
// file parsing.
func openSources(paths []string, cfg Config) ([]openSource, int64) {
	var candidates []candidate
	var totalSize int64

	for _, path := range paths {
		if fi, err := os.Stat(path); err == nil {
			totalSize += fi.Size()
		}

		for _, res := range filepreprocessor.ProcessPath(path) {
			switch res.Kind {
			case filepreprocessor.FileValid:
				candidates = append(candidates, candidate{path: res.Path, ft: res.Filetype})
			case filepreprocessor.FileErrNotSupported:
				log.Printf("[WARN] Unsupported log format: %s", res.Path)
			case filepreprocessor.FileErrNoPermissions:
				log.Printf("[WARN] No permission to read %s: %v", res.Path, res.Err)
			case filepreprocessor.FileErrNotAFile:
				log.Printf("[WARN] Not a regular file: %s", res.Path)
			case filepreprocessor.FileErrNotParseable:
				log.Printf("[WARN] Could not parse archive %s: %v", res.Path, res.Err)
			}
		}
	}

	results := make([]*openSource, len(candidates))
	numWorkers := determineWorkerCount(len(candidates))

	if numWorkers <= 1 {
		for i, c := range candidates {
			results[i] = openCandidate(c, cfg)
		}
	} else {
		type indexed struct {
			idx int
			c   candidate
		}
		work := make(chan indexed, len(candidates))
		for i, c := range candidates {
			work <- indexed{idx: i, c: c}
		}
		close(work)

		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for it := range work {
					results[it.idx] = openCandidate(it.c, cfg)
				}
			}()
		}
		wg.Wait()
	}

	sources := make([]openSource, 0, len(results))
	for _, r := range results {
		if r != nil {
			sources = append(sources, *r)
		}
	}
	return sources, totalSize
}

// openCandidate opens one candidate, logging and returning nil on failure
// so the caller's worker pool can keep going.
func openCandidate(c candidate, cfg Config) *openSource {
	src, err := openOne(c.path, c.ft, cfg)
	if err != nil {
		log.Printf("[WARN] Failed to open %s: %v", c.path, err)
		return nil
	}
	return &src
}

func openOne(path string, ft blockreader.FileType, cfg Config) (openSource, error) {
	br, err := blockreader.New(path, ft, blockreader.BlockSz(cfg.BlockSize))
	if err != nil {
		return openSource{}, err
	}

	lr := linereader.New(br, !cfg.NoLineCache)
	sr := syslinereader.New(lr, cfg.YearHint, cfg.DefaultTZ)
	if cfg.NoSyslineCache {
		sr.DisableWarmup()
	}

	return openSource{name: path, sr: sr, br: br}, nil
}

func closeSources(sources []openSource) {
	for _, s := range sources {
		if err := s.br.Close(); err != nil {
			log.Printf("[WARN] Closing %s: %v", s.name, err)
		}
	}
}

// applyFlagOverrides layers any explicitly-set command-line flags over
// the config file's values; flags win since they were the most recently
// and specifically stated intent.
func applyFlagOverrides(cfg *Config) {
	if blockszFlag != 0 {
		cfg.BlockSize = blockszFlag
	}
	if tzFlag != "" {
		cfg.DefaultTZ = tzFlag
	}
	if yearHintFlag != 0 {
		cfg.YearHint = yearHintFlag
	}
	if cfg.YearHint == 0 {
		cfg.YearHint = time.Now().Year()
	}
	if noLineCacheFlag {
		cfg.NoLineCache = true
	}
	if noSyslineCacheFlag {
		cfg.NoSyslineCache = true
	}
}

// resolveWindow turns --after/--before/--last into the [after, before]
// bounds internal/merger needs.
func resolveWindow(now time.Time) (after, before *time.Time) {
	if lastFlag != "" {
		return parseLast(lastFlag, now)
	}
	return parseDateTimes(afterFlag, beforeFlag)
}

// formatBytes converts a byte count to a human-readable string (KB, MB, GB, etc).
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}

	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(b)/float64(div), "kMGTPE"[exp])
}
