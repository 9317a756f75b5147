// Package cmd implements the command-line interface for s4.
package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jtmoon79/s4/internal/filepreprocessor"
)

// collectFiles gathers all candidate log file paths from the provided
// arguments. Arguments can be:
//   - Individual files
//   - Glob patterns (e.g., "*.log")
//   - Directories (scans for recognised log files, non-recursive)
func collectFiles(args []string) []string {
	var files []string

	for _, arg := range args {
		// Check if argument is a directory
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			// Scan directory for recognised log files
			dirFiles, err := gatherLogFiles(arg)
			if err != nil {
				log.Printf("[WARN] Failed to read directory %s: %v", arg, err)
				continue
			}
			files = append(files, dirFiles...)
			continue
		}

		// Try to expand as glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			log.Printf("[WARN] Invalid pattern %s: %v", arg, err)
			continue
		}

		if len(matches) == 0 {
			log.Printf("[WARN] No files match pattern: %s", arg)
			continue
		}

		files = append(files, matches...)
	}

	return files
}

// gatherLogFiles scans a directory for recognised log files (non-recursive).
// Recognition (and filetype classification) is delegated to
// internal/filepreprocessor, which is the actual authority ProcessPath
// uses once the file is opened.
func gatherLogFiles(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}

	var logFiles []string
	for _, entry := range entries {
		// Skip subdirectories
		if entry.IsDir() {
			continue
		}

		if filepreprocessor.Recognized(entry.Name()) {
			logFiles = append(logFiles, filepath.Join(dir, entry.Name()))
		}
	}

	return logFiles, nil
}
