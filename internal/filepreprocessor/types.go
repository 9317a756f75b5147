// Package filepreprocessor resolves a user-supplied path argument into zero
// or more concrete, openable log sources: a plain file, a compressed file,
// or the members of a tar archive, each tagged with the blockreader.FileType
// the rest of the pipeline needs to open it (§6).
package filepreprocessor

import "github.com/jtmoon79/s4/internal/blockreader"

// ResultKind tags the outcome of classifying a single candidate path.
type ResultKind int

const (
	// FileValid means Path can be opened as Filetype.
	FileValid ResultKind = iota
	// FileErrNotParseable means the path looked like a supported container
	// (e.g. a tar archive) but its contents could not be read.
	FileErrNotParseable
	// FileErrNotSupported means the name was recognised but names a format
	// this build cannot decode (e.g. zstd), or wasn't recognised at all.
	FileErrNotSupported
	// FileErrNoPermissions means stat failed due to access rights.
	FileErrNoPermissions
	// FileErrNotAFile means the path exists but isn't a regular file
	// (a directory, device, etc.), or doesn't exist.
	FileErrNotAFile
)

func (k ResultKind) String() string {
	switch k {
	case FileValid:
		return "FileValid"
	case FileErrNotParseable:
		return "FileErrNotParseable"
	case FileErrNotSupported:
		return "FileErrNotSupported"
	case FileErrNoPermissions:
		return "FileErrNoPermissions"
	case FileErrNotAFile:
		return "FileErrNotAFile"
	default:
		return "FileErrUnknown"
	}
}

// ProcessPathResult is one outcome of ProcessPath: either a concrete,
// openable path (FileValid) or a reason it isn't one.
type ProcessPathResult struct {
	Kind     ResultKind
	Path     string
	Filetype blockreader.FileType
	Err      error
}

func valid(path string, ft blockreader.FileType) ProcessPathResult {
	return ProcessPathResult{Kind: FileValid, Path: path, Filetype: ft}
}

func notParseable(path string, err error) ProcessPathResult {
	return ProcessPathResult{Kind: FileErrNotParseable, Path: path, Err: err}
}

func notSupported(path string) ProcessPathResult {
	return ProcessPathResult{Kind: FileErrNotSupported, Path: path}
}

func noPermissions(path string, err error) ProcessPathResult {
	return ProcessPathResult{Kind: FileErrNoPermissions, Path: path, Err: err}
}

func notAFile(path string) ProcessPathResult {
	return ProcessPathResult{Kind: FileErrNotAFile, Path: path}
}
