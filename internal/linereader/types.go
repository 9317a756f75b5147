// Package linereader discovers newline-delimited Lines atop a BlockReader,
// stitching bytes that straddle block boundaries (§4.2).
package linereader

import (
	"github.com/jtmoon79/s4/internal/blockreader"
)

// LinePart is a view into a contiguous byte range of one block.
type LinePart struct {
	Block           *blockreader.Block
	BeginIndex      blockreader.BlockIndex
	EndIndex        blockreader.BlockIndex
	FileOffsetBegin blockreader.FileOffset
	BlockOffset     blockreader.BlockOffset
	BlockSz         blockreader.BlockSz
}

// Bytes returns the byte slice this part denotes.
func (lp LinePart) Bytes() []byte {
	return lp.Block.Data[lp.BeginIndex:lp.EndIndex]
}

// Len returns the number of bytes this part spans.
func (lp LinePart) Len() int {
	return int(lp.EndIndex - lp.BeginIndex)
}

// Line is a non-empty ordered sequence of LineParts whose concatenation is
// exactly one newline-terminated byte sequence, or the terminal
// unterminated remainder of the file (§3).
type Line struct {
	Parts           []LinePart
	FileOffsetBegin blockreader.FileOffset
	FileOffsetEnd   blockreader.FileOffset
	// TerminatedByNewline is false only for the final, unterminated line
	// of a file that doesn't end in 0x0A ("nl_b_eof" in §4.2).
	TerminatedByNewline bool
}

// Bytes concatenates every part into one contiguous slice, copying out of
// the shared blocks. Callers on the hot read path should prefer iterating
// Parts directly to avoid the copy (the printer does).
func (ln *Line) Bytes() []byte {
	n := 0
	for _, p := range ln.Parts {
		n += p.Len()
	}
	out := make([]byte, 0, n)
	for _, p := range ln.Parts {
		out = append(out, p.Bytes()...)
	}
	return out
}

// ResultKind tags which variant of Result4 is populated.
type ResultKind int

const (
	Found ResultKind = iota
	FoundEOF
	Done
	Err
)

// Result4 is the quaternary result used at the line/sysline level:
// {Found(value) | FoundEOF(value) | Done | Err(error)} (§4.5).
type Result4[T any] struct {
	Kind  ResultKind
	Value T
	Error error
}

func Found4[T any](v T) Result4[T]     { return Result4[T]{Kind: Found, Value: v} }
func FoundEOF4[T any](v T) Result4[T]  { return Result4[T]{Kind: FoundEOF, Value: v} }
func Done4[T any]() Result4[T]         { return Result4[T]{Kind: Done} }
func Err4[T any](err error) Result4[T] { return Result4[T]{Kind: Err, Error: err} }
