// Package datetime implements the table-driven regex-plus-format datetime
// matcher used by internal/syslinereader (§4.4): given a line's raw bytes
// and a Table index, it runs that entry's pattern and returns the parsed
// instant plus the exact byte range it occupies. Choosing which entries to
// try, and in what order, is left to the caller.
package datetime

import "regexp"

// TZKind tags how an entry's timezone is determined.
type TZKind int

const (
	// TZPresentOffset means the pattern itself captures or spells out a
	// numeric UTC offset (or literal Z).
	TZPresentOffset TZKind = iota
	// TZPresentNamed means the pattern captures a textual zone
	// abbreviation (PST, UTC, ...) resolved via MapTzzToTZz.
	TZPresentNamed
	// TZFillDefault means the pattern carries no timezone information at
	// all; the caller's default offset is substituted.
	TZFillDefault
)

// TestCase is one declared (begin, end, example) fixture an entry must
// match at exactly the stated range (§4.4 "_test_cases").
type TestCase struct {
	Begin   int
	End     int
	Example []byte
}

// tplTok is one token of an entry's assembly template: either a literal
// byte run or a named capture group to substitute.
type tplTok struct {
	Group   string
	Literal string
}

func lit(s string) tplTok   { return tplTok{Literal: s} }
func grp(name string) tplTok { return tplTok{Group: name} }

// ParseEntry is one row of the datetime pattern table (§4.4). Regex and
// Template both reference the fixed capture-group vocabulary (year, yearY,
// month, day, hour, minute, second, fractional, fractional3, tz_offset,
// tz_named); Template reassembles whatever the regex captured into a
// canonical string that Layout (a Go reference-time layout) then parses.
type ParseEntry struct {
	Name          string
	Regex         *regexp.Regexp
	HasYear       bool
	HasTZ         bool
	HasSecond     bool
	HasFractional bool
	TZKind        TZKind
	// RangeRegex is the half-open byte range within the line where the
	// match's start must fall (§4.4 "range_regex").
	RangeRegex [2]int
	CgnFirst   string
	CgnLast    string
	Template   []tplTok
	Layout     string
	TestCases  []TestCase
	Line       int
}
