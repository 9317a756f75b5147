package datetime

import (
	"strconv"
	"strings"
	"time"
)

// groupText returns the text captured by named group name in loc/names (the
// output of Regexp.FindSubmatchIndex / SubexpNames), or false if the group
// didn't participate in the match.
func groupText(line []byte, names []string, loc []int, name string) (string, bool) {
	for i, n := range names {
		if n != name {
			continue
		}
		s, e := loc[2*i], loc[2*i+1]
		if s < 0 {
			return "", false
		}
		return string(line[s:e]), true
	}
	return "", false
}

// groupIndex returns the index (into names/loc) of the first subexpression
// named name, or -1.
func groupIndex(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func endsWhitespace(s string) bool {
	if s == "" {
		return false
	}
	r := s[len(s)-1]
	return r == ' ' || r == '\t'
}

// assemble reassembles whatever the match captured into the canonical
// string entry.Layout expects, per entry.Template (§4.4 main entry body).
func assemble(entry ParseEntry, line []byte, names []string, loc []int, yearHint int, defaultTZ string) (string, bool) {
	var b strings.Builder
	for _, tok := range entry.Template {
		if tok.Group == "" {
			b.WriteString(tok.Literal)
			continue
		}
		switch tok.Group {
		case "year":
			if v, ok := groupText(line, names, loc, "year"); ok {
				b.WriteString(v)
			} else if entry.HasYear {
				return "", false
			} else {
				b.WriteString(padYear(yearHint))
			}
		case "yearY":
			v, ok := groupText(line, names, loc, "yearY")
			if !ok {
				return "", false
			}
			b.WriteString(v)
		case "day_sp2":
			v, ok := groupText(line, names, loc, "day")
			if !ok {
				return "", false
			}
			if len(v) == 1 {
				v = " " + v
			}
			b.WriteString(v)
		case "tz_offset":
			v, ok := groupText(line, names, loc, "tz_offset")
			switch {
			case ok:
				b.WriteString(v)
			case entry.TZKind == TZFillDefault:
				b.WriteString(defaultTZ)
			default:
				return "", false
			}
		case "tz_named":
			v, ok := groupText(line, names, loc, "tz_named")
			if !ok {
				b.WriteString(defaultTZ)
				break
			}
			off, known := MapTzzToTZz[strings.ToUpper(v)]
			if !known || off == "" {
				b.WriteString(defaultTZ)
			} else {
				b.WriteString(off)
			}
		default:
			v, ok := groupText(line, names, loc, tok.Group)
			if !ok {
				return "", false
			}
			b.WriteString(v)
		}
	}
	return b.String(), true
}

func padYear(y int) string {
	s := strconv.Itoa(y)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// BytesToRegexToDatetime is the §4.4 main entry: it runs Table[idx]'s regex
// against line, reassembles the captured groups (filling in yearHint and
// defaultTZ where the entry lacks them), and parses the result. It returns
// ok=false on any non-match, assembly failure, or parse failure, including
// the whitespace-balance guard.
func BytesToRegexToDatetime(line []byte, idx int, yearHint int, defaultTZ string) (dtBeg, dtEnd int, dt time.Time, ok bool) {
	if idx < 0 || idx >= len(Table) {
		return 0, 0, time.Time{}, false
	}
	entry := Table[idx]

	// range_regex bounds where the match's start may fall, not how much of
	// the line is searched (§4.4 "a half-open byte range ... where matching
	// is allowed").
	loc := entry.Regex.FindSubmatchIndex(line)
	if loc == nil || loc[0] < entry.RangeRegex[0] || loc[0] >= entry.RangeRegex[1] {
		return 0, 0, time.Time{}, false
	}
	names := entry.Regex.SubexpNames()

	firstIdx := groupIndex(names, entry.CgnFirst)
	lastIdx := groupIndex(names, entry.CgnLast)
	if firstIdx < 0 || lastIdx < 0 || loc[2*firstIdx] < 0 || loc[2*lastIdx+1] < 0 {
		return 0, 0, time.Time{}, false
	}

	assembled, ok := assemble(entry, line, names, loc, yearHint, defaultTZ)
	if !ok {
		return 0, 0, time.Time{}, false
	}

	if endsWhitespace(assembled) != endsWhitespace(entry.Layout) {
		return 0, 0, time.Time{}, false
	}

	t, err := time.Parse(entry.Layout, assembled)
	if err != nil {
		return 0, 0, time.Time{}, false
	}

	return loc[2*firstIdx], loc[2*lastIdx+1], t, true
}
