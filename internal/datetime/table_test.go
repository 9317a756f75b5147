package datetime

import (
	"strings"
	"testing"
)

// TestTableEntryShape enforces invariant 1 (§4.4): every pattern is
// reasonably long and carries a valid half-open range_regex.
func TestTableEntryShape(t *testing.T) {
	for i, e := range Table {
		if len(e.Regex.String()) < 12 {
			t.Errorf("entry %d (%s): pattern too short: %q", i, e.Name, e.Regex.String())
		}
		if e.RangeRegex[0] < 0 || e.RangeRegex[0] >= e.RangeRegex[1] {
			t.Errorf("entry %d (%s): invalid range_regex %v", i, e.Name, e.RangeRegex)
		}
	}
}

// TestTableCapturePredicatesAgree enforces invariant 2: the presence of
// each capture group in the pattern matches the entry's declared
// predicates.
func TestTableCapturePredicatesAgree(t *testing.T) {
	for i, e := range Table {
		names := e.Regex.SubexpNames()
		has := func(name string) bool {
			for _, n := range names {
				if n == name {
					return true
				}
			}
			return false
		}

		gotYear := has("year") || has("yearY")
		if gotYear != e.HasYear {
			t.Errorf("entry %d (%s): HasYear=%v but year/yearY group present=%v", i, e.Name, e.HasYear, gotYear)
		}
		gotSecond := has("second")
		if gotSecond != e.HasSecond {
			t.Errorf("entry %d (%s): HasSecond=%v but second group present=%v", i, e.Name, e.HasSecond, gotSecond)
		}
		gotFrac := has("fractional") || has("fractional3")
		if gotFrac != e.HasFractional {
			t.Errorf("entry %d (%s): HasFractional=%v but fractional group present=%v", i, e.Name, e.HasFractional, gotFrac)
		}
		gotTZ := has("tz_offset") || has("tz_named") || strings.Contains(e.Regex.String(), "Z")
		if e.HasTZ && !gotTZ {
			t.Errorf("entry %d (%s): HasTZ=true but no tz group/marker found", i, e.Name)
		}
	}
}

// TestTableAssemblyShape enforces invariant 3: the Layout always carries
// year, month, day, hour, minute, and a timezone; second/fractional are
// optional but must agree between pattern and layout.
func TestTableAssemblyShape(t *testing.T) {
	for i, e := range Table {
		if !strings.Contains(e.Layout, "2006") && !strings.Contains(e.Layout, "06-") {
			t.Errorf("entry %d (%s): layout %q missing year token", i, e.Name, e.Layout)
		}
		hasTZLayout := strings.Contains(e.Layout, "-0700") || strings.Contains(e.Layout, "-07:00") || strings.Contains(e.Layout, "Z")
		if !hasTZLayout {
			t.Errorf("entry %d (%s): layout %q missing a filled timezone", i, e.Name, e.Layout)
		}
		hasSecondLayout := strings.Contains(e.Layout, "05")
		if hasSecondLayout != e.HasSecond {
			t.Errorf("entry %d (%s): HasSecond=%v but layout second token present=%v", i, e.Name, e.HasSecond, hasSecondLayout)
		}
		hasFracLayout := strings.Contains(e.Layout, "9999") || strings.Contains(e.Layout, ".000")
		if hasFracLayout != e.HasFractional {
			t.Errorf("entry %d (%s): HasFractional=%v but layout fractional token present=%v", i, e.Name, e.HasFractional, hasFracLayout)
		}
	}
}

// TestTableCgnFirstLast enforces invariant 4: cgn_first/cgn_last genuinely
// correspond to the first/last named group in the pattern.
func TestTableCgnFirstLast(t *testing.T) {
	for i, e := range Table {
		names := e.Regex.SubexpNames()
		var first, last string
		for _, n := range names {
			if n == "" {
				continue
			}
			if first == "" {
				first = n
			}
			last = n
		}
		if first != e.CgnFirst {
			t.Errorf("entry %d (%s): CgnFirst=%q, actual first named group=%q", i, e.Name, e.CgnFirst, first)
		}
		if last != e.CgnLast {
			t.Errorf("entry %d (%s): CgnLast=%q, actual last named group=%q", i, e.Name, e.CgnLast, last)
		}
	}
}

// TestTableCases enforces invariant 5 and the §8 "DateTime-matcher
// properties": every declared test case matches its own entry at exactly
// the declared range.
func TestTableCases(t *testing.T) {
	for i, e := range Table {
		for _, tc := range e.TestCases {
			beg, end, _, ok := BytesToRegexToDatetime(tc.Example, i, 2025, "+00:00")
			if !ok {
				t.Fatalf("entry %d (%s): test case %q did not match", i, e.Name, tc.Example)
			}
			if beg != tc.Begin || end != tc.End {
				t.Fatalf("entry %d (%s): test case %q matched [%d,%d), want [%d,%d)", i, e.Name, tc.Example, beg, end, tc.Begin, tc.End)
			}
		}
	}
}

func TestBytesToRegexToDatetimeOutOfRange(t *testing.T) {
	if _, _, _, ok := BytesToRegexToDatetime([]byte("x"), -1, 2025, "+00:00"); ok {
		t.Fatalf("expected ok=false for negative index")
	}
	if _, _, _, ok := BytesToRegexToDatetime([]byte("x"), len(Table), 2025, "+00:00"); ok {
		t.Fatalf("expected ok=false for out-of-range index")
	}
}

func TestCgpTzzMatchesEveryKey(t *testing.T) {
	for k := range MapTzzToTZz {
		if !CgpTzz.MatchString(k) {
			t.Errorf("CgpTzz does not match key %q", k)
		}
	}
	if len(TzzListUpper) != len(MapTzzToTZz) || len(TzzListLower) != len(MapTzzToTZz) {
		t.Fatalf("TzzList{Upper,Lower} length mismatch with MapTzzToTZz")
	}
}

func TestAmbiguousNamedTZFallsBackToDefault(t *testing.T) {
	// CST is deliberately ambiguous; the matcher must fall back to the
	// caller-supplied default rather than guessing an offset.
	line := []byte("2025-06-01 12:00:00 CST")
	_, _, dt, ok := BytesToRegexToDatetime(line, 15, 2025, "+05:00")
	if !ok {
		t.Fatalf("expected match despite ambiguous zone")
	}
	if dt.UTC().Hour() != 7 {
		t.Fatalf("expected default offset +05:00 applied (12:00 -> 07:00 UTC), got %v", dt.UTC())
	}
}
