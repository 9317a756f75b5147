package syslinereader

import "time"

// RangeVerdict tags where an instant falls relative to an optional
// [after, before] window, both endpoints inclusive (§4.3 "inclusive after,
// ... both endpoints are inclusive; equality on either endpoint is
// InRange").
type RangeVerdict int

const (
	InRange RangeVerdict = iota
	BeforeRange
	AfterRange
)

// AfterVerdict tags where an instant falls relative to a single after
// threshold, for callers that only care about one endpoint.
type AfterVerdict int

const (
	Pass AfterVerdict = iota
	OccursBefore
	OccursAtOrAfter
)

// DtPassFilters reports where dt falls relative to the optional after/
// before window, normalising every operand to UTC before comparing (§4.3
// "all filters normalise operands to a common timezone").
func DtPassFilters(dt time.Time, after, before *time.Time) RangeVerdict {
	dtu := dt.UTC()
	if after != nil && dtu.Before(after.UTC()) {
		return BeforeRange
	}
	if before != nil && dtu.After(before.UTC()) {
		return AfterRange
	}
	return InRange
}

// PassesFilters is DtPassFilters applied to a Sysline's own datetime.
func PassesFilters(sl *Sysline, after, before *time.Time) RangeVerdict {
	return DtPassFilters(sl.Dt, after, before)
}

// DtAfterOrBefore reports whether dt occurs before a single after
// threshold, for callers with only one relevant endpoint (e.g. seeding a
// merge at the first sysline at or after a --after argument).
func DtAfterOrBefore(dt time.Time, after *time.Time) AfterVerdict {
	if after == nil {
		return Pass
	}
	if dt.UTC().Before(after.UTC()) {
		return OccursBefore
	}
	return OccursAtOrAfter
}
