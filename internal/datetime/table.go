package datetime

import "regexp"

// Table is the static, ordered datetime pattern table (§4.4
// "DATETIME_PARSE_DATAS"), generalizing the teacher's three hand-rolled
// parsers (parser/syslog.go's parseSyslogFormat, parseSyslogFormatISO,
// parseSyslogFormatRFC5424) and parser/autodetect.go's logPatterns regexes
// into reusable data instead of bespoke functions. The caller
// (internal/syslinereader's pattern-analysis step) tries entries until one
// matches: in table order until its warmup completes, then the learned
// subset first, most frequent first, and the rest in table order.
var Table = []ParseEntry{
	{ // 0
		Name:          "bsd_syslog",
		Regex:         regexp.MustCompile(`^(?P<month>[A-Z][a-z]{2}) {1,2}(?P<day>\d{1,2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})`),
		HasYear:       false,
		HasSecond:     true,
		HasFractional: false,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "month",
		CgnLast:       "second",
		Template: []tplTok{
			grp("month"), lit(" "), grp("day_sp2"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit(" "), grp("year"), lit(" "), grp("tz_offset"),
		},
		Layout: "Jan _2 15:04:05 2006 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 15, Example: []byte("Jan  3 12:34:56")},
		},
		Line: 1,
	},
	{ // 1
		Name:          "bsd_syslog_frac",
		Regex:         regexp.MustCompile(`^(?P<month>[A-Z][a-z]{2}) {1,2}(?P<day>\d{1,2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional>\d+)`),
		HasYear:       false,
		HasSecond:     true,
		HasFractional: true,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "month",
		CgnLast:       "fractional",
		Template: []tplTok{
			grp("month"), lit(" "), grp("day_sp2"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional"),
			lit(" "), grp("year"), lit(" "), grp("tz_offset"),
		},
		Layout: "Jan _2 15:04:05.999999999 2006 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 19, Example: []byte("Jan  3 12:34:56.789")},
		},
		Line: 2,
	},
	{ // 2
		Name:          "iso_space",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "second",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit(" "), grp("tz_offset"),
		},
		Layout: "2006-01-02 15:04:05 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 19, Example: []byte("2025-06-01 12:00:00")},
		},
		Line: 3,
	},
	{ // 3
		Name:          "iso_space_frac",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional>\d+)`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "fractional",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional"),
			lit(" "), grp("tz_offset"),
		},
		Layout: "2006-01-02 15:04:05.999999999 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 26, Example: []byte("2025-06-01 12:00:00.123456")},
		},
		Line: 4,
	},
	{ // 4
		Name:          "iso_t_offset",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})(?P<tz_offset>[+-]\d{2}:\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_offset",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"), grp("tz_offset"),
		},
		Layout: "2006-01-02T15:04:05-07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 25, Example: []byte("2025-06-01T12:00:00-07:00")},
		},
		Line: 5,
	},
	{ // 5
		Name:          "iso_t_offset_frac",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional>\d+)(?P<tz_offset>[+-]\d{2}:\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_offset",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional"), grp("tz_offset"),
		},
		Layout: "2006-01-02T15:04:05.999999999-07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 29, Example: []byte("2025-06-01T12:00:00.999-07:00")},
		},
		Line: 6,
	},
	{ // 6
		Name:          "iso_t_offset_nocolon",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})(?P<tz_offset>[+-]\d{4})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_offset",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"), grp("tz_offset"),
		},
		Layout: "2006-01-02T15:04:05-0700",
		TestCases: []TestCase{
			{Begin: 0, End: 24, Example: []byte("2025-06-01T12:00:00-0700")},
		},
		Line: 7,
	},
	{ // 7
		Name:          "iso_t_zulu",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})Z`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "second",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"), lit("Z"),
		},
		Layout: "2006-01-02T15:04:05Z",
		TestCases: []TestCase{
			{Begin: 0, End: 19, Example: []byte("2025-06-01T12:00:00Z")},
		},
		Line: 8,
	},
	{ // 8
		Name:          "iso_t_zulu_frac",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional>\d+)Z`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "fractional",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional"), lit("Z"),
		},
		Layout: "2006-01-02T15:04:05.999999999Z",
		TestCases: []TestCase{
			{Begin: 0, End: 21, Example: []byte("2025-06-01T12:00:00.5Z")},
		},
		Line: 9,
	},
	{ // 9
		Name:          "rfc5424_offset",
		Regex:         regexp.MustCompile(`^<\d{1,3}>\d (?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})(?P<tz_offset>[+-]\d{2}:\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_offset",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"), grp("tz_offset"),
		},
		Layout: "2006-01-02T15:04:05-07:00",
		TestCases: []TestCase{
			{Begin: 7, End: 32, Example: []byte("<165>1 2025-06-01T12:00:00-07:00")},
		},
		Line: 10,
	},
	{ // 10
		Name:          "rfc5424_offset_frac",
		Regex:         regexp.MustCompile(`^<\d{1,3}>\d (?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional>\d+)(?P<tz_offset>[+-]\d{2}:\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_offset",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional"), grp("tz_offset"),
		},
		Layout: "2006-01-02T15:04:05.999999999-07:00",
		TestCases: []TestCase{
			{Begin: 6, End: 34, Example: []byte("<14>1 2025-06-01T12:00:00.42-07:00")},
		},
		Line: 11,
	},
	{ // 11
		Name:          "compact_basic",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})T(?P<hour>\d{2})(?P<minute>\d{2})(?P<second>\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "second",
		Template: []tplTok{
			grp("year"), grp("month"), grp("day"), lit("T"),
			grp("hour"), grp("minute"), grp("second"), lit(" "), grp("tz_offset"),
		},
		Layout: "20060102T150405 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 15, Example: []byte("20250601T120000")},
		},
		Line: 12,
	},
	{ // 12
		Name:          "compact_frac",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})T(?P<hour>\d{2})(?P<minute>\d{2})(?P<second>\d{2})\.(?P<fractional>\d+)`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "fractional",
		Template: []tplTok{
			grp("year"), grp("month"), grp("day"), lit("T"),
			grp("hour"), grp("minute"), grp("second"), lit("."), grp("fractional"),
			lit(" "), grp("tz_offset"),
		},
		Layout: "20060102T150405.999999999 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 19, Example: []byte("20250601T120000.250")},
		},
		Line: 13,
	},
	{ // 13
		Name:          "apache_common",
		Regex:         regexp.MustCompile(`\[(?P<day>\d{2})/(?P<month>[A-Z][a-z]{2})/(?P<year>\d{4}):(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2}) (?P<tz_offset>[+-]\d{4})\]`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		HasTZ:         true,
		TZKind:        TZPresentOffset,
		RangeRegex:    [2]int{0, 64},
		CgnFirst:      "day",
		CgnLast:       "tz_offset",
		Template: []tplTok{
			grp("day"), lit("/"), grp("month"), lit("/"), grp("year"), lit(":"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit(" "), grp("tz_offset"),
		},
		Layout: "02/Jan/2006:15:04:05 -0700",
		TestCases: []TestCase{
			{Begin: 15, End: 41, Example: []byte(`127.0.0.1 - - [01/Jun/2025:12:00:00 -0700] "GET / HTTP/1.1" 200 123`)},
		},
		Line: 14,
	},
	{ // 14
		Name:          "named_tz_frac3",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional3>\d{3}) (?P<tz_named>[A-Z]{2,5})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		HasTZ:         true,
		TZKind:        TZPresentNamed,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_named",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional3"), lit(" "), grp("tz_named"),
		},
		Layout: "2006-01-02 15:04:05.000 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 27, Example: []byte("2025-06-01 12:00:00.123 UTC")},
		},
		Line: 15,
	},
	{ // 15
		Name:          "named_tz_no_frac",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2}) (?P<tz_named>[A-Z]{2,5})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		HasTZ:         true,
		TZKind:        TZPresentNamed,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_named",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit(" "), grp("tz_named"),
		},
		Layout: "2006-01-02 15:04:05 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 23, Example: []byte("2025-06-01 12:00:00 UTC")},
		},
		Line: 16,
	},
	{ // 16
		Name:          "iso_t_named_tz_frac",
		Regex:         regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})T(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\.(?P<fractional>\d+) (?P<tz_named>[A-Z]{2,5})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: true,
		HasTZ:         true,
		TZKind:        TZPresentNamed,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "tz_named",
		Template: []tplTok{
			grp("year"), lit("-"), grp("month"), lit("-"), grp("day"), lit("T"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit("."), grp("fractional"), lit(" "), grp("tz_named"),
		},
		Layout: "2006-01-02T15:04:05.999999999 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 25, Example: []byte("2025-06-01T12:00:00.5 PST")},
		},
		Line: 17,
	},
	{ // 17
		Name:          "two_digit_year",
		Regex:         regexp.MustCompile(`^(?P<yearY>\d{2})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "yearY",
		CgnLast:       "second",
		Template: []tplTok{
			grp("yearY"), lit("-"), grp("month"), lit("-"), grp("day"), lit(" "),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit(" "), grp("tz_offset"),
		},
		Layout: "06-01-02 15:04:05 -07:00",
		TestCases: []TestCase{
			{Begin: 0, End: 17, Example: []byte("25-06-01 12:00:00")},
		},
		Line: 18,
	},
	{ // 18
		Name:          "bracket_compact",
		Regex:         regexp.MustCompile(`^\[(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})-(?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})\]`),
		HasYear:       true,
		HasSecond:     true,
		HasFractional: false,
		TZKind:        TZFillDefault,
		RangeRegex:    [2]int{0, 1},
		CgnFirst:      "year",
		CgnLast:       "second",
		Template: []tplTok{
			grp("year"), grp("month"), grp("day"), lit("-"),
			grp("hour"), lit(":"), grp("minute"), lit(":"), grp("second"),
			lit(" "), grp("tz_offset"),
		},
		Layout: "20060102-15:04:05 -07:00",
		TestCases: []TestCase{
			{Begin: 1, End: 18, Example: []byte("[20200113-11:03:06]")},
		},
		Line: 19,
	},
}
