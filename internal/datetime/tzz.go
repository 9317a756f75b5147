package datetime

import (
	"regexp"
	"sort"
	"strings"
)

// MapTzzToTZz translates textual zone abbreviations to fixed numeric
// offsets (§4.4 "MAP_TZZ_TO_TZz"). Ambiguous abbreviations (used by more
// than one zone in common practice) map to "" so the matcher falls back to
// the caller's default offset rather than guessing.
var MapTzzToTZz = map[string]string{
	"UTC": "+00:00",
	"GMT": "+00:00",
	"UT":  "+00:00",
	"Z":   "+00:00",

	"EST": "-05:00",
	"EDT": "-04:00",
	"CDT": "-05:00",
	"MST": "-07:00",
	"MDT": "-06:00",
	"PST": "-08:00",
	"PDT": "-07:00",

	"AKST": "-09:00",
	"AKDT": "-08:00",
	"HST":  "-10:00",

	"BST": "+01:00",
	"IST": "",
	"CST": "",
	"EET": "+02:00",
	"EEST": "+03:00",
	"WET": "+00:00",
	"WEST": "+01:00",
	"CET": "+01:00",
	"CEST": "+02:00",
	"AEST": "+10:00",
	"AEDT": "+11:00",
	"JST": "+09:00",
	"KST": "+09:00",
}

// TzzListUpper and TzzListLower are index-aligned upper/lower-case variants
// of MapTzzToTZz's keys (§4.4 "two parallel lists ... must be index-aligned
// and their union covers the map keys").
var (
	TzzListUpper []string
	TzzListLower []string
)

// CgpTzz matches any recognised zone abbreviation, built from the map's
// keys at package init (§4.4 "the CGP_TZZ regex must match every key").
var CgpTzz *regexp.Regexp

func init() {
	keys := make([]string, 0, len(MapTzzToTZz))
	for k := range MapTzzToTZz {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	TzzListUpper = make([]string, len(keys))
	TzzListLower = make([]string, len(keys))
	for i, k := range keys {
		TzzListUpper[i] = strings.ToUpper(k)
		TzzListLower[i] = strings.ToLower(k)
	}

	alt := strings.Join(keys, "|")
	CgpTzz = regexp.MustCompile(`(?:` + alt + `)`)
}
