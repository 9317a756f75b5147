// Package cmd implements the command-line interface for s4.
package cmd

import (
	"log"
	"time"
)

const (
	// DateTimeFormat is the expected format for --after and --before flags.
	DateTimeFormat = "2006-01-02 15:04:05"
)

// parseDateTimes parses the after and before datetime strings. A nil
// return for either means that bound wasn't given. Exits with a fatal
// error if parsing fails.
func parseDateTimes(afterStr, beforeStr string) (after, before *time.Time) {
	if afterStr != "" {
		parsed, err := time.Parse(DateTimeFormat, afterStr)
		if err != nil {
			log.Fatalf("[ERROR] Invalid --after datetime format. Expected: %s, Got: %s",
				DateTimeFormat, afterStr)
		}
		after = &parsed
	}

	if beforeStr != "" {
		parsed, err := time.Parse(DateTimeFormat, beforeStr)
		if err != nil {
			log.Fatalf("[ERROR] Invalid --before datetime format. Expected: %s, Got: %s",
				DateTimeFormat, beforeStr)
		}
		before = &parsed
	}

	return after, before
}

// parseLast converts the --last duration string into an [after, now]
// window. Returns (nil, nil) if the string is empty.
//
// Examples of valid duration strings:
//   - "30m" (30 minutes)
//   - "2h" (2 hours)
//   - "1h30m" (1 hour and 30 minutes)
func parseLast(lastStr string, now time.Time) (after, before *time.Time) {
	if lastStr == "" {
		return nil, nil
	}

	duration, err := time.ParseDuration(lastStr)
	if err != nil {
		log.Fatalf("[ERROR] Invalid --last duration: %v", err)
	}

	a := now.Add(-duration)
	return &a, &now
}

// validateTimeFilters checks that time filter flags are compatible.
func validateTimeFilters() {
	if lastFlag != "" && (afterFlag != "" || beforeFlag != "") {
		log.Fatalf("[ERROR] --last cannot be used with --after or --before")
	}
}
