package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse accepts the timestamp shapes the fare API and its callers use.
// Strings without an offset are read as UTC wall-clock time.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: ": unable to parse time string",
	}
}

// FormatDuration renders d as "{h}h {m}m", or "{m}m" under an hour.
// Negative durations render as "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Minute)
	hours := total / 60
	mins := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

var (
	isoDuration  = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)
	spanDuration = regexp.MustCompile(`^(?:(\d+)\.)?(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	textDuration = regexp.MustCompile(`^(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?$`)
)

// ParseDuration understands ISO-8601 ("PT2H30M"), time-span ("1.02:30:00",
// "02:30") and already formatted ("2h 30m") durations.
func ParseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := isoDuration.FindStringSubmatch(strings.ToUpper(s)); m != nil && s != "P" && strings.ToUpper(s) != "PT" {
		secs, _ := strconv.ParseFloat(orZero(m[4]), 64)
		return days(m[1]) + hours(m[2]) + minutes(m[3]) + time.Duration(secs*float64(time.Second)), true
	}

	if m := spanDuration.FindStringSubmatch(s); m != nil {
		return days(m[1]) + hours(m[2]) + minutes(m[3]) + seconds(m[4]), true
	}

	if m := textDuration.FindStringSubmatch(strings.ToLower(s)); m != nil && (m[1] != "" || m[2] != "") {
		return hours(m[1]) + minutes(m[2]), true
	}

	return 0, false
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func atoi(s string) int {
	n, _ := strconv.Atoi(orZero(s))
	return n
}

func days(s string) time.Duration    { return time.Duration(atoi(s)) * 24 * time.Hour }
func hours(s string) time.Duration   { return time.Duration(atoi(s)) * time.Hour }
func minutes(s string) time.Duration { return time.Duration(atoi(s)) * time.Minute }
func seconds(s string) time.Duration { return time.Duration(atoi(s)) * time.Second }
