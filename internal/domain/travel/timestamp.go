package travel

import (
	"strconv"
	"strings"
	"time"
)

// NotAvailable is shown in place of a missing value.
const NotAvailable = "N/A"

// DisplayLayout matches the dashboard's en-US date rendering.
const DisplayLayout = "Jan 2, 2006, 03:04:05 PM"

// secondsDigits is the widest decimal unix timestamp still read as seconds.
const secondsDigits = 10

// NormalizeUnixSeconds converts a unix timestamp of unknown unit to seconds.
// Values with at most ten decimal digits are taken as seconds, wider values
// as milliseconds.
func NormalizeUnixSeconds(value int64) int64 {
	if digitCount(value) <= secondsDigits {
		return value
	}
	return value / 1000
}

// ParseUnixSeconds parses a raw timestamp string and normalises it to seconds.
func ParseUnixSeconds(raw string) (int64, bool) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return NormalizeUnixSeconds(value), true
}

// FormatTimestamp renders a raw unix timestamp as a calendar date in loc.
// Empty input yields "N/A"; anything that is not an integer is echoed back
// unchanged.
func FormatTimestamp(raw string, loc *time.Location) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NotAvailable
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return raw
	}

	millis := value
	if digitCount(value) <= secondsDigits {
		millis = value * 1000
	}

	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(millis).In(loc).Format(DisplayLayout)
}

// FormatUnixSeconds renders a timestamp already known to be in seconds.
func FormatUnixSeconds(seconds int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(seconds, 0).In(loc).Format(DisplayLayout)
}

func digitCount(value int64) int {
	if value < 0 {
		value = -value
	}
	digits := 1
	for value >= 10 {
		value /= 10
		digits++
	}
	return digits
}
