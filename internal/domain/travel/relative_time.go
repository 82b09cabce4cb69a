package travel

import (
	"fmt"
	"strings"
)

// Polarity says which side of "now" a time lies on. The dashboard colours
// past green and future blue.
type Polarity string

const (
	PolarityPast    Polarity = "past"
	PolarityFuture  Polarity = "future"
	PolarityNeutral Polarity = "neutral"
)

// RelativeTime is a human phrase for a time delta plus its polarity.
type RelativeTime struct {
	Text     string   `json:"text"`
	Polarity Polarity `json:"polarity"`
}

// FormatRelative describes targetSeconds relative to nowSeconds, e.g.
// "in 2 hours 30 minutes" or "3 minutes ago". Seconds are only spelled out
// when the delta is under a minute.
func FormatRelative(targetSeconds, nowSeconds int64) RelativeTime {
	delta := targetSeconds - nowSeconds
	if delta == 0 {
		return RelativeTime{Text: "just now", Polarity: PolarityNeutral}
	}

	abs := delta
	if abs < 0 {
		abs = -abs
	}

	hours := abs / 3600
	minutes := (abs % 3600) / 60
	seconds := abs % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}
	if hours == 0 && minutes == 0 && seconds > 0 {
		parts = append(parts, pluralize(seconds, "second"))
	}
	phrase := strings.Join(parts, " ")

	if delta < 0 {
		return RelativeTime{Text: phrase + " ago", Polarity: PolarityPast}
	}
	return RelativeTime{Text: "in " + phrase, Polarity: PolarityFuture}
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
