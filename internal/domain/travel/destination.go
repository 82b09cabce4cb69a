package travel

import (
	"regexp"
	"strings"
)

// HomeLocation is the city every trip starts from or returns to.
const HomeLocation = "Torn"

// UnknownDestination is returned when no destination can be read from a log.
const UnknownDestination = ""

// Direction tells whether a trip leg leaves home or heads back to it.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
	DirectionUnknown  Direction = "unknown"
)

// Trip is what a single flight log line says about a journey.
type Trip struct {
	Destination string
	Direction   Direction
}

// Known reports whether a destination was found.
func (t Trip) Known() bool {
	return t.Destination != UnknownDestination
}

var (
	travelingToPattern = regexp.MustCompile(`(?i)traveling to\s+(.+)`)
	returningPattern   = regexp.MustCompile(`(?i)returning to torn from\s+(.+)`)
	routePattern       = regexp.MustCompile(`(?i)^\s*(.+?)\s*(<->|->|<-)\s*(.+?)\s*$`)
)

// ParseTrip reads the destination and direction from a flight log line.
// Patterns are tried in a fixed order and the first match wins.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func ParseTrip(logText string) Trip {
	if strings.TrimSpace(logText) == "" {
		return Trip{Destination: UnknownDestination, Direction: DirectionUnknown}
	}

	if m := travelingToPattern.FindStringSubmatch(logText); m != nil {
		if dest := cleanDestination(m[1]); dest != "" {
			return Trip{Destination: dest, Direction: DirectionOutbound}
		}
	}

	if m := returningPattern.FindStringSubmatch(logText); m != nil {
		if dest := cleanDestination(m[1]); dest != "" {
			return Trip{Destination: dest, Direction: DirectionInbound}
		}
	}

	if trip, ok := parseRoute(logText); ok {
		return trip
	}

	return Trip{Destination: UnknownDestination, Direction: DirectionUnknown}
}

// ExtractDestination returns the canonical destination named in a flight log,
// or UnknownDestination.
func ExtractDestination(logText string) string {
	return ParseTrip(logText).Destination
}

// parseRoute handles "Torn <-> X" and "X <-> Torn" style logs. A one-way
// arrow also tells us which way the player is flying.
func parseRoute(logText string) (Trip, bool) {
	m := routePattern.FindStringSubmatch(logText)
	if m == nil {
		return Trip{}, false
	}

	left, arrow, right := cleanDestination(m[1]), m[2], cleanDestination(m[3])
	leftHome := strings.EqualFold(left, HomeLocation)
	rightHome := strings.EqualFold(right, HomeLocation)

	switch {
	case leftHome && !rightHome && right != "":
		return Trip{Destination: right, Direction: routeDirection(arrow, true)}, true
	case rightHome && !leftHome && left != "":
		return Trip{Destination: left, Direction: routeDirection(arrow, false)}, true
	}
	return Trip{}, false
}

func routeDirection(arrow string, homeOnLeft bool) Direction {
	switch arrow {
	case "->":
		if homeOnLeft {
			return DirectionOutbound
		}
		return DirectionInbound
	case "<-":
		if homeOnLeft {
			return DirectionInbound
		}
		return DirectionOutbound
	}
	return DirectionUnknown
}

// cleanDestination trims whitespace and trailing sentence punctuation
// ("Traveling to Mexico." reads as Mexico).
func cleanDestination(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".!"))
}
