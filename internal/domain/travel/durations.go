package travel

import (
	"sort"
	"time"

	"golang.org/x/text/cases"
)

// flightSeconds is the one-way flight time per destination. Keys that spell
// the same country differently (Swiss / Switzerland) must keep the same value.
var flightSeconds = map[string]int64{
	"Argentina":      7020,
	"China":          10140,
	"Japan":          9480,
	"Hawaii":         5640,
	"Mexico":         1080,
	"Cayman Islands": 1500,
	"Canada":         1740,
	"United Kingdom": 6660,
	"Switzerland":    7380,
	"Swiss":          7380,
	"UAE":            11400,
	"South Africa":   12480,
}

// LookupDuration returns the one-way flight time for a destination.
// An exact key match is tried first, then a case-insensitive scan.
func LookupDuration(destination string) (time.Duration, bool) {
	if destination == UnknownDestination {
		return 0, false
	}

	if secs, ok := flightSeconds[destination]; ok {
		return time.Duration(secs) * time.Second, true
	}

	// Casers carry state, so each lookup gets its own.
	fold := cases.Fold()
	folded := fold.String(destination)
	for name, secs := range flightSeconds {
		if fold.String(name) == folded {
			return time.Duration(secs) * time.Second, true
		}
	}

	return 0, false
}

// DestinationDuration pairs a table entry with its flight time.
type DestinationDuration struct {
	Destination string        `json:"destination"`
	Duration    time.Duration `json:"-"`
	Seconds     int64         `json:"seconds"`
}

// Destinations lists the duration table ordered by flight time, then name.
func Destinations() []DestinationDuration {
	list := make([]DestinationDuration, 0, len(flightSeconds))
	for name, secs := range flightSeconds {
		list = append(list, DestinationDuration{
			Destination: name,
			Duration:    time.Duration(secs) * time.Second,
			Seconds:     secs,
		})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Seconds != list[j].Seconds {
			return list[i].Seconds < list[j].Seconds
		}
		return list[i].Destination < list[j].Destination
	})

	return list
}
