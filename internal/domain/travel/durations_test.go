package travel

import (
	"testing"
	"time"
)

func TestLookupDuration(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		expected    time.Duration
		found       bool
	}{
		{"Mexico exact", "Mexico", 1080 * time.Second, true},
		{"Cayman Islands exact", "Cayman Islands", 1500 * time.Second, true},
		{"Canada exact", "Canada", 1740 * time.Second, true},
		{"Hawaii exact", "Hawaii", 5640 * time.Second, true},
		{"United Kingdom exact", "United Kingdom", 6660 * time.Second, true},
		{"Argentina exact", "Argentina", 7020 * time.Second, true},
		{"Switzerland exact", "Switzerland", 7380 * time.Second, true},
		{"Swiss alias", "Swiss", 7380 * time.Second, true},
		{"Japan exact", "Japan", 9480 * time.Second, true},
		{"China exact", "China", 10140 * time.Second, true},
		{"UAE exact", "UAE", 11400 * time.Second, true},
		{"South Africa exact", "South Africa", 12480 * time.Second, true},
		{"Upper case alias", "SWISS", 7380 * time.Second, true},
		{"Lower case", "united kingdom", 6660 * time.Second, true},
		{"Mixed case", "sOuTh AfRiCa", 12480 * time.Second, true},
		{"Unregistered", "Atlantis", 0, false},
		{"Unknown", UnknownDestination, 0, false},
		{"Partial name", "Cayman", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, found := LookupDuration(tt.destination)
			if found != tt.found {
				t.Fatalf("LookupDuration(%q) found = %v, expected %v", tt.destination, found, tt.found)
			}
			if result != tt.expected {
				t.Errorf("LookupDuration(%q) = %v, expected %v", tt.destination, result, tt.expected)
			}
		})
	}
}

func TestLookupDurationSwissAlias(t *testing.T) {
	swiss, ok := LookupDuration("swiss")
	if !ok {
		t.Fatal("Expected swiss to resolve")
	}
	switzerland, ok := LookupDuration("Switzerland")
	if !ok {
		t.Fatal("Expected Switzerland to resolve")
	}
	if swiss != switzerland {
		t.Errorf("Expected alias durations to match, got %v and %v", swiss, switzerland)
	}
}

func TestDestinations(t *testing.T) {
	list := Destinations()

	if len(list) != 12 {
		t.Fatalf("Expected 12 destinations, got %d", len(list))
	}

	if list[0].Destination != "Mexico" {
		t.Errorf("Expected shortest flight first (Mexico), got %s", list[0].Destination)
	}
	if list[len(list)-1].Destination != "South Africa" {
		t.Errorf("Expected longest flight last (South Africa), got %s", list[len(list)-1].Destination)
	}

	for i := 1; i < len(list); i++ {
		if list[i-1].Seconds > list[i].Seconds {
			t.Errorf("Destinations not ordered at %d: %v before %v", i, list[i-1], list[i])
		}
	}

	// Swiss and Switzerland tie on duration, name breaks the tie
	for i := 1; i < len(list); i++ {
		if list[i].Seconds == 7380 && list[i-1].Seconds == 7380 {
			if list[i-1].Destination != "Swiss" || list[i].Destination != "Switzerland" {
				t.Errorf("Expected Swiss before Switzerland, got %s then %s", list[i-1].Destination, list[i].Destination)
			}
		}
	}
}
