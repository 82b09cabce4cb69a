package config

import (
	"testing"
	"time"
)

func TestDefaultHTTPServerTimeouts(t *testing.T) {
	if DefaultHTTPServerTimeouts.Read != 10*time.Second {
		t.Errorf("Expected Read 10s, got %v", DefaultHTTPServerTimeouts.Read)
	}

	if DefaultHTTPServerTimeouts.Write < DefaultHTTPServerTimeouts.Read {
		t.Errorf("Expected Write (%v) to be at least Read (%v)", DefaultHTTPServerTimeouts.Write, DefaultHTTPServerTimeouts.Read)
	}

	if DefaultHTTPServerTimeouts.Shutdown <= 0 {
		t.Errorf("Expected positive Shutdown timeout, got %v", DefaultHTTPServerTimeouts.Shutdown)
	}
}

func TestTimingInvariants(t *testing.T) {
	// A refresh must not start before the previous fetch has timed out
	if FlightLogRequestTimeout >= DefaultRefreshInterval {
		t.Errorf("FlightLogRequestTimeout (%v) should be shorter than DefaultRefreshInterval (%v)", FlightLogRequestTimeout, DefaultRefreshInterval)
	}

	// Names should outlive several refresh cycles
	if NameCacheTTL < 10*DefaultRefreshInterval {
		t.Errorf("NameCacheTTL (%v) should cover at least ten refresh cycles", NameCacheTTL)
	}

	if NameLookupConcurrency < 1 {
		t.Errorf("NameLookupConcurrency must be positive, got %d", NameLookupConcurrency)
	}
}
