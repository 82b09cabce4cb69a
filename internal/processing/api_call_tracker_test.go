package processing

import (
	"sync"
	"testing"
)

func TestAPICallTracker_RecordCall(t *testing.T) {
	tracker := NewAPICallTracker()

	tracker.RecordCall(EndpointFlightLogs)
	tracker.RecordCall(EndpointUserBasic)
	tracker.RecordCall(EndpointUserBasic)

	stats := tracker.GetSessionStats()
	if stats.TotalCalls != 3 {
		t.Errorf("Expected 3 total calls, got %d", stats.TotalCalls)
	}
	if stats.CallsByEndpoint[EndpointUserBasic] != 2 {
		t.Errorf("Expected 2 user basic calls, got %d", stats.CallsByEndpoint[EndpointUserBasic])
	}

	// Returned map is a copy
	stats.CallsByEndpoint[EndpointUserBasic] = 100
	if tracker.GetSessionStats().CallsByEndpoint[EndpointUserBasic] != 2 {
		t.Error("Expected stats map to be a copy")
	}
}

func TestAPICallTracker_ResetSession(t *testing.T) {
	tracker := NewAPICallTracker()

	tracker.RecordCall(EndpointFlightLogs)
	tracker.RecordCall(EndpointFactionMembers)
	tracker.RecordCall(EndpointFlightLogs)

	stats := tracker.GetSessionStats()
	if stats.TotalCalls != 3 {
		t.Errorf("Expected 3 total calls before reset, got %d", stats.TotalCalls)
	}

	tracker.ResetSession()

	stats = tracker.GetSessionStats()
	if stats.SessionCalls != 0 {
		t.Errorf("Expected 0 session calls after reset, got %d", stats.SessionCalls)
	}

	// Total calls and endpoint data should remain for historical tracking
	if stats.TotalCalls != 3 {
		t.Errorf("Expected total calls to be preserved after session reset, got %d", stats.TotalCalls)
	}
}

func TestAPICallTracker_CacheHits(t *testing.T) {
	tracker := NewAPICallTracker()

	tracker.RecordCacheHits(4)
	tracker.RecordCacheHits(0)
	tracker.RecordCacheHits(-1)

	if hits := tracker.GetSessionStats().CacheHits; hits != 4 {
		t.Errorf("Expected 4 cache hits, got %d", hits)
	}
}

func TestAPICallTracker_LogSessionSummary(t *testing.T) {
	tracker := NewAPICallTracker()

	tracker.RecordCall(EndpointFlightLogs)
	tracker.RecordCall(EndpointUserBasic)

	// Should not panic
	tracker.LogSessionSummary()

	if stats := tracker.GetSessionStats(); stats.TotalCalls != 2 {
		t.Errorf("Expected 2 total calls after logging, got %d", stats.TotalCalls)
	}
}

func TestAPICallTracker_Concurrent(t *testing.T) {
	tracker := NewAPICallTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.RecordCall(EndpointUserBasic)
		}()
	}
	wg.Wait()

	if stats := tracker.GetSessionStats(); stats.TotalCalls != 50 {
		t.Errorf("Expected 50 calls, got %d", stats.TotalCalls)
	}
}
