package processing

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Endpoint names recorded by the tracker
const (
	EndpointFlightLogs     = "FetchFlightLogs"
	EndpointUserBasic      = "GetUserBasic"
	EndpointFactionMembers = "GetFactionMembers"
)

// APICallTracker counts outbound calls per endpoint across refresh cycles
type APICallTracker struct {
	sessionStart    time.Time
	sessionCalls    int64
	totalCalls      int64
	callsByEndpoint map[string]int64
	cacheHits       int64
	mutex           sync.RWMutex
}

// NewAPICallTracker creates a new API call tracker
func NewAPICallTracker() *APICallTracker {
	return &APICallTracker{
		sessionStart:    time.Now(),
		callsByEndpoint: make(map[string]int64),
	}
}

// RecordCall records an API call for tracking
func (t *APICallTracker) RecordCall(endpoint string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionCalls++
	t.totalCalls++
	t.callsByEndpoint[endpoint]++
}

// RecordCacheHits records name lookups answered without calling the API
func (t *APICallTracker) RecordCacheHits(n int) {
	if n <= 0 {
		return
	}
	t.mutex.Lock()
	t.cacheHits += int64(n)
	t.mutex.Unlock()
}

// GetSessionStats returns API call statistics for current session
func (t *APICallTracker) GetSessionStats() APICallStats {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	duration := time.Since(t.sessionStart)

	endpointCopy := make(map[string]int64, len(t.callsByEndpoint))
	for k, v := range t.callsByEndpoint {
		endpointCopy[k] = v
	}

	var perMinute float64
	if minutes := duration.Minutes(); minutes > 0 {
		perMinute = float64(t.sessionCalls) / minutes
	}

	return APICallStats{
		SessionCalls:    t.sessionCalls,
		TotalCalls:      t.totalCalls,
		CacheHits:       t.cacheHits,
		SessionDuration: duration,
		CallsByEndpoint: endpointCopy,
		CallsPerMinute:  perMinute,
	}
}

// ResetSession resets session-specific counters
func (t *APICallTracker) ResetSession() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionStart = time.Now()
	t.sessionCalls = 0
	// Keep total calls and endpoint breakdown for historical tracking
}

// LogSessionSummary logs a summary of API usage for the session
func (t *APICallTracker) LogSessionSummary() {
	stats := t.GetSessionStats()

	logEvent := log.Info().
		Int64("session_calls", stats.SessionCalls).
		Int64("total_calls", stats.TotalCalls).
		Int64("name_cache_hits", stats.CacheHits).
		Float64("calls_per_minute", stats.CallsPerMinute).
		Dur("session_duration", stats.SessionDuration)

	for endpoint, count := range stats.CallsByEndpoint {
		logEvent = logEvent.Int64(endpoint+"_calls", count)
	}

	logEvent.Msg("API call session summary")
}

// APICallStats represents API call statistics
type APICallStats struct {
	SessionCalls    int64
	TotalCalls      int64
	CacheHits       int64
	SessionDuration time.Duration
	CallsByEndpoint map[string]int64
	CallsPerMinute  float64
}
