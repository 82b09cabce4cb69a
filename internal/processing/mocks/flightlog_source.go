package mocks

import (
	"context"
	"sync"

	"torn_flight_board/internal/app"
)

// MockFlightLogSource is a test double for the flightlog.Client
type MockFlightLogSource struct {
	mutex sync.Mutex

	Logs  []app.FlightLog
	Error error

	FetchCalls int
}

// NewMockFlightLogSource creates a source that returns logs
func NewMockFlightLogSource(logs ...app.FlightLog) *MockFlightLogSource {
	return &MockFlightLogSource{Logs: logs}
}

func (m *MockFlightLogSource) FetchFlightLogs(ctx context.Context) ([]app.FlightLog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.FetchCalls++
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Logs, nil
}

// SetResponse swaps the logs and error returned by later fetches
func (m *MockFlightLogSource) SetResponse(logs []app.FlightLog, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Logs = logs
	m.Error = err
}
