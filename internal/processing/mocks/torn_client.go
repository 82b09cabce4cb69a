package mocks

import (
	"context"
	"sync"

	"torn_flight_board/internal/app"
)

// MockTornClient is a test double for the torn.Client. It is safe for the
// concurrent calls the name resolver makes.
type MockTornClient struct {
	mutex sync.Mutex

	// Responses to return
	Users                  map[int]*app.UserBasicResponse
	FactionMembersResponse *app.FactionMembersResponse

	// Errors to return
	UserErrors          map[int]error
	UserError           error
	FactionMembersError error

	// Call tracking
	GetUserBasicCalls      []int
	GetFactionMembersCalls int
}

// NewMockTornClient creates a new mock torn client
func NewMockTornClient() *MockTornClient {
	return &MockTornClient{
		Users:      make(map[int]*app.UserBasicResponse),
		UserErrors: make(map[int]error),
	}
}

// AddUser registers a player the mock knows about
func (m *MockTornClient) AddUser(id int, name string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Users[id] = &app.UserBasicResponse{PlayerID: id, Name: name}
}

func (m *MockTornClient) GetUserBasic(ctx context.Context, userID int) (*app.UserBasicResponse, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.GetUserBasicCalls = append(m.GetUserBasicCalls, userID)
	if err, ok := m.UserErrors[userID]; ok {
		return nil, err
	}
	if m.UserError != nil {
		return nil, m.UserError
	}
	if user, ok := m.Users[userID]; ok {
		return user, nil
	}
	return &app.UserBasicResponse{PlayerID: userID}, nil
}

func (m *MockTornClient) GetFactionMembers(ctx context.Context) (*app.FactionMembersResponse, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.GetFactionMembersCalls++
	if m.FactionMembersError != nil {
		return nil, m.FactionMembersError
	}
	if m.FactionMembersResponse == nil {
		return &app.FactionMembersResponse{}, nil
	}
	return m.FactionMembersResponse, nil
}

// UserBasicCallCount returns how many per-user lookups were made
func (m *MockTornClient) UserBasicCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.GetUserBasicCalls)
}

// FactionMembersCallCount returns how many roster loads were made
func (m *MockTornClient) FactionMembersCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.GetFactionMembersCalls
}
