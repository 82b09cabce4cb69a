package mocks

import (
	"context"
	"sync"

	"torn_flight_board/internal/domain/board"
)

// MockPublisher records every board it is asked to publish
type MockPublisher struct {
	mutex sync.Mutex

	PublisherName string
	Error         error
	Published     []board.Board
}

// NewMockPublisher creates a named publisher
func NewMockPublisher(name string) *MockPublisher {
	return &MockPublisher{PublisherName: name}
}

func (m *MockPublisher) Name() string {
	return m.PublisherName
}

func (m *MockPublisher) Publish(ctx context.Context, b board.Board) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.Published = append(m.Published, b)
	return m.Error
}

// PublishCount returns how many boards were published
func (m *MockPublisher) PublishCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.Published)
}
