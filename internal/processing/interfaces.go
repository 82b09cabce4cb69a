package processing

import (
	"context"
	"time"

	"torn_flight_board/internal/app"
	"torn_flight_board/internal/domain/board"
)

// FlightLogSource defines the flight log endpoint methods used by BoardProcessor
type FlightLogSource interface {
	FetchFlightLogs(ctx context.Context) ([]app.FlightLog, error)
}

// TornClientInterface defines the torn API client methods used by NameResolver
type TornClientInterface interface {
	GetUserBasic(ctx context.Context, userID int) (*app.UserBasicResponse, error)
	GetFactionMembers(ctx context.Context) (*app.FactionMembersResponse, error)
}

// NameResolverInterface resolves numeric user IDs to player names
type NameResolverInterface interface {
	ResolveNames(ctx context.Context, ids []int) map[int]string
}

// BoardPublisher receives every freshly refreshed board (sheet, SCP snapshot)
type BoardPublisher interface {
	Name() string
	Publish(ctx context.Context, b board.Board) error
}

// BoardViewer is what the HTTP layer needs from the processor
type BoardViewer interface {
	Board(now time.Time) board.Board
	Refresh(ctx context.Context) error
	LastFetched() time.Time
}
