package torn

import (
	"context"

	"torn_flight_board/internal/app"
)

// TornAPI defines the interface for interacting with the Torn API
// This separates infrastructure concerns from business logic
type TornAPI interface {
	GetUserBasic(ctx context.Context, userID int) (*app.UserBasicResponse, error)
	GetFactionMembers(ctx context.Context) (*app.FactionMembersResponse, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
