package processing

import (
	"context"
	"sync"
	"time"

	"torn_flight_board/internal/app"
	"torn_flight_board/internal/domain/board"

	"github.com/rs/zerolog/log"
)

// boardSnapshot is the last fetched input. Rows are rebuilt from it on every
// read so relative times never go stale.
type boardSnapshot struct {
	records   []app.FlightLog
	names     map[int]string
	fetchedAt time.Time
	lastError error
}

// BoardProcessor polls the flight log source and keeps the latest board input
type BoardProcessor struct {
	source     FlightLogSource
	resolver   NameResolverInterface
	publishers []BoardPublisher
	tracker    *APICallTracker
	location   *time.Location
	now        func() time.Time

	// refreshMutex serializes whole refresh cycles; mutex only guards snapshot
	refreshMutex sync.Mutex
	mutex        sync.RWMutex
	snapshot     boardSnapshot
}

// NewBoardProcessor creates a processor. resolver may be nil when no Torn API
// key is configured.
func NewBoardProcessor(source FlightLogSource, resolver NameResolverInterface, tracker *APICallTracker, location *time.Location, publishers ...BoardPublisher) *BoardProcessor {
	if location == nil {
		location = time.UTC
	}
	if tracker == nil {
		tracker = NewAPICallTracker()
	}
	return &BoardProcessor{
		source:     source,
		resolver:   resolver,
		publishers: publishers,
		tracker:    tracker,
		location:   location,
		now:        time.Now,
	}
}

// Refresh fetches the flight logs, resolves names and publishes the new board.
// On fetch failure the previous records are kept and the error is returned;
// publisher failures are only logged. Concurrent calls run one at a time.
func (p *BoardProcessor) Refresh(ctx context.Context) error {
	p.refreshMutex.Lock()
	defer p.refreshMutex.Unlock()

	p.tracker.RecordCall(EndpointFlightLogs)
	records, err := p.source.FetchFlightLogs(ctx)
	if err != nil {
		p.mutex.Lock()
		p.snapshot.lastError = err
		p.mutex.Unlock()

		log.Error().
			Err(err).
			Msg("Failed to fetch flight logs")
		return err
	}

	names := map[int]string{}
	if p.resolver != nil {
		if ids := board.UserIDs(records); len(ids) > 0 {
			names = p.resolver.ResolveNames(ctx, ids)
		}
	}

	p.mutex.Lock()
	p.snapshot = boardSnapshot{
		records:   records,
		names:     names,
		fetchedAt: p.now(),
	}
	p.mutex.Unlock()

	log.Info().
		Int("records", len(records)).
		Int("resolved_names", len(names)).
		Msg("Refreshed flight board")

	p.publish(ctx)
	return nil
}

func (p *BoardProcessor) publish(ctx context.Context) {
	if len(p.publishers) == 0 {
		return
	}

	current := p.Board(p.now())
	for _, publisher := range p.publishers {
		if err := publisher.Publish(ctx, current); err != nil {
			log.Error().
				Err(err).
				Str("publisher", publisher.Name()).
				Msg("Failed to publish flight board")
			continue
		}
		log.Debug().
			Str("publisher", publisher.Name()).
			Int("rows", len(current.Rows)).
			Msg("Published flight board")
	}
}

// Board renders the latest snapshot as of now
func (p *BoardProcessor) Board(now time.Time) board.Board {
	p.mutex.RLock()
	snapshot := p.snapshot
	p.mutex.RUnlock()

	b := board.Build(snapshot.records, snapshot.names, now, p.location)
	b.FetchedAt = snapshot.fetchedAt
	if snapshot.lastError != nil {
		b.Error = snapshot.lastError.Error()
	}
	return b
}

// LastFetched returns when records were last fetched successfully
func (p *BoardProcessor) LastFetched() time.Time {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.snapshot.fetchedAt
}
