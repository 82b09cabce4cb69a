package processing

import (
	"context"
	"sync"
	"time"

	"torn_flight_board/internal/config"
	"torn_flight_board/internal/torn"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// NameResolverConfig configures caching and fan-out behavior
type NameResolverConfig struct {
	// TTL is how long a resolved name (and the faction roster) stays cached
	TTL time.Duration
	// Concurrency caps parallel per-user lookups
	Concurrency int
}

func defaultNameResolverConfig() NameResolverConfig {
	return NameResolverConfig{
		TTL:         config.NameCacheTTL,
		Concurrency: config.NameLookupConcurrency,
	}
}

type cachedName struct {
	name      string
	timestamp time.Time
}

// NameResolver maps user IDs to player names through the Torn API. The key
// owner's faction roster is loaded first since one call covers many players;
// anyone left over is looked up individually in parallel.
type NameResolver struct {
	client  TornClientInterface
	config  NameResolverConfig
	tracker *APICallTracker
	now     func() time.Time
	mutex   sync.RWMutex

	names           map[int]cachedName
	rosterFetchedAt time.Time
	keyRejected     bool
}

// NewNameResolver creates a caching resolver around a Torn client
func NewNameResolver(client TornClientInterface, tracker *APICallTracker, cfg NameResolverConfig) *NameResolver {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultNameResolverConfig().TTL
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if tracker == nil {
		tracker = NewAPICallTracker()
	}
	return &NameResolver{
		client:  client,
		config:  cfg,
		tracker: tracker,
		now:     time.Now,
		names:   make(map[int]cachedName),
	}
}

// ResolveNames returns the names it could find for ids. Lookup failures are
// logged and leave the ID out of the result; they never fail the caller.
func (r *NameResolver) ResolveNames(ctx context.Context, ids []int) map[int]string {
	resolved := make(map[int]string, len(ids))
	missing := r.fromCache(ids, resolved)
	r.tracker.RecordCacheHits(len(resolved))

	if len(missing) == 0 || r.isKeyRejected() {
		return resolved
	}

	if r.rosterStale() {
		r.loadRoster(ctx)
		missing = r.fromCache(missing, resolved)
	}

	if len(missing) == 0 || r.isKeyRejected() {
		return resolved
	}

	r.lookupUsers(ctx, missing)
	r.fromCache(missing, resolved)

	log.Debug().
		Int("requested", len(ids)).
		Int("resolved", len(resolved)).
		Msg("Resolved player names")

	return resolved
}

// fromCache copies fresh cached names into out and returns the IDs it could not fill
func (r *NameResolver) fromCache(ids []int, out map[int]string) []int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	now := r.now()
	var missing []int
	for _, id := range ids {
		if cached, ok := r.names[id]; ok && now.Sub(cached.timestamp) < r.config.TTL {
			out[id] = cached.name
			continue
		}
		missing = append(missing, id)
	}
	return missing
}

func (r *NameResolver) store(id int, name string) {
	if name == "" {
		return
	}
	r.mutex.Lock()
	r.names[id] = cachedName{name: name, timestamp: r.now()}
	r.mutex.Unlock()
}

func (r *NameResolver) rosterStale() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.rosterFetchedAt.IsZero() || r.now().Sub(r.rosterFetchedAt) >= r.config.TTL
}

func (r *NameResolver) isKeyRejected() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.keyRejected
}

func (r *NameResolver) rejectKey(err error) {
	r.mutex.Lock()
	already := r.keyRejected
	r.keyRejected = true
	r.mutex.Unlock()

	if !already {
		log.Error().
			Err(err).
			Msg("Torn API key rejected, name resolution disabled until restart")
	}
}

// loadRoster caches every member of the key owner's faction. A failed load
// is not retried until the TTL passes.
func (r *NameResolver) loadRoster(ctx context.Context) {
	r.mutex.Lock()
	r.rosterFetchedAt = r.now()
	r.mutex.Unlock()

	r.tracker.RecordCall(EndpointFactionMembers)
	roster, err := r.client.GetFactionMembers(ctx)
	if err != nil {
		if torn.IsKeyError(err) {
			r.rejectKey(err)
			return
		}
		log.Warn().Err(err).Msg("Failed to load faction roster, falling back to per-user lookups")
		return
	}

	for _, member := range roster.Members {
		r.store(member.ID, member.Name)
	}

	log.Debug().
		Int("members", len(roster.Members)).
		Msg("Cached faction roster names")
}

// lookupUsers fetches each ID's basic profile with bounded concurrency
func (r *NameResolver) lookupUsers(ctx context.Context, ids []int) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			if r.isKeyRejected() {
				return nil
			}

			r.tracker.RecordCall(EndpointUserBasic)
			user, err := r.client.GetUserBasic(gctx, id)
			if err != nil {
				if torn.IsKeyError(err) {
					r.rejectKey(err)
					return nil
				}
				log.Warn().
					Err(err).
					Int("user_id", id).
					Msg("Failed to resolve player name")
				return nil
			}

			r.store(id, user.Name)
			return nil
		})
	}

	// goroutines swallow their errors, Wait only joins them
	_ = g.Wait()
}
