package processing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// WarCacheConfig configures caching behavior
type WarCacheConfig struct {
	// LeagueWarTTL is how long a league war that has not ended is served from cache
	LeagueWarTTL time.Duration
	// LeagueGroupTTL is how long the league group is cached; new rounds appear once a day
	LeagueGroupTTL time.Duration
}

// DefaultWarCacheConfig returns sensible cache defaults
func DefaultWarCacheConfig() WarCacheConfig {
	return WarCacheConfig{
		LeagueWarTTL:   2 * time.Minute,
		LeagueGroupTTL: 10 * time.Minute,
	}
}

// CachedWarClient wraps a Clash of Clans client with caching for league data.
// It resolves league wars for war.ClanWarLeagueGroup. Ended wars never change, so
// they are kept without expiry.
type CachedWarClient struct {
	client  ClashClientInterface
	config  WarCacheConfig
	tracker *APICallTracker
	now     func() time.Time
	mutex   sync.RWMutex

	leagueWars  map[string]*cachedData
	leagueGroup map[string]*cachedData
	hits        int64
	misses      int64
}

type cachedData struct {
	data      app.Data
	timestamp time.Time
	final     bool
}

func (c *cachedData) valid(now time.Time, ttl time.Duration) bool {
	return c.final || now.Sub(c.timestamp) < ttl
}

// NewCachedWarClient creates a caching wrapper around a Clash of Clans client
func NewCachedWarClient(client ClashClientInterface, tracker *APICallTracker) *CachedWarClient {
	return NewCachedWarClientWithConfig(client, tracker, DefaultWarCacheConfig())
}

// NewCachedWarClientWithConfig creates a caching wrapper with custom TTLs
func NewCachedWarClientWithConfig(client ClashClientInterface, tracker *APICallTracker, config WarCacheConfig) *CachedWarClient {
	if tracker == nil {
		tracker = NewAPICallTracker()
	}
	return &CachedWarClient{
		client:      client,
		config:      config,
		tracker:     tracker,
		now:         time.Now,
		leagueWars:  make(map[string]*cachedData),
		leagueGroup: make(map[string]*cachedData),
	}
}

// GetClanWar delegates to underlying client (no caching for the live war)
func (c *CachedWarClient) GetClanWar(ctx context.Context, clanTag string) (app.Data, error) {
	c.tracker.RecordCall(EndpointClanWar)
	return c.client.GetClanWar(ctx, clanTag)
}

// GetWarLog delegates to underlying client
func (c *CachedWarClient) GetWarLog(ctx context.Context, clanTag string) (app.Data, error) {
	c.tracker.RecordCall(EndpointWarLog)
	return c.client.GetWarLog(ctx, clanTag)
}

// GetLeagueGroup returns the cached league group or fetches fresh data
func (c *CachedWarClient) GetLeagueGroup(ctx context.Context, clanTag string) (app.Data, error) {
	if data, ok := c.lookup(c.leagueGroup, clanTag, c.config.LeagueGroupTTL); ok {
		log.Debug().
			Str("clan_tag", clanTag).
			Msg("Using cached league group (API call saved)")
		return data, nil
	}

	c.tracker.RecordCall(EndpointLeagueGroup)
	data, err := c.client.GetLeagueGroup(ctx, clanTag)
	if err != nil {
		return nil, err
	}

	c.store(c.leagueGroup, clanTag, data, data.String("state") == "ended")
	return data, nil
}

// GetLeagueWar returns a league war snapshot, from cache when still valid
func (c *CachedWarClient) GetLeagueWar(ctx context.Context, warTag string) (app.Data, error) {
	return c.leagueWar(ctx, warTag, true)
}

// ResolveLeagueWar fetches a league war and builds it with ctor, or war.NewClanWar when
// ctor is nil. With cache false the API is always queried and the cache refreshed.
func (c *CachedWarClient) ResolveLeagueWar(ctx context.Context, warTag string, cache bool, ctor war.WarConstructor) (*war.ClanWar, error) {
	data, err := c.leagueWar(ctx, warTag, cache)
	if err != nil {
		return nil, err
	}

	if ctor == nil {
		ctor = war.NewClanWar
	}
	w, err := ctor(data, "")
	if err != nil {
		return nil, fmt.Errorf("failed to build league war %s: %w", warTag, err)
	}
	return w, nil
}

func (c *CachedWarClient) leagueWar(ctx context.Context, warTag string, cache bool) (app.Data, error) {
	if cache {
		if data, ok := c.lookup(c.leagueWars, warTag, c.config.LeagueWarTTL); ok {
			log.Debug().
				Str("war_tag", warTag).
				Msg("Using cached league war (API call saved)")
			return data, nil
		}
	}

	log.Debug().
		Str("war_tag", warTag).
		Bool("cache", cache).
		Msg("Fetching fresh league war from API")
	c.tracker.RecordCall(EndpointLeagueWar)
	data, err := c.client.GetLeagueWar(ctx, warTag)
	if err != nil {
		return nil, err
	}

	c.store(c.leagueWars, warTag, data, data.String("state") == war.StateWarEnded)
	return data, nil
}

func (c *CachedWarClient) lookup(entries map[string]*cachedData, key string, ttl time.Duration) (app.Data, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := entries[key]
	if cached != nil && cached.valid(c.now(), ttl) {
		c.hits++
		return cached.data, true
	}
	c.misses++
	return nil, false
}

func (c *CachedWarClient) store(entries map[string]*cachedData, key string, data app.Data, final bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries[key] = &cachedData{
		data:      data,
		timestamp: c.now(),
		final:     final,
	}
}

// IsCachedFinal reports whether the war is cached as ended, so it costs no API call
func (c *CachedWarClient) IsCachedFinal(warTag string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	cached := c.leagueWars[warTag]
	return cached != nil && cached.final
}

// ClearCache invalidates all cached data
func (c *CachedWarClient) ClearCache() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.leagueWars = make(map[string]*cachedData)
	c.leagueGroup = make(map[string]*cachedData)

	log.Info().Msg("War cache cleared")
}

// GetCacheStats returns cache entry and hit/miss statistics
func (c *CachedWarClient) GetCacheStats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := c.now()
	stats := CacheStats{Hits: c.hits, Misses: c.misses}

	for _, cached := range c.leagueWars {
		stats.count(cached.valid(now, c.config.LeagueWarTTL), cached.final)
	}
	for _, cached := range c.leagueGroup {
		stats.count(cached.valid(now, c.config.LeagueGroupTTL), cached.final)
	}

	return stats
}

// CacheStats represents cache statistics
type CacheStats struct {
	ValidEntries   int
	ExpiredEntries int
	FinalEntries   int
	TotalEntries   int
	Hits           int64
	Misses         int64
}

func (s *CacheStats) count(valid, final bool) {
	s.TotalEntries++
	if valid {
		s.ValidEntries++
	} else {
		s.ExpiredEntries++
	}
	if final {
		s.FinalEntries++
	}
}
