package processing

import (
	"context"
	"errors"
	"testing"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"
	"coc_war_stats/internal/processing/mocks"
)

// fakeClock is a settable time source for cache expiry tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestCache(client *mocks.MockClashClient) (*CachedWarClient, *fakeClock, *APICallTracker) {
	clock := &fakeClock{now: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)}
	tracker := NewAPICallTracker()
	cached := NewCachedWarClient(client, tracker)
	cached.now = clock.Now
	return cached, clock, tracker
}

func TestCachedWarClient_ResolveLeagueWarCaches(t *testing.T) {
	client := mocks.NewMockClashClient()
	client.LeagueWarResponses["#W1"] = warData(war.StateInWar, "#W1", ourTag, theirTag, nil)
	cached, clock, tracker := newTestCache(client)
	ctx := context.Background()

	first, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if first.WarTag != "#W1" || first.Clan.Tag != ourTag {
		t.Errorf("Unexpected war %v", first)
	}

	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 1 {
		t.Errorf("Expected second resolve to be served from cache, got %d API calls", got)
	}

	clock.now = clock.now.Add(DefaultWarCacheConfig().LeagueWarTTL + time.Second)
	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 2 {
		t.Errorf("Expected expired entry to be refetched, got %d API calls", got)
	}

	if got := tracker.GetSessionStats().CallsByEndpoint[EndpointLeagueWar]; got != 2 {
		t.Errorf("Expected tracker to record 2 league war calls, got %d", got)
	}
}

func TestCachedWarClient_CacheFlagBypassesReads(t *testing.T) {
	client := mocks.NewMockClashClient()
	client.LeagueWarResponses["#W1"] = warData(war.StateInWar, "#W1", ourTag, theirTag, nil)
	cached, _, _ := newTestCache(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cached.ResolveLeagueWar(ctx, "#W1", false, nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if got := client.LeagueWarCallCount("#W1"); got != 3 {
		t.Errorf("Expected every uncached resolve to hit the API, got %d calls", got)
	}

	// the bypassing reads still refreshed the cache
	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 3 {
		t.Errorf("Expected cached resolve after refresh to skip the API, got %d calls", got)
	}
}

func TestCachedWarClient_EndedWarsNeverExpire(t *testing.T) {
	client := mocks.NewMockClashClient()
	client.LeagueWarResponses["#W1"] = warData(war.StateWarEnded, "#W1", ourTag, theirTag, nil)
	cached, clock, _ := newTestCache(client)
	ctx := context.Background()

	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !cached.IsCachedFinal("#W1") {
		t.Error("Expected ended war to be cached as final")
	}

	clock.now = clock.now.Add(48 * time.Hour)
	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 1 {
		t.Errorf("Expected ended war to stay cached, got %d API calls", got)
	}

	stats := cached.GetCacheStats()
	if stats.FinalEntries != 1 || stats.ValidEntries != 1 || stats.TotalEntries != 1 {
		t.Errorf("Unexpected cache stats %+v", stats)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
}

func TestCachedWarClient_ErrorsAreNotCached(t *testing.T) {
	client := mocks.NewMockClashClient()
	apiErr := errors.New("service unavailable")
	client.LeagueWarErrors["#W1"] = apiErr
	cached, _, _ := newTestCache(client)
	ctx := context.Background()

	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); !errors.Is(err, apiErr) {
		t.Fatalf("Expected API error, got %v", err)
	}

	delete(client.LeagueWarErrors, "#W1")
	client.LeagueWarResponses["#W1"] = warData(war.StateInWar, "#W1", ourTag, theirTag, nil)

	if _, err := cached.ResolveLeagueWar(ctx, "#W1", true, nil); err != nil {
		t.Fatalf("Expected retry after failure to succeed, got %v", err)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 2 {
		t.Errorf("Expected failed fetch not to be cached, got %d calls", got)
	}
}

func TestCachedWarClient_CustomConstructor(t *testing.T) {
	client := mocks.NewMockClashClient()
	client.LeagueWarResponses["#W1"] = warData(war.StateInWar, "#W1", theirTag, ourTag, nil)
	cached, _, _ := newTestCache(client)

	ctorErr := errors.New("rejected")
	_, err := cached.ResolveLeagueWar(context.Background(), "#W1", true, func(app.Data, string) (*war.ClanWar, error) {
		return nil, ctorErr
	})
	if !errors.Is(err, ctorErr) {
		t.Errorf("Expected constructor error to be wrapped, got %v", err)
	}

	w, err := cached.ResolveLeagueWar(context.Background(), "#W1", true, OrientedWarConstructor(ourTag))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if w.Clan.Tag != ourTag {
		t.Errorf("Expected oriented war with %s at home, got %s", ourTag, w.Clan.Tag)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 1 {
		t.Errorf("Expected cached data to be reused across constructors, got %d calls", got)
	}
}

func TestCachedWarClient_LeagueGroupAndPassThrough(t *testing.T) {
	client := mocks.NewMockClashClient()
	client.LeagueGroupResponse = leagueGroupData([]string{"#W1"})
	client.ClanWarResponse = warData(war.StateInWar, "", ourTag, theirTag, nil)
	client.WarLogResponse = warLogData()
	cached, clock, tracker := newTestCache(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.GetLeagueGroup(ctx, ourTag); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, err := cached.GetClanWar(ctx, ourTag); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, err := cached.GetWarLog(ctx, ourTag); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	if client.GetLeagueGroupCalls != 1 {
		t.Errorf("Expected league group to be cached, got %d calls", client.GetLeagueGroupCalls)
	}
	if client.GetClanWarCalls != 2 || client.GetWarLogCalls != 2 {
		t.Errorf("Expected live endpoints to pass through, got %d/%d", client.GetClanWarCalls, client.GetWarLogCalls)
	}

	clock.now = clock.now.Add(DefaultWarCacheConfig().LeagueGroupTTL)
	if _, err := cached.GetLeagueGroup(ctx, ourTag); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if client.GetLeagueGroupCalls != 2 {
		t.Errorf("Expected league group to expire, got %d calls", client.GetLeagueGroupCalls)
	}

	stats := tracker.GetSessionStats()
	if stats.CallsByEndpoint[EndpointLeagueGroup] != 2 || stats.CallsByEndpoint[EndpointClanWar] != 2 {
		t.Errorf("Unexpected tracked calls %v", stats.CallsByEndpoint)
	}
}

func TestCachedWarClient_ClearCache(t *testing.T) {
	client := mocks.NewMockClashClient()
	client.LeagueWarResponses["#W1"] = warData(war.StateWarEnded, "#W1", ourTag, theirTag, nil)
	cached, _, _ := newTestCache(client)
	ctx := context.Background()

	if _, err := cached.GetLeagueWar(ctx, "#W1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	cached.ClearCache()

	if cached.IsCachedFinal("#W1") {
		t.Error("Expected cleared cache to forget ended wars")
	}
	if stats := cached.GetCacheStats(); stats.TotalEntries != 0 {
		t.Errorf("Expected empty cache, got %+v", stats)
	}
	if _, err := cached.GetLeagueWar(ctx, "#W1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := client.LeagueWarCallCount("#W1"); got != 2 {
		t.Errorf("Expected refetch after clear, got %d calls", got)
	}
}
