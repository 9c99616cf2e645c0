package mocks

import (
	"context"
	"fmt"
	"sync"

	"coc_war_stats/internal/app"
)

// MockClashClient is a test double for coc.Client. It is safe for concurrent use
// since league wars are resolved in parallel.
type MockClashClient struct {
	// Responses to return
	ClanWarResponse     app.Data
	LeagueGroupResponse app.Data
	LeagueWarResponses  map[string]app.Data
	WarLogResponse      app.Data

	// Errors to return
	ClanWarError     error
	LeagueGroupError error
	LeagueWarErrors  map[string]error
	WarLogError      error

	// Call tracking
	GetClanWarCalls     int
	GetLeagueGroupCalls int
	GetWarLogCalls      int
	LeagueWarCalls      map[string]int
	CalledWithClanTag   string

	mutex sync.Mutex
}

// NewMockClashClient creates a new mock Clash of Clans client
func NewMockClashClient() *MockClashClient {
	return &MockClashClient{
		LeagueWarResponses: make(map[string]app.Data),
		LeagueWarErrors:    make(map[string]error),
		LeagueWarCalls:     make(map[string]int),
	}
}

func (m *MockClashClient) GetClanWar(ctx context.Context, clanTag string) (app.Data, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.GetClanWarCalls++
	m.CalledWithClanTag = clanTag
	return m.ClanWarResponse, m.ClanWarError
}

func (m *MockClashClient) GetLeagueGroup(ctx context.Context, clanTag string) (app.Data, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.GetLeagueGroupCalls++
	return m.LeagueGroupResponse, m.LeagueGroupError
}

func (m *MockClashClient) GetLeagueWar(ctx context.Context, warTag string) (app.Data, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.LeagueWarCalls == nil {
		m.LeagueWarCalls = make(map[string]int)
	}
	m.LeagueWarCalls[warTag]++

	if err := m.LeagueWarErrors[warTag]; err != nil {
		return nil, err
	}
	data, ok := m.LeagueWarResponses[warTag]
	if !ok {
		return nil, fmt.Errorf("no league war registered for %s", warTag)
	}
	return data, nil
}

func (m *MockClashClient) GetWarLog(ctx context.Context, clanTag string) (app.Data, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.GetWarLogCalls++
	return m.WarLogResponse, m.WarLogError
}

// LeagueWarCallCount returns how often the war tag was fetched
func (m *MockClashClient) LeagueWarCallCount(warTag string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.LeagueWarCalls[warTag]
}
