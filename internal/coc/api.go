package coc

import (
	"context"

	"coc_war_stats/internal/app"
)

// ClashAPI defines the interface for interacting with the Clash of Clans API
// This separates infrastructure concerns from business logic
type ClashAPI interface {
	// Core API endpoints
	GetClanWar(ctx context.Context, clanTag string) (app.Data, error)
	GetLeagueGroup(ctx context.Context, clanTag string) (app.Data, error)
	GetLeagueWar(ctx context.Context, warTag string) (app.Data, error)
	GetWarLog(ctx context.Context, clanTag string) (app.Data, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
