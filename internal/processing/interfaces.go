package processing

import (
	"context"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"
)

// ClashClientInterface defines the Clash of Clans API methods used by WarProcessor
type ClashClientInterface interface {
	GetClanWar(ctx context.Context, clanTag string) (app.Data, error)
	GetLeagueGroup(ctx context.Context, clanTag string) (app.Data, error)
	GetLeagueWar(ctx context.Context, warTag string) (app.Data, error)
	GetWarLog(ctx context.Context, clanTag string) (app.Data, error)
}

// SheetsClientInterface defines the sheets API client methods used by WarProcessor
type SheetsClientInterface interface {
	EnsureWarSheets(ctx context.Context, spreadsheetID, warKey string) (*app.SheetConfig, error)
	UpdateWarSummary(ctx context.Context, spreadsheetID string, config *app.SheetConfig, summary *app.WarSummary) error
	UpdateAttackRecords(ctx context.Context, spreadsheetID string, config *app.SheetConfig, records []app.AttackRecord) error
	UpdateWarLog(ctx context.Context, spreadsheetID string, records []app.WarLogRecord) error
}

// AttackProcessingServiceInterface defines the interface for attack processing
type AttackProcessingServiceInterface interface {
	ProcessAttacksIntoRecords(w *war.ClanWar) []app.AttackRecord
}

// WarSummaryServiceInterface defines the interface for war summary generation
type WarSummaryServiceInterface interface {
	GenerateWarSummary(w *war.ClanWar, records []app.AttackRecord) *app.WarSummary
}

// DeployerInterface uploads a local file to the report host
type DeployerInterface interface {
	DeployFile(localPath, filename string) error
}

// EndedWarCache reports league wars cached as ended, which cost no further API calls
type EndedWarCache interface {
	IsCachedFinal(warTag string) bool
}
