package sheets

import (
	"context"
	"fmt"

	"coc_war_stats/internal/app"

	"github.com/rs/zerolog/log"
)

const sheetTimeLayout = "2006-01-02 15:04:05"

// WarSheetsManager handles business logic for war sheet management
// Separated from infrastructure concerns for better testability
type WarSheetsManager struct {
	api SheetsAPI
}

// NewWarSheetsManager creates a new war sheets manager with the given API client
func NewWarSheetsManager(api SheetsAPI) *WarSheetsManager {
	return &WarSheetsManager{
		api: api,
	}
}

// EnsureWarSheets creates summary and records sheets for a war if they don't exist
func (m *WarSheetsManager) EnsureWarSheets(ctx context.Context, spreadsheetID, warKey string) (*app.SheetConfig, error) {
	summaryTabName := m.GenerateSummaryTabName(warKey)
	recordsTabName := m.GenerateRecordsTabName(warKey)

	log.Debug().
		Str("war_key", warKey).
		Str("summary_tab", summaryTabName).
		Str("records_tab", recordsTabName).
		Msg("Ensuring war sheets exist")

	if err := m.ensureSheet(ctx, spreadsheetID, summaryTabName, m.GenerateSummarySheetHeaders()); err != nil {
		return nil, fmt.Errorf("failed to ensure summary sheet: %w", err)
	}
	if err := m.ensureSheet(ctx, spreadsheetID, recordsTabName, m.GenerateRecordsSheetHeaders()); err != nil {
		return nil, fmt.Errorf("failed to ensure records sheet: %w", err)
	}

	return &app.SheetConfig{
		WarKey:         warKey,
		SummaryTabName: summaryTabName,
		RecordsTabName: recordsTabName,
		SpreadsheetID:  spreadsheetID,
	}, nil
}

// ensureSheet creates the sheet and writes its headers unless it already exists
func (m *WarSheetsManager) ensureSheet(ctx context.Context, spreadsheetID, sheetName string, headers [][]interface{}) error {
	exists, err := m.api.SheetExists(ctx, spreadsheetID, sheetName)
	if err != nil {
		return fmt.Errorf("failed to check if sheet exists: %w", err)
	}
	if exists {
		return nil
	}

	log.Info().
		Str("sheet_name", sheetName).
		Msg("Creating sheet")

	if err := m.api.CreateSheet(ctx, spreadsheetID, sheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := m.api.UpdateRange(ctx, spreadsheetID, sheetRange(sheetName, "A1"), headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int("header_rows", len(headers)).
		Msg("Initialized sheet with headers")

	return nil
}

// GenerateSummaryTabName creates a standardized summary tab name for a war
func (m *WarSheetsManager) GenerateSummaryTabName(warKey string) string {
	return fmt.Sprintf("Summary - %s", warKey)
}

// GenerateRecordsTabName creates a standardized records tab name for a war
func (m *WarSheetsManager) GenerateRecordsTabName(warKey string) string {
	return fmt.Sprintf("Records - %s", warKey)
}

// GenerateSummarySheetHeaders creates the label column for war summary sheets.
// Values are written next to the labels in column B starting at row 3.
func (m *WarSheetsManager) GenerateSummarySheetHeaders() [][]interface{} {
	return [][]interface{}{
		{"War Summary"},
		{},
		{"War", ""},
		{"War Tag", ""},
		{"State", ""},
		{"Type", ""},
		{"Result", ""},
		{"Team Size", ""},
		{"Preparation Start", ""},
		{"Start Time", ""},
		{"End Time", ""},
		{},
		{"Our Clan", ""},
		{"Our Stars", ""},
		{"Our Destruction", ""},
		{"Our Attacks Used", ""},
		{"Our Fresh Attacks", ""},
		{"Our Three Stars", ""},
		{},
		{"Opponent", ""},
		{"Opponent Stars", ""},
		{"Opponent Destruction", ""},
		{"Opponent Attacks Used", ""},
		{"Opponent Fresh Attacks", ""},
		{"Opponent Three Stars", ""},
		{},
		{"Last Updated", ""},
	}
}

// GenerateRecordsSheetHeaders creates the standard headers for attack records sheets
func (m *WarSheetsManager) GenerateRecordsSheetHeaders() [][]interface{} {
	return [][]interface{}{
		{
			"Order",
			"Direction",
			"Attacker Tag",
			"Attacker Name",
			"Attacker TH",
			"Attacker Position",
			"Defender Tag",
			"Defender Name",
			"Defender TH",
			"Defender Position",
			"Stars",
			"Destruction",
			"Fresh",
		},
	}
}

// UpdateWarSummary updates the summary sheet with current war statistics
func (m *WarSheetsManager) UpdateWarSummary(ctx context.Context, spreadsheetID string, config *app.SheetConfig, summary *app.WarSummary) error {
	summaryData := m.ConvertSummaryToRows(summary)

	// column B from row 3 so the labels stay intact
	rangeSpec := sheetRange(config.SummaryTabName, fmt.Sprintf("B3:B%d", 2+len(summaryData)))

	values := make([][]interface{}, len(summaryData))
	for i, cell := range summaryData {
		values[i] = []interface{}{cell}
	}

	if err := m.api.UpdateRange(ctx, spreadsheetID, rangeSpec, values); err != nil {
		return fmt.Errorf("failed to update war summary: %w", err)
	}

	log.Debug().
		Str("war_key", config.WarKey).
		Str("sheet_name", config.SummaryTabName).
		Int("data_rows", len(summaryData)).
		Msg("Updated war summary sheet")

	return nil
}

// ConvertSummaryToRows converts a WarSummary into the value column of the summary sheet
func (m *WarSheetsManager) ConvertSummaryToRows(summary *app.WarSummary) []interface{} {
	result := summary.Status
	if result == "" {
		result = "-"
	}

	return []interface{}{
		summary.WarKey,
		summary.WarTag,
		summary.State,
		summary.Type,
		result,
		summary.TeamSize,
		formatSheetTime(summary.PrepStart),
		formatSheetTime(summary.StartTime),
		formatSheetTime(summary.EndTime),
		"",
		fmt.Sprintf("%s (%s)", summary.Clan.Name, summary.Clan.Tag),
		summary.Clan.Stars,
		fmt.Sprintf("%.2f%%", summary.Clan.Destruction),
		summary.Clan.AttacksUsed,
		summary.Clan.FreshAttacks,
		summary.Clan.ThreeStars,
		"",
		fmt.Sprintf("%s (%s)", summary.Opponent.Name, summary.Opponent.Tag),
		summary.Opponent.Stars,
		fmt.Sprintf("%.2f%%", summary.Opponent.Destruction),
		summary.Opponent.AttacksUsed,
		summary.Opponent.FreshAttacks,
		summary.Opponent.ThreeStars,
		"",
		formatSheetTime(summary.LastUpdated),
	}
}
