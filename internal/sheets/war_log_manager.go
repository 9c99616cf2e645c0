package sheets

import (
	"context"
	"fmt"

	"coc_war_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// WarLogTabName is the sheet holding the clan's finished wars
const WarLogTabName = "War Log"

// warLogColumns is the width of the war log sheet, A through K
const warLogColumns = 11

// WarLogManager keeps the war log sheet in step with the API's war log
type WarLogManager struct {
	api SheetsAPI
}

// NewWarLogManager creates a new war log manager with the given API client
func NewWarLogManager(api SheetsAPI) *WarLogManager {
	return &WarLogManager{
		api: api,
	}
}

// GenerateWarLogHeaders creates the header row of the war log sheet
func (m *WarLogManager) GenerateWarLogHeaders() []interface{} {
	return []interface{}{
		"End Time",
		"Result",
		"Team Size",
		"League",
		"Opponent Tag",
		"Opponent Name",
		"Our Stars",
		"Opponent Stars",
		"Our Destruction",
		"Opponent Destruction",
		"Exp Earned",
	}
}

// UpdateWarLog rewrites the war log sheet. The API only returns a recent window of
// wars, newest first, so the sheet mirrors that window rather than accumulating.
func (m *WarLogManager) UpdateWarLog(ctx context.Context, spreadsheetID string, records []app.WarLogRecord) error {
	exists, err := m.api.SheetExists(ctx, spreadsheetID, WarLogTabName)
	if err != nil {
		return fmt.Errorf("failed to check if war log sheet exists: %w", err)
	}
	if !exists {
		if err := m.api.CreateSheet(ctx, spreadsheetID, WarLogTabName); err != nil {
			return fmt.Errorf("failed to create war log sheet: %w", err)
		}
	}

	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, m.GenerateWarLogHeaders())
	rows = append(rows, m.ConvertWarLogToRows(records)...)

	if err := m.api.EnsureSheetCapacity(ctx, spreadsheetID, WarLogTabName, len(rows), warLogColumns); err != nil {
		return fmt.Errorf("failed to ensure war log capacity: %w", err)
	}

	lastCol := columnLetter(warLogColumns)
	if err := m.api.ClearRange(ctx, spreadsheetID, sheetRange(WarLogTabName, "A:"+lastCol)); err != nil {
		return fmt.Errorf("failed to clear war log: %w", err)
	}

	rangeSpec := sheetRange(WarLogTabName, fmt.Sprintf("A1:%s%d", lastCol, len(rows)))
	if err := m.api.UpdateRange(ctx, spreadsheetID, rangeSpec, rows); err != nil {
		return fmt.Errorf("failed to write war log: %w", err)
	}

	log.Debug().
		Int("entries", len(records)).
		Str("range", rangeSpec).
		Msg("Updated war log sheet")

	return nil
}

// ConvertWarLogToRows converts war log records into spreadsheet row format
func (m *WarLogManager) ConvertWarLogToRows(records []app.WarLogRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		result := record.Result
		if result == "" {
			result = "-"
		}
		rows = append(rows, []interface{}{
			formatSheetTime(record.EndTime),
			result,
			record.TeamSize,
			record.League,
			record.OpponentTag,
			record.OpponentName,
			record.ClanStars,
			record.OpponentStars,
			fmt.Sprintf("%.2f", record.ClanDestruction),
			fmt.Sprintf("%.2f", record.OpponentDestruction),
			record.ExpEarned,
		})
	}
	return rows
}
