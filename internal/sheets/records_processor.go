package sheets

import (
	"context"
	"fmt"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/attack"

	"github.com/rs/zerolog/log"
)

// recordsColumns is the width of the records sheet, A through M
const recordsColumns = 13

// AttackRecordsProcessor handles business logic for attack records management
// Separated from infrastructure concerns for better testability
type AttackRecordsProcessor struct {
	api SheetsAPI
}

// NewAttackRecordsProcessor creates a new attack records processor with the given API client
func NewAttackRecordsProcessor(api SheetsAPI) *AttackRecordsProcessor {
	return &AttackRecordsProcessor{
		api: api,
	}
}

// RecordsInfo contains information about existing records in a sheet
type RecordsInfo struct {
	Orders      map[int]bool
	LastOrder   int
	RecordCount int
}

// ReadExistingRecords reads the order column of a records sheet to find what is already written
func (p *AttackRecordsProcessor) ReadExistingRecords(ctx context.Context, spreadsheetID, sheetName string) (*RecordsInfo, error) {
	values, err := p.api.ReadSheet(ctx, spreadsheetID, sheetRange(sheetName, "A2:A"))
	if err != nil {
		return nil, fmt.Errorf("failed to read existing records: %w", err)
	}

	info := &RecordsInfo{
		Orders: make(map[int]bool),
	}

	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		order := NewCell(row[0]).Int()
		if order <= 0 {
			continue
		}
		info.Orders[order] = true
		info.LastOrder = max(info.LastOrder, order)
		info.RecordCount++
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int("total_rows_read", len(values)).
		Int("valid_records", info.RecordCount).
		Int("last_order", info.LastOrder).
		Msg("Analyzed existing records")

	if len(values) > 0 && info.RecordCount == 0 {
		log.Warn().
			Int("rows_in_sheet", len(values)).
			Msg("No attack orders parsed from existing sheet - possible column mismatch")
	}

	return info, nil
}

// UpdateAttackRecords appends the records the sheet does not have yet
func (p *AttackRecordsProcessor) UpdateAttackRecords(ctx context.Context, spreadsheetID string, config *app.SheetConfig, records []app.AttackRecord) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := p.ReadExistingRecords(ctx, spreadsheetID, config.RecordsTabName)
	if err != nil {
		return fmt.Errorf("failed to read existing records: %w", err)
	}

	newRecords := p.FilterAndSortRecords(records, existing)
	if len(newRecords) == 0 {
		log.Debug().
			Str("war_key", config.WarKey).
			Msg("No new attack records to write")
		return nil
	}

	rows := p.ConvertRecordsToRows(newRecords)

	startRow := existing.RecordCount + 2 // header row plus 1-based indexing
	endRow := startRow + len(rows) - 1

	if err := p.api.EnsureSheetCapacity(ctx, spreadsheetID, config.RecordsTabName, endRow, recordsColumns); err != nil {
		return fmt.Errorf("failed to ensure sheet capacity: %w", err)
	}

	lastCol := columnLetter(recordsColumns)
	rangeSpec := sheetRange(config.RecordsTabName, fmt.Sprintf("A%d:%s%d", startRow, lastCol, endRow))

	if err := p.api.UpdateRange(ctx, spreadsheetID, rangeSpec, rows); err != nil {
		return fmt.Errorf("failed to append attack records: %w", err)
	}

	log.Info().
		Str("war_key", config.WarKey).
		Int("records_appended", len(newRecords)).
		Int("first_order", newRecords[0].Order).
		Int("last_order", newRecords[len(newRecords)-1].Order).
		Str("range", rangeSpec).
		Msg("Appended attack records")

	return nil
}

// FilterAndSortRecords drops records at or below the last written order, and any order
// already present, then returns the rest oldest first
func (p *AttackRecordsProcessor) FilterAndSortRecords(records []app.AttackRecord, existing *RecordsInfo) []app.AttackRecord {
	candidates := attack.FilterRecordsAfter(records, existing.LastOrder)

	var newRecords []app.AttackRecord
	for _, record := range candidates {
		if existing.Orders[record.Order] {
			continue
		}
		newRecords = append(newRecords, record)
	}

	log.Debug().
		Int("input_records", len(records)).
		Int("duplicates_filtered", len(records)-len(newRecords)).
		Int("new_records", len(newRecords)).
		Msg("Completed deduplication filtering")

	return attack.SortRecordsChronologically(newRecords)
}

// ConvertRecordsToRows converts attack records into spreadsheet row format
func (p *AttackRecordsProcessor) ConvertRecordsToRows(records []app.AttackRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))

	for _, record := range records {
		rows = append(rows, []interface{}{
			record.Order,
			record.Direction,
			record.AttackerTag,
			record.AttackerName,
			record.AttackerTH,
			record.AttackerMapPos,
			record.DefenderTag,
			record.DefenderName,
			record.DefenderTH,
			record.DefenderMapPos,
			record.Stars,
			fmt.Sprintf("%.2f", record.Destruction),
			record.Fresh,
		})
	}

	return rows
}
