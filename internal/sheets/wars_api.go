package sheets

import (
	"context"

	"coc_war_stats/internal/app"
)

// War-related API functions that use the infrastructure layer
// These functions delegate to the specialized managers for actual business logic

// EnsureWarSheets creates summary and records sheets for a war if they don't exist
func (c *Client) EnsureWarSheets(ctx context.Context, spreadsheetID, warKey string) (*app.SheetConfig, error) {
	manager := NewWarSheetsManager(c)
	return manager.EnsureWarSheets(ctx, spreadsheetID, warKey)
}

// UpdateWarSummary updates the summary sheet with current war statistics
func (c *Client) UpdateWarSummary(ctx context.Context, spreadsheetID string, config *app.SheetConfig, summary *app.WarSummary) error {
	manager := NewWarSheetsManager(c)
	return manager.UpdateWarSummary(ctx, spreadsheetID, config, summary)
}

// ReadExistingRecords analyzes existing attack records in the sheet
func (c *Client) ReadExistingRecords(ctx context.Context, spreadsheetID, sheetName string) (*RecordsInfo, error) {
	processor := NewAttackRecordsProcessor(c)
	return processor.ReadExistingRecords(ctx, spreadsheetID, sheetName)
}

// UpdateAttackRecords appends new attack records to the war's records sheet
func (c *Client) UpdateAttackRecords(ctx context.Context, spreadsheetID string, config *app.SheetConfig, records []app.AttackRecord) error {
	processor := NewAttackRecordsProcessor(c)
	return processor.UpdateAttackRecords(ctx, spreadsheetID, config, records)
}

// UpdateWarLog rewrites the war log sheet with the latest entries
func (c *Client) UpdateWarLog(ctx context.Context, spreadsheetID string, records []app.WarLogRecord) error {
	manager := NewWarLogManager(c)
	return manager.UpdateWarLog(ctx, spreadsheetID, records)
}
