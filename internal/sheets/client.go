package sheets

import (
	"context"
	"fmt"

	"coc_war_stats/internal/config"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements the SheetsAPI interface using Google Sheets API.
// Reads and writes are retried with the SheetRead and SheetWrite policies.
type Client struct {
	service    *sheets.Service
	resilience config.ResilienceConfig
}

// NewClient creates a new Google Sheets client with the provided credentials
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:    service,
		resilience: config.DefaultResilienceConfig,
	}, nil
}

// ReadSheet reads values from the specified sheet range.
// Wrap returned values with NewCell() for type-safe access.
func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	var values [][]interface{}
	err := withRetry(ctx, c.resilience.SheetRead, "read_sheet", func(ctx context.Context) error {
		resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
		if err != nil {
			return err
		}
		values = resp.Values
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return values, nil
}

// UpdateRange updates the specified sheet range with the provided values
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	err := withRetry(ctx, c.resilience.SheetWrite, "update_range", func(ctx context.Context) error {
		_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update range: %w", err)
	}

	return nil
}

// ClearRange clears all values in the specified sheet range
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	err := withRetry(ctx, c.resilience.SheetWrite, "clear_range", func(ctx context.Context) error {
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, range_, &sheets.ClearValuesRequest{}).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}

	return nil
}

// AppendRows appends rows after the last row with data in the specified range
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, range_ string, rows [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: rows,
	}

	err := withRetry(ctx, c.resilience.SheetWrite, "append_rows", func(ctx context.Context) error {
		_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, range_, valueRange).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}

	return nil
}

// CreateSheet creates a new sheet with the specified name
func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: sheetName,
				},
			},
		}},
	}

	err := withRetry(ctx, c.resilience.SheetWrite, "create_sheet", func(ctx context.Context) error {
		_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}

	return nil
}

// SheetExists checks if a sheet with the given name exists in the spreadsheet
func (c *Client) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	sheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return false, err
	}
	return sheet != nil, nil
}

func (c *Client) findSheet(ctx context.Context, spreadsheetID, sheetName string) (*sheets.Sheet, error) {
	var spreadsheet *sheets.Spreadsheet
	err := withRetry(ctx, c.resilience.SheetRead, "get_spreadsheet", func(ctx context.Context) error {
		var err error
		spreadsheet, err = c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return sheet, nil
		}
	}
	return nil, nil
}

// EnsureSheetCapacity ensures the sheet has at least the required number of rows and columns.
// Automatically adds a buffer for future growth.
func (c *Client) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	targetSheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	if targetSheet == nil {
		return fmt.Errorf("sheet %s not found", sheetName)
	}

	currentRows := int(targetSheet.Properties.GridProperties.RowCount)
	currentCols := int(targetSheet.Properties.GridProperties.ColumnCount)

	newRows, newCols, needsResize := planCapacity(currentRows, currentCols, requiredRows, requiredCols)
	if !needsResize {
		return nil
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int("current_rows", currentRows).
		Int("current_cols", currentCols).
		Int("new_rows", newRows).
		Int("new_cols", newCols).
		Msg("Expanding sheet capacity")

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: targetSheet.Properties.SheetId,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(newRows),
						ColumnCount: int64(newCols),
					},
				},
				Fields: "gridProperties.rowCount,gridProperties.columnCount",
			},
		}},
	}

	err = withRetry(ctx, c.resilience.SheetWrite, "resize_sheet", func(ctx context.Context) error {
		_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to resize sheet %s: %w", sheetName, err)
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("new_rows", newRows).
		Int("new_cols", newCols).
		Msg("Successfully expanded sheet capacity")

	return nil
}

// planCapacity decides the new grid size, padding rows and columns so small
// appends do not resize the sheet every cycle.
func planCapacity(currentRows, currentCols, requiredRows, requiredCols int) (int, int, bool) {
	newRows, newCols := currentRows, currentCols
	needsResize := false

	if requiredRows > currentRows {
		newRows = requiredRows + 100
		needsResize = true
	}
	if requiredCols > currentCols {
		newCols = requiredCols + 10
		needsResize = true
	}

	return newRows, newCols, needsResize
}
