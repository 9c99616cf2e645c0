package mocks

import (
	"context"
	"fmt"

	"coc_war_stats/internal/app"
)

// MockSheetsClient is a test double for the sheets.Client
type MockSheetsClient struct {
	// Errors to return
	EnsureWarSheetsError     error
	UpdateWarSummaryError    error
	UpdateAttackRecordsError error
	UpdateWarLogError        error

	// Call tracking
	EnsuredWarKeys       []string
	Summaries            []*app.WarSummary
	AttackRecordsByWar   map[string][]app.AttackRecord
	WarLogRecords        []app.WarLogRecord
	UpdateWarLogCalled   bool
	CalledSpreadsheetIDs []string
}

// NewMockSheetsClient creates a new mock sheets client
func NewMockSheetsClient() *MockSheetsClient {
	return &MockSheetsClient{
		AttackRecordsByWar: make(map[string][]app.AttackRecord),
	}
}

func (m *MockSheetsClient) EnsureWarSheets(ctx context.Context, spreadsheetID, warKey string) (*app.SheetConfig, error) {
	m.CalledSpreadsheetIDs = append(m.CalledSpreadsheetIDs, spreadsheetID)
	m.EnsuredWarKeys = append(m.EnsuredWarKeys, warKey)
	if m.EnsureWarSheetsError != nil {
		return nil, m.EnsureWarSheetsError
	}
	return &app.SheetConfig{
		WarKey:         warKey,
		SummaryTabName: fmt.Sprintf("Summary - %s", warKey),
		RecordsTabName: fmt.Sprintf("Records - %s", warKey),
		SpreadsheetID:  spreadsheetID,
	}, nil
}

func (m *MockSheetsClient) UpdateWarSummary(ctx context.Context, spreadsheetID string, config *app.SheetConfig, summary *app.WarSummary) error {
	m.Summaries = append(m.Summaries, summary)
	return m.UpdateWarSummaryError
}

func (m *MockSheetsClient) UpdateAttackRecords(ctx context.Context, spreadsheetID string, config *app.SheetConfig, records []app.AttackRecord) error {
	if m.AttackRecordsByWar == nil {
		m.AttackRecordsByWar = make(map[string][]app.AttackRecord)
	}
	m.AttackRecordsByWar[config.WarKey] = records
	return m.UpdateAttackRecordsError
}

func (m *MockSheetsClient) UpdateWarLog(ctx context.Context, spreadsheetID string, records []app.WarLogRecord) error {
	m.UpdateWarLogCalled = true
	m.WarLogRecords = records
	return m.UpdateWarLogError
}
