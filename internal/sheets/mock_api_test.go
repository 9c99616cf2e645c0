package sheets

import (
	"context"
	"strings"
)

// MockSheetsAPI implements SheetsAPI for testing
type MockSheetsAPI struct {
	sheets          map[string]bool            // Track which sheets exist
	data            map[string][][]interface{} // Store sheet data
	shouldError     bool
	lastReadRange   string
	lastUpdateRange string
	lastUpdateData  [][]interface{}
	clearedRanges   []string
	capacityRows    map[string]int
}

func NewMockSheetsAPI() *MockSheetsAPI {
	return &MockSheetsAPI{
		sheets:       make(map[string]bool),
		data:         make(map[string][][]interface{}),
		capacityRows: make(map[string]int),
	}
}

// sheetNameOf extracts the sheet name from a range, dropping the quotes
func sheetNameOf(range_ string) string {
	sheetName := range_
	if exclamationIndex := strings.LastIndex(range_, "!"); exclamationIndex != -1 {
		sheetName = range_[:exclamationIndex]
	}
	return strings.Trim(sheetName, "'\"")
}

func (m *MockSheetsAPI) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	if m.shouldError {
		return nil, &mockError{msg: "mock read error"}
	}
	m.lastReadRange = range_

	if data, exists := m.data[sheetNameOf(range_)]; exists {
		return data, nil
	}
	return [][]interface{}{}, nil
}

func (m *MockSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if m.shouldError {
		return &mockError{msg: "mock update error"}
	}
	m.lastUpdateRange = range_
	m.lastUpdateData = values
	m.data[sheetNameOf(range_)] = values
	return nil
}

func (m *MockSheetsAPI) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	if m.shouldError {
		return &mockError{msg: "mock clear error"}
	}
	m.clearedRanges = append(m.clearedRanges, range_)
	delete(m.data, sheetNameOf(range_))
	return nil
}

func (m *MockSheetsAPI) AppendRows(ctx context.Context, spreadsheetID, range_ string, rows [][]interface{}) error {
	if m.shouldError {
		return &mockError{msg: "mock append error"}
	}
	sheetName := sheetNameOf(range_)
	m.data[sheetName] = append(m.data[sheetName], rows...)
	return nil
}

func (m *MockSheetsAPI) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	if m.shouldError {
		return &mockError{msg: "mock create error"}
	}
	m.sheets[sheetName] = true
	return nil
}

func (m *MockSheetsAPI) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	if m.shouldError {
		return false, &mockError{msg: "mock exists error"}
	}
	return m.sheets[sheetName], nil
}

func (m *MockSheetsAPI) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	if m.shouldError {
		return &mockError{msg: "mock capacity error"}
	}
	m.sheets[sheetName] = true
	m.capacityRows[sheetName] = requiredRows
	return nil
}

func (m *MockSheetsAPI) SetError(shouldError bool) {
	m.shouldError = shouldError
}

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
