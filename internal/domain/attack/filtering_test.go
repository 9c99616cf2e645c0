package attack

import (
	"testing"

	"coc_war_stats/internal/app"
)

func TestFilterRecordsAfter(t *testing.T) {
	records := []app.AttackRecord{{Order: 1}, {Order: 2}, {Order: 3}, {Order: 4}}

	testCases := []struct {
		name      string
		lastOrder int
		expected  int
	}{
		{"nothing written yet", 0, 4},
		{"partially written", 2, 2},
		{"fully written", 4, 0},
		{"written past known orders", 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := FilterRecordsAfter(records, tc.lastOrder)
			if len(result) != tc.expected {
				t.Errorf("Expected %d records, got %d", tc.expected, len(result))
			}
			for _, record := range result {
				if record.Order <= tc.lastOrder {
					t.Errorf("Record with order %d should have been filtered", record.Order)
				}
			}
		})
	}
}

func TestFilterRecordsByDirection(t *testing.T) {
	records := []app.AttackRecord{
		{Order: 1, Direction: DirectionOutgoing},
		{Order: 2, Direction: DirectionIncoming},
		{Order: 3, Direction: DirectionOutgoing},
	}

	if got := FilterRecordsByDirection(records, DirectionOutgoing); len(got) != 2 {
		t.Errorf("Expected 2 outgoing records, got %d", len(got))
	}
	if got := FilterRecordsByDirection(records, DirectionUnknown); len(got) != 0 {
		t.Errorf("Expected no unknown records, got %d", len(got))
	}
}

func TestLastOrder(t *testing.T) {
	if got := LastOrder(nil); got != 0 {
		t.Errorf("Expected 0 for no records, got %d", got)
	}
	if got := LastOrder([]app.AttackRecord{{Order: 5}, {Order: 9}, {Order: 2}}); got != 9 {
		t.Errorf("Expected 9, got %d", got)
	}
}
