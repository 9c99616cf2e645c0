package attack

import "coc_war_stats/internal/app"

// FilterRecordsAfter returns records whose order is greater than lastOrder, so an exporter
// can append only what it has not written yet. A lastOrder of 0 keeps everything.
// Pure function: No I/O, returns new slice without modifying input
func FilterRecordsAfter(records []app.AttackRecord, lastOrder int) []app.AttackRecord {
	var newRecords []app.AttackRecord
	for _, record := range records {
		if record.Order > lastOrder {
			newRecords = append(newRecords, record)
		}
	}
	return newRecords
}

// FilterRecordsByDirection returns the records made in the given direction
func FilterRecordsByDirection(records []app.AttackRecord, direction string) []app.AttackRecord {
	var matching []app.AttackRecord
	for _, record := range records {
		if record.Direction == direction {
			matching = append(matching, record)
		}
	}
	return matching
}

// LastOrder returns the highest attack order among records, or 0 when there are none
func LastOrder(records []app.AttackRecord) int {
	last := 0
	for _, record := range records {
		last = max(last, record.Order)
	}
	return last
}
