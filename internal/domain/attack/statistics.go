package attack

import "coc_war_stats/internal/app"

// AttackStatistics holds totals for one direction of attacks in a war
type AttackStatistics struct {
	TotalAttacks     int
	Stars            int
	ThreeStars       int
	FailedAttacks    int
	FreshAttacks     int
	FreshStars       int
	TotalDestruction float64
}

// AverageDestruction returns the mean destruction per attack, or 0 with no attacks
func (s AttackStatistics) AverageDestruction() float64 {
	if s.TotalAttacks == 0 {
		return 0
	}
	return s.TotalDestruction / float64(s.TotalAttacks)
}

// CalculateAttackStatistics computes totals for the records made in the given direction.
// Stars are summed per attack, so repeat hits on the same base count every time; the
// FreshStars total only counts each base's first attack.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func CalculateAttackStatistics(records []app.AttackRecord, direction string) AttackStatistics {
	var stats AttackStatistics

	for _, record := range records {
		if record.Direction != direction {
			continue
		}
		stats = accumulate(stats, record)
	}

	return stats
}

func accumulate(stats AttackStatistics, record app.AttackRecord) AttackStatistics {
	stats.TotalAttacks++
	stats.Stars += record.Stars
	stats.TotalDestruction += record.Destruction

	if IsThreeStar(record.Stars) {
		stats.ThreeStars++
	}
	if IsFailedAttack(record.Stars) {
		stats.FailedAttacks++
	}
	if record.Fresh {
		stats.FreshAttacks++
		stats.FreshStars += record.Stars
	}

	return stats
}
