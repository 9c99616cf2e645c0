package processing

import (
	"fmt"
	"strings"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/attack"
	"coc_war_stats/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// warKeyTimeLayout keeps keys of back-to-back friendly wars distinct
const warKeyTimeLayout = "20060102-1504"

// WarSummaryService handles war summary generation and statistics calculation
type WarSummaryService struct {
	now func() time.Time
}

// NewWarSummaryService creates a new war summary service
func NewWarSummaryService() *WarSummaryService {
	return &WarSummaryService{now: time.Now}
}

// WarKey identifies a war across polling cycles. League wars use their war tag; other
// wars use the home clan tag and the preparation start.
func WarKey(w *war.ClanWar) string {
	if w.WarTag != "" {
		return strings.TrimPrefix(w.WarTag, "#")
	}
	return fmt.Sprintf("%s-%s",
		strings.TrimPrefix(w.ClanTag, "#"),
		w.PreparationStartTime.UTC().Format(warKeyTimeLayout))
}

// GenerateWarSummary creates a summary of the war from the home clan's point of view.
// records are the war's attack records and provide the fresh and three star counts.
func (wss *WarSummaryService) GenerateWarSummary(w *war.ClanWar, records []app.AttackRecord) *app.WarSummary {
	if w == nil {
		return nil
	}

	summary := &app.WarSummary{
		WarKey:      WarKey(w),
		WarTag:      w.WarTag,
		State:       w.State,
		Type:        string(w.Type()),
		Status:      string(w.Status()),
		TeamSize:    w.TeamSize,
		PrepStart:   w.PreparationStartTime,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		LastUpdated: wss.now(),
	}

	summary.Clan = wss.sideSummary(w.Clan, attack.CalculateAttackStatistics(records, attack.DirectionOutgoing))
	summary.Opponent = wss.sideSummary(w.Opponent, attack.CalculateAttackStatistics(records, attack.DirectionIncoming))

	log.Debug().
		Str("war_key", summary.WarKey).
		Str("status", summary.Status).
		Int("clan_stars", summary.Clan.Stars).
		Int("opponent_stars", summary.Opponent.Stars).
		Msg("Generated war summary")

	return summary
}

// sideSummary prefers the API's side totals and falls back to the record totals when
// the API has not counted attacks yet
func (wss *WarSummaryService) sideSummary(side *war.WarClan, stats attack.AttackStatistics) app.SideSummary {
	attacksUsed := side.AttackCount
	if attacksUsed == 0 {
		attacksUsed = stats.TotalAttacks
	}

	return app.SideSummary{
		Tag:          side.Tag,
		Name:         side.Name,
		Stars:        side.Stars,
		Destruction:  side.Destruction,
		AttacksUsed:  attacksUsed,
		FreshAttacks: stats.FreshAttacks,
		ThreeStars:   stats.ThreeStars,
	}
}
