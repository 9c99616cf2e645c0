package processing

import (
	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"
)

// ConvertWarLog flattens war log entries into sheet and report records, newest first as
// the API returns them. League season entries carry no opponent.
func ConvertWarLog(entries []*war.ClanWarLogEntry) []app.WarLogRecord {
	records := make([]app.WarLogRecord, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}

		record := app.WarLogRecord{
			EndTime:  entry.EndTime,
			Result:   entry.Result,
			TeamSize: entry.TeamSize,
			League:   entry.IsLeagueEntry(),
		}
		if entry.Clan != nil {
			record.ClanStars = entry.Clan.Stars
			record.ClanDestruction = entry.Clan.Destruction
			record.ExpEarned = entry.Clan.ExpEarned
		}
		if entry.Opponent != nil {
			record.OpponentTag = entry.Opponent.Tag
			record.OpponentName = entry.Opponent.Name
			record.OpponentStars = entry.Opponent.Stars
			record.OpponentDestruction = entry.Opponent.Destruction
		}
		records = append(records, record)
	}
	return records
}
