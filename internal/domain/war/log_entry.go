package war

import (
	"time"

	"coc_war_stats/internal/app"
)

// War log results
const (
	ResultWin  = "win"
	ResultLose = "lose"
	ResultTie  = "tie"
)

// ClanWarLogEntry is a finished war from a clan's war log.
//
// Sides are only partially filled by the API. For a league season entry the totals are
// summed over the whole season, Result is empty and Opponent is nil.
type ClanWarLogEntry struct {
	Result   string
	EndTime  time.Time
	TeamSize int
	Clan     *WarClan
	Opponent *WarClan
}

// NewClanWarLogEntry builds a war log entry from snapshot data
func NewClanWarLogEntry(data app.Data) *ClanWarLogEntry {
	entry := &ClanWarLogEntry{
		Result:   data.String("result"),
		EndTime:  ParseTimestamp(data.String("endTime")),
		TeamSize: data.Int("teamSize"),
	}
	entry.Clan = loadLogSide(data.Object("clan"), false)
	entry.Opponent = loadLogSide(data.Object("opponent"), true)
	return entry
}

// league season opponents carry only badges, no tag
func loadLogSide(data app.Data, isOpponent bool) *WarClan {
	if data == nil || data.String("tag") == "" {
		return nil
	}
	return newWarClan(data, nil, isOpponent)
}

// IsLeagueEntry reports whether the entry summarizes a Clan War League season
func (e *ClanWarLogEntry) IsLeagueEntry() bool {
	return e.Result == ""
}

// NewClanWarLog builds entries from a war log response's "items" list
func NewClanWarLog(data app.Data) []*ClanWarLogEntry {
	items := data.Objects("items")
	entries := make([]*ClanWarLogEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, NewClanWarLogEntry(item))
	}
	return entries
}
