package app

import "time"

// SheetConfig represents configuration for a war's sheets
type SheetConfig struct {
	WarKey         string
	SummaryTabName string
	RecordsTabName string
	SpreadsheetID  string
}

// SideSummary holds one side's totals in a war summary
type SideSummary struct {
	Tag          string  `json:"tag"`
	Name         string  `json:"name"`
	Stars        int     `json:"stars"`
	Destruction  float64 `json:"destruction"`
	AttacksUsed  int     `json:"attacks_used"`
	FreshAttacks int     `json:"fresh_attacks"`
	ThreeStars   int     `json:"three_stars"`
}

// WarSummary represents aggregated war statistics from the home clan's point of view
type WarSummary struct {
	WarKey      string      `json:"war_key"`
	WarTag      string      `json:"war_tag,omitempty"`
	State       string      `json:"state"`
	Type        string      `json:"type"`
	Status      string      `json:"status"`
	TeamSize    int         `json:"team_size"`
	PrepStart   time.Time   `json:"preparation_start"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Clan        SideSummary `json:"clan"`
	Opponent    SideSummary `json:"opponent"`
	LastUpdated time.Time   `json:"last_updated"`
}

// AttackRecord represents a single attack for the records sheet
type AttackRecord struct {
	Order          int
	Direction      string // "Outgoing" or "Incoming"
	AttackerTag    string
	AttackerName   string
	AttackerTH     int
	AttackerMapPos int
	DefenderTag    string
	DefenderName   string
	DefenderTH     int
	DefenderMapPos int
	Stars          int
	Destruction    float64
	Fresh          bool
}

// WarLogRecord is one finished war from the clan's war log
type WarLogRecord struct {
	EndTime             time.Time `json:"end_time"`
	Result              string    `json:"result"`
	TeamSize            int       `json:"team_size"`
	League              bool      `json:"league"`
	OpponentTag         string    `json:"opponent_tag,omitempty"`
	OpponentName        string    `json:"opponent_name,omitempty"`
	ClanStars           int       `json:"clan_stars"`
	OpponentStars       int       `json:"opponent_stars"`
	ClanDestruction     float64   `json:"clan_destruction"`
	OpponentDestruction float64   `json:"opponent_destruction"`
	ExpEarned           int       `json:"exp_earned"`
}

// WarReport is the JSON document published after every polling cycle
type WarReport struct {
	Clan        string         `json:"clan"`
	Updated     string         `json:"updated"`
	Interval    int            `json:"interval"`
	Phase       string         `json:"phase"`
	CurrentWar  *WarSummary    `json:"current_war,omitempty"`
	LeagueWar   *WarSummary    `json:"league_war,omitempty"`
	LeagueRound []RoundWar     `json:"league_round,omitempty"`
	WarLog      []WarLogRecord `json:"war_log,omitempty"`
}

// RoundWar is one war of the current league round, whether or not the clan is in it
type RoundWar struct {
	WarTag        string `json:"war_tag"`
	State         string `json:"state,omitempty"`
	ClanTag       string `json:"clan_tag,omitempty"`
	ClanName      string `json:"clan_name,omitempty"`
	ClanStars     int    `json:"clan_stars"`
	OpponentTag   string `json:"opponent_tag,omitempty"`
	OpponentName  string `json:"opponent_name,omitempty"`
	OpponentStars int    `json:"opponent_stars"`
	Error         string `json:"error,omitempty"`
}
