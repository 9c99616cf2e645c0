package war

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"coc_war_stats/internal/app"
)

// War states reported by the API
const (
	StatePreparation = "preparation"
	StateInWar       = "inWar"
	StateWarEnded    = "warEnded"
	StateNotInWar    = "notInWar"
)

// WarType classifies how a war was matched
type WarType string

const (
	WarTypeUnknown  WarType = ""
	WarTypeCWL      WarType = "cwl"
	WarTypeFriendly WarType = "friendly"
	WarTypeRandom   WarType = "random"
)

// WarStatus is the outcome of a war from the home clan's point of view
type WarStatus string

const (
	StatusNone    WarStatus = ""
	StatusWinning WarStatus = "winning"
	StatusTied    WarStatus = "tied"
	StatusLosing  WarStatus = "losing"
	StatusWon     WarStatus = "won"
	StatusTie     WarStatus = "tie"
	StatusLost    WarStatus = "lost"
)

// friendlyPreparationWindows are the preparation lengths a friendly war can be set up with.
// Matchmade wars never land on one of these exactly.
var friendlyPreparationWindows = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	1 * time.Hour,
	2 * time.Hour,
	4 * time.Hour,
	6 * time.Hour,
	8 * time.Hour,
	12 * time.Hour,
	16 * time.Hour,
	20 * time.Hour,
	24 * time.Hour,
}

// timestampLayout is the API's compact ISO-8601 form, e.g. 20240301T081500.000Z
const timestampLayout = "20060102T150405.000Z"

// ParseTimestamp parses an API timestamp. Empty or malformed input yields the zero time.
func ParseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatTimestamp renders t in the API's timestamp layout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// WarConstructor builds a war from a snapshot. clanTag names the clan the war was
// requested for and may be empty for league wars fetched by war tag.
type WarConstructor func(data app.Data, clanTag string) (*ClanWar, error)

// ClanWar is an immutable snapshot of one war between two clans
type ClanWar struct {
	State                string
	PreparationStartTime time.Time
	StartTime            time.Time
	EndTime              time.Time
	TeamSize             int
	WarTag               string
	ClanTag              string

	Clan     *WarClan
	Opponent *WarClan

	defenses map[string][]*WarAttack
}

// NewClanWar builds a war from snapshot data. It satisfies WarConstructor.
func NewClanWar(data app.Data, clanTag string) (*ClanWar, error) {
	if data == nil {
		return nil, errors.New("war data is nil")
	}

	w := &ClanWar{
		State:                data.String("state"),
		TeamSize:             data.Int("teamSize"),
		PreparationStartTime: ParseTimestamp(data.String("preparationStartTime")),
		StartTime:            ParseTimestamp(data.String("startTime")),
		EndTime:              ParseTimestamp(data.String("endTime")),
		WarTag:               data.String("tag"),
	}

	// sides need the war pointer, the defenses index needs both sides
	w.Clan = newWarClan(data.Object("clan"), w, false)
	w.Opponent = newWarClan(data.Object("opponent"), w, true)
	w.indexDefenses()

	w.ClanTag = clanTag
	if w.Clan.Tag != "" {
		w.ClanTag = w.Clan.Tag
	}

	return w, nil
}

func (w *ClanWar) indexDefenses() {
	w.defenses = make(map[string][]*WarAttack)
	for _, side := range []*WarClan{w.Clan, w.Opponent} {
		for _, attack := range side.Attacks() {
			w.defenses[attack.DefenderTag] = append(w.defenses[attack.DefenderTag], attack)
		}
	}
	for _, received := range w.defenses {
		sort.Slice(received, func(i, j int) bool {
			return received[i].Order < received[j].Order
		})
	}
}

// Attacks returns every attack in the war, most recent (highest order) first
func (w *ClanWar) Attacks() []*WarAttack {
	attacks := append(w.Clan.Attacks(), w.Opponent.Attacks()...)
	sort.Slice(attacks, func(i, j int) bool {
		return attacks[i].Order > attacks[j].Order
	})
	return attacks
}

// Members returns every participant: home side first, each side ascending by map position
func (w *ClanWar) Members() []*ClanWarMember {
	members := make([]*ClanWarMember, 0, len(w.Clan.members)+len(w.Opponent.members))
	members = append(members, w.Clan.members...)
	members = append(members, w.Opponent.members...)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].IsOpponent != members[j].IsOpponent {
			return !members[i].IsOpponent
		}
		return members[i].MapPosition < members[j].MapPosition
	})
	return members
}

// Type classifies the war as cwl, friendly or random. Returns WarTypeUnknown when the
// battle day start is not known yet.
func (w *ClanWar) Type() WarType {
	if w.WarTag != "" {
		return WarTypeCWL
	}
	if w.StartTime.IsZero() {
		return WarTypeUnknown
	}

	preparation := w.StartTime.Sub(w.PreparationStartTime)
	if slices.Contains(friendlyPreparationWindows, preparation) {
		return WarTypeFriendly
	}
	return WarTypeRandom
}

// IsCWL reports whether this is a Clan War League war
func (w *ClanWar) IsCWL() bool {
	return w.Type() == WarTypeCWL
}

// Status returns the war outcome from the home clan's side:
//
//	inWar:    winning / tied / losing
//	warEnded: won / tie / lost
//
// Stars decide first, destruction breaks a star tie. Any other state yields StatusNone.
func (w *ClanWar) Status() WarStatus {
	var ahead, level, behind WarStatus
	switch w.State {
	case StateInWar:
		ahead, level, behind = StatusWinning, StatusTied, StatusLosing
	case StateWarEnded:
		ahead, level, behind = StatusWon, StatusTie, StatusLost
	default:
		return StatusNone
	}

	switch compareScore(w.Clan.Stars, w.Clan.Destruction, w.Opponent.Stars, w.Opponent.Destruction) {
	case 1:
		return ahead
	case 0:
		return level
	}
	return behind
}

// GetMember returns the member with the given tag, searching the home side first.
// Returns nil if neither side has the tag.
func (w *ClanWar) GetMember(tag string) *ClanWarMember {
	if member := w.Clan.GetMember(tag); member != nil {
		return member
	}
	return w.Opponent.GetMember(tag)
}

// GetMemberBy returns the first member, in Members() order, matching every filter.
// Returns nil if none match.
func (w *ClanWar) GetMemberBy(filters ...MemberFilter) *ClanWarMember {
	for _, member := range w.Members() {
		if matchesAll(member, filters) {
			return member
		}
	}
	return nil
}

// GetAttack returns the attack attackerTag made on defenderTag, or nil
func (w *ClanWar) GetAttack(attackerTag, defenderTag string) *WarAttack {
	attacker := w.GetMember(attackerTag)
	if attacker == nil || len(attacker.Attacks) == 0 {
		return nil
	}

	for _, attack := range attacker.Attacks {
		if attack.DefenderTag == defenderTag {
			return attack
		}
	}
	return nil
}

func (w *ClanWar) String() string {
	return fmt.Sprintf("ClanWar{clan=%s opponent=%s state=%s war_tag=%s}",
		w.Clan.Tag, w.Opponent.Tag, w.State, w.WarTag)
}
