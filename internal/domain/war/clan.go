package war

import (
	"coc_war_stats/internal/app"
)

// WarClan is one side of a war. War log entries only fill the totals; members and
// attacks are present only for wars fetched directly.
type WarClan struct {
	Tag         string
	Name        string
	Level       int
	Stars       int
	Destruction float64
	AttackCount int
	ExpEarned   int
	IsOpponent  bool

	members     []*ClanWarMember
	memberIndex map[string]*ClanWarMember
	war         *ClanWar
}

func newWarClan(data app.Data, war *ClanWar, isOpponent bool) *WarClan {
	clan := &WarClan{
		Tag:         data.String("tag"),
		Name:        data.String("name"),
		Level:       data.Int("clanLevel"),
		Stars:       data.Int("stars"),
		Destruction: data.Float("destructionPercentage"),
		AttackCount: data.Int("attacks"),
		ExpEarned:   data.Int("expEarned"),
		IsOpponent:  isOpponent,
		war:         war,
	}

	memberData := data.Objects("members")
	clan.members = make([]*ClanWarMember, 0, len(memberData))
	clan.memberIndex = make(map[string]*ClanWarMember, len(memberData))
	for _, md := range memberData {
		member := newClanWarMember(md, clan)
		clan.members = append(clan.members, member)
		clan.memberIndex[member.Tag] = member
	}

	return clan
}

// War returns the war this side belongs to; nil for war log entries
func (c *WarClan) War() *ClanWar {
	return c.war
}

// Members returns the side's members in roster order
func (c *WarClan) Members() []*ClanWarMember {
	return c.members
}

// Attacks returns every attack made by this side's members
func (c *WarClan) Attacks() []*WarAttack {
	var attacks []*WarAttack
	for _, member := range c.members {
		attacks = append(attacks, member.Attacks...)
	}
	return attacks
}

// GetMember returns the member with the given tag, or nil
func (c *WarClan) GetMember(tag string) *ClanWarMember {
	return c.memberIndex[tag]
}

// ClanWarMember is a participant on one side of a war
type ClanWarMember struct {
	Tag             string
	Name            string
	TownHall        int
	MapPosition     int
	IsOpponent      bool
	OpponentAttacks int
	Attacks         []*WarAttack

	clan *WarClan
}

func newClanWarMember(data app.Data, clan *WarClan) *ClanWarMember {
	member := &ClanWarMember{
		Tag:             data.String("tag"),
		Name:            data.String("name"),
		TownHall:        data.Int("townhallLevel"),
		MapPosition:     data.Int("mapPosition"),
		IsOpponent:      clan.IsOpponent,
		OpponentAttacks: data.Int("opponentAttacks"),
		clan:            clan,
	}

	for _, ad := range data.Objects("attacks") {
		member.Attacks = append(member.Attacks, newWarAttack(ad, clan.war))
	}

	return member
}

// Clan returns the side this member fights for
func (m *ClanWarMember) Clan() *WarClan {
	return m.clan
}

// Defenses returns the attacks this member received, ascending by order
func (m *ClanWarMember) Defenses() []*WarAttack {
	if m.clan == nil || m.clan.war == nil {
		return nil
	}
	return m.clan.war.defenses[m.Tag]
}

// BestOpponentAttack returns the received attack with the most stars, breaking ties on
// destruction and then on the earlier order. Returns nil if the member was never attacked.
func (m *ClanWarMember) BestOpponentAttack() *WarAttack {
	var best *WarAttack
	for _, defense := range m.Defenses() {
		if best == nil || compareScore(defense.Stars, defense.Destruction, best.Stars, best.Destruction) > 0 {
			best = defense
		}
	}
	return best
}

// compareScore orders two (stars, destruction) pairs: stars first, then destruction.
// Returns 1 when a is ahead, -1 when b is ahead and 0 on an exact tie.
func compareScore(aStars int, aDestruction float64, bStars int, bDestruction float64) int {
	switch {
	case aStars > bStars:
		return 1
	case aStars < bStars:
		return -1
	case aDestruction > bDestruction:
		return 1
	case aDestruction < bDestruction:
		return -1
	}
	return 0
}
