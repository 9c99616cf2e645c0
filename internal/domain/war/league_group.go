package war

import (
	"fmt"
	"sync"

	"coc_war_stats/internal/app"
)

// PlaceholderWarTag fills the war tag slots of league rounds that have not started
const PlaceholderWarTag = "#0"

// DefaultRoundIndex selects the round currently in battle day. The last visible round is
// normally the one in preparation, so the active one sits second from the end.
const DefaultRoundIndex = -2

// ClanWarLeagueGroup is a Clan War League group: the clans in it and the war tags of
// each round. Immutable after construction apart from the memoized clan list.
type ClanWarLeagueGroup struct {
	State          string
	Season         string
	NumberOfRounds int
	// Rounds holds the war tags of rounds that have started. Future rounds filled with
	// placeholder tags are dropped, so len(Rounds) can be less than NumberOfRounds.
	Rounds [][]string

	resolver  WarResolver
	clanData  []app.Data
	clansOnce sync.Once
	clans     []*ClanWarLeagueClan
}

// NewClanWarLeagueGroup builds a league group from snapshot data. resolver is used by
// GetWars to materialize the wars of a round and may be nil if wars are never requested.
func NewClanWarLeagueGroup(data app.Data, resolver WarResolver) (*ClanWarLeagueGroup, error) {
	if !data.Has("rounds") {
		return nil, ErrMissingRounds
	}

	rounds := data.Objects("rounds")
	group := &ClanWarLeagueGroup{
		State:          data.String("state"),
		Season:         data.String("season"),
		NumberOfRounds: len(rounds),
		Rounds:         make([][]string, 0, len(rounds)),
		resolver:       resolver,
		clanData:       data.Objects("clans"),
	}

	for i, round := range rounds {
		tags := round.Strings("warTags")
		if len(tags) == 0 {
			return nil, fmt.Errorf("round %d has no war tags: %w", i, ErrMissingRounds)
		}
		// only the first slot is checked; the API fills a pending round uniformly
		if tags[0] == PlaceholderWarTag {
			continue
		}
		group.Rounds = append(group.Rounds, tags)
	}

	return group, nil
}

// Clans returns the participating clans. The list is built on first call and the same
// slice is returned afterwards.
func (g *ClanWarLeagueGroup) Clans() []*ClanWarLeagueClan {
	g.clansOnce.Do(func() {
		clans := make([]*ClanWarLeagueClan, 0, len(g.clanData))
		for _, cd := range g.clanData {
			clans = append(clans, newClanWarLeagueClan(cd))
		}
		g.clans = clans
	})
	return g.clans
}

// GetWars returns an iterator over the wars of one round.
//
// roundIndex indexes the visible Rounds and may be negative to count from the end;
// DefaultRoundIndex is the round in battle day. On the first day of a league only one
// round is visible, so any index reaching further back than -1 resolves to that round.
// cache is passed through to the resolver; a nil ctor means NewClanWar.
func (g *ClanWarLeagueGroup) GetWars(roundIndex int, cache bool, ctor WarConstructor) (*LeagueWarIterator, error) {
	if g.resolver == nil {
		return nil, ErrNoResolver
	}

	if len(g.Rounds) == 1 && (roundIndex > 1 || roundIndex < -1) {
		roundIndex = -1
	}

	idx := roundIndex
	if idx < 0 {
		idx += len(g.Rounds)
	}
	if idx < 0 || idx >= len(g.Rounds) {
		return nil, fmt.Errorf("round %d with %d visible rounds: %w", roundIndex, len(g.Rounds), ErrRoundIndexOutOfRange)
	}

	if ctor == nil {
		ctor = NewClanWar
	}

	return newLeagueWarIterator(g.resolver, g.Rounds[idx], cache, ctor), nil
}

// ClanWarLeagueClan is a clan taking part in a league group
type ClanWarLeagueClan struct {
	Tag     string
	Name    string
	Level   int
	Members []ClanWarLeagueClanMember
}

// ClanWarLeagueClanMember is an entry on a league clan's season roster
type ClanWarLeagueClanMember struct {
	Tag      string
	Name     string
	TownHall int
}

func newClanWarLeagueClan(data app.Data) *ClanWarLeagueClan {
	clan := &ClanWarLeagueClan{
		Tag:   data.String("tag"),
		Name:  data.String("name"),
		Level: data.Int("clanLevel"),
	}

	for _, md := range data.Objects("members") {
		townHall := md.Int("townHallLevel")
		if townHall == 0 {
			townHall = md.Int("townhallLevel")
		}
		clan.Members = append(clan.Members, ClanWarLeagueClanMember{
			Tag:      md.String("tag"),
			Name:     md.String("name"),
			TownHall: townHall,
		})
	}

	return clan
}
