package war

// MemberFilter is one criterion for ClanWar.GetMemberBy
type MemberFilter func(member *ClanWarMember) bool

// ByTag matches a member tag
func ByTag(tag string) MemberFilter {
	return func(m *ClanWarMember) bool { return m.Tag == tag }
}

// ByName matches a member name
func ByName(name string) MemberFilter {
	return func(m *ClanWarMember) bool { return m.Name == name }
}

// ByMapPosition matches a member's map position
func ByMapPosition(position int) MemberFilter {
	return func(m *ClanWarMember) bool { return m.MapPosition == position }
}

// ByTownHall matches a member's town hall level
func ByTownHall(level int) MemberFilter {
	return func(m *ClanWarMember) bool { return m.TownHall == level }
}

// ByOpponent matches members of the opponent side (true) or the home side (false)
func ByOpponent(isOpponent bool) MemberFilter {
	return func(m *ClanWarMember) bool { return m.IsOpponent == isOpponent }
}

func matchesAll(member *ClanWarMember, filters []MemberFilter) bool {
	for _, filter := range filters {
		if !filter(member) {
			return false
		}
	}
	return true
}
