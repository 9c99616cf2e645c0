package attack

import (
	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// Attack directions from the home clan's point of view
const (
	DirectionOutgoing = "Outgoing"
	DirectionIncoming = "Incoming"
	DirectionUnknown  = "Unknown"
)

// AttackProcessingService converts a war's attacks into flat records for export,
// resolving both participants and the attack direction.
type AttackProcessingService struct {
}

// NewAttackProcessingService creates a new attack processing service
func NewAttackProcessingService() *AttackProcessingService {
	return &AttackProcessingService{}
}

// ProcessAttacksIntoRecords converts every attack of the war into a record, oldest first
func (aps *AttackProcessingService) ProcessAttacksIntoRecords(w *war.ClanWar) []app.AttackRecord {
	if w == nil {
		return nil
	}

	attacks := w.Attacks()
	records := make([]app.AttackRecord, 0, len(attacks))
	unresolved := 0

	for _, a := range attacks {
		record := app.AttackRecord{
			Order:       a.Order,
			AttackerTag: a.AttackerTag,
			DefenderTag: a.DefenderTag,
			Stars:       a.Stars,
			Destruction: a.Destruction,
			Direction:   aps.determineAttackDirection(a),
		}

		if attacker := a.Attacker(); attacker != nil {
			record.AttackerName = attacker.Name
			record.AttackerTH = attacker.TownHall
			record.AttackerMapPos = attacker.MapPosition
		}
		if defender := a.Defender(); defender != nil {
			record.DefenderName = defender.Name
			record.DefenderTH = defender.TownHall
			record.DefenderMapPos = defender.MapPosition
		}

		fresh, err := a.IsFreshAttack()
		if err != nil {
			unresolved++
		}
		record.Fresh = fresh

		records = append(records, record)
	}

	log.Debug().
		Str("war", w.String()).
		Int("total_attacks", len(attacks)).
		Int("records_created", len(records)).
		Int("unresolved_defenders", unresolved).
		Msg("Processed attacks into records")

	return SortRecordsChronologically(records)
}

// determineAttackDirection reports whether the attack was made by or against the home clan
func (aps *AttackProcessingService) determineAttackDirection(a *war.WarAttack) string {
	if attacker := a.Attacker(); attacker != nil {
		if isHomeSide(attacker) {
			return DirectionOutgoing
		}
		return DirectionIncoming
	}
	if defender := a.Defender(); defender != nil {
		if isHomeSide(defender) {
			return DirectionIncoming
		}
		return DirectionOutgoing
	}
	return DirectionUnknown
}

// isHomeSide reports whether the member fights for the home clan of its war
func isHomeSide(m *war.ClanWarMember) bool {
	side := m.Clan()
	if side == nil {
		return !m.IsOpponent
	}
	if w := side.War(); w != nil {
		return w.Clan == side
	}
	return !side.IsOpponent
}
