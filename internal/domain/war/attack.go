package war

import (
	"fmt"

	"coc_war_stats/internal/app"
)

// WarAttack is a single recorded attack in a war.
// Order is assigned by the game and shared by both sides, so it is unique within a war.
type WarAttack struct {
	Stars       int
	Destruction float64
	Order       int
	AttackerTag string
	DefenderTag string

	war *ClanWar
}

func newWarAttack(data app.Data, war *ClanWar) *WarAttack {
	return &WarAttack{
		Stars:       data.Int("stars"),
		Destruction: data.Float("destructionPercentage"),
		Order:       data.Int("order"),
		AttackerTag: data.String("attackerTag"),
		DefenderTag: data.String("defenderTag"),
		war:         war,
	}
}

// War returns the war this attack belongs to
func (a *WarAttack) War() *ClanWar {
	return a.war
}

// Attacker returns the attacking member, or nil if the tag is not on either roster
func (a *WarAttack) Attacker() *ClanWarMember {
	if a.war == nil {
		return nil
	}
	return a.war.GetMember(a.AttackerTag)
}

// Defender returns the defending member, or nil if the tag is not on either roster
func (a *WarAttack) Defender() *ClanWarMember {
	if a.war == nil {
		return nil
	}
	return a.war.GetMember(a.DefenderTag)
}

// IsFreshAttack reports whether this was the first attack landed on its defender,
// i.e. it has the lowest order among all attacks the defender received.
func (a *WarAttack) IsFreshAttack() (bool, error) {
	defender := a.Defender()
	if defender == nil {
		return false, fmt.Errorf("defender %s: %w", a.DefenderTag, ErrMemberNotFound)
	}

	defenses := defender.Defenses()
	if len(defenses) == 1 {
		return true, nil
	}
	if len(defenses) == 0 {
		return false, nil
	}

	first := defenses[0].Order
	for _, defense := range defenses[1:] {
		first = min(first, defense.Order)
	}
	return first == a.Order, nil
}

func (a *WarAttack) String() string {
	return fmt.Sprintf("WarAttack{order=%d attacker=%s defender=%s stars=%d destruction=%.2f}",
		a.Order, a.AttackerTag, a.DefenderTag, a.Stars, a.Destruction)
}
