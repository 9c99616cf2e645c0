package attack

import (
	"fmt"
	"testing"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"
)

// hit is one attack in a test war: home is true when the home clan attacked
type hit struct {
	home     bool
	attacker int
	defender int
	stars    int
	percent  float64
	order    int
}

func homeTag(pos int) string { return fmt.Sprintf("#H%02d", pos) }
func awayTag(pos int) string { return fmt.Sprintf("#A%02d", pos) }

func side(tag string, home bool, size int, hits []hit) map[string]interface{} {
	members := make([]interface{}, 0, size)
	for pos := 1; pos <= size; pos++ {
		memberTag, targetTag := homeTag(pos), awayTag
		if !home {
			memberTag, targetTag = awayTag(pos), homeTag
		}
		var attacks []interface{}
		for _, h := range hits {
			if h.home != home || h.attacker != pos {
				continue
			}
			attacks = append(attacks, map[string]interface{}{
				"attackerTag":           memberTag,
				"defenderTag":           targetTag(h.defender),
				"stars":                 float64(h.stars),
				"destructionPercentage": h.percent,
				"order":                 float64(h.order),
			})
		}
		members = append(members, map[string]interface{}{
			"tag":           memberTag,
			"name":          fmt.Sprintf("Player %s", memberTag),
			"townhallLevel": float64(12 + pos%3),
			"mapPosition":   float64(pos),
			"attacks":       attacks,
		})
	}
	return map[string]interface{}{"tag": tag, "name": tag, "members": members}
}

func buildWar(t *testing.T, size int, hits []hit) *war.ClanWar {
	t.Helper()
	data := app.Data{
		"state":    war.StateInWar,
		"teamSize": float64(size),
		"clan":     side("#HOME", true, size, hits),
		"opponent": side("#AWAY", false, size, hits),
	}
	w, err := war.NewClanWar(data, "")
	if err != nil {
		t.Fatalf("Failed to build war: %v", err)
	}
	return w
}
