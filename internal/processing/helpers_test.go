package processing

import (
	"fmt"
	"testing"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"
)

const (
	ourTag   = "#2PP"
	theirTag = "#8QU"
)

// hit is one attack in a test war: home is true when the clan under "clan" attacked
type hit struct {
	home     bool
	attacker int
	defender int
	stars    int
	percent  float64
	order    int
}

func testConfig(t *testing.T) *app.Config {
	t.Helper()
	return &app.Config{
		ClanTag:           ourTag,
		SpreadsheetID:     "sheet-123",
		LeagueParallelism: 2,
		UpdateInterval:    5 * time.Minute,
		ReportDir:         t.TempDir(),
	}
}

func sideData(tag string, prefix string, home bool, size int, hits []hit) map[string]interface{} {
	otherPrefix := "#A"
	if prefix == "#A" {
		otherPrefix = "#H"
	}

	stars, attacks := 0, 0
	members := make([]interface{}, 0, size)
	for pos := 1; pos <= size; pos++ {
		memberTag := fmt.Sprintf("%s%02d", prefix, pos)
		var memberAttacks []interface{}
		for _, h := range hits {
			if h.home != home || h.attacker != pos {
				continue
			}
			memberAttacks = append(memberAttacks, map[string]interface{}{
				"attackerTag":           memberTag,
				"defenderTag":           fmt.Sprintf("%s%02d", otherPrefix, h.defender),
				"stars":                 float64(h.stars),
				"destructionPercentage": h.percent,
				"order":                 float64(h.order),
			})
			stars += h.stars
			attacks++
		}
		members = append(members, map[string]interface{}{
			"tag":           memberTag,
			"name":          "Player " + memberTag,
			"townhallLevel": float64(14),
			"mapPosition":   float64(pos),
			"attacks":       memberAttacks,
		})
	}

	return map[string]interface{}{
		"tag":                   tag,
		"name":                  "Clan " + tag,
		"stars":                 float64(stars),
		"destructionPercentage": float64(stars) * 10,
		"attacks":               float64(attacks),
		"members":               members,
	}
}

// warData builds a two-a-side war snapshot between homeTag and awayTag
func warData(state, warTag, homeTag, awayTag string, hits []hit) app.Data {
	data := app.Data{
		"state":                state,
		"teamSize":             float64(2),
		"preparationStartTime": "20240301T090000.000Z",
		"startTime":            "20240302T080000.000Z",
		"endTime":              "20240303T080000.000Z",
		"clan":                 sideData(homeTag, "#H", true, 2, hits),
		"opponent":             sideData(awayTag, "#A", false, 2, hits),
	}
	if warTag != "" {
		data["tag"] = warTag
	}
	return data
}

func mustWar(t *testing.T, data app.Data) *war.ClanWar {
	t.Helper()
	w, err := war.NewClanWar(data, "")
	if err != nil {
		t.Fatalf("Failed to build war: %v", err)
	}
	return w
}

func leagueGroupData(rounds ...[]string) app.Data {
	raw := make([]interface{}, 0, len(rounds))
	for _, tags := range rounds {
		warTags := make([]interface{}, 0, len(tags))
		for _, tag := range tags {
			warTags = append(warTags, tag)
		}
		raw = append(raw, map[string]interface{}{"warTags": warTags})
	}
	return app.Data{
		"state":  "inWar",
		"season": "2024-03",
		"rounds": raw,
		"clans": []interface{}{
			map[string]interface{}{"tag": ourTag, "name": "Home"},
			map[string]interface{}{"tag": theirTag, "name": "Away"},
		},
	}
}

func warLogData() app.Data {
	return app.Data{
		"items": []interface{}{
			map[string]interface{}{
				"result":   "win",
				"endTime":  "20240220T080000.000Z",
				"teamSize": float64(15),
				"clan": map[string]interface{}{
					"tag":                   ourTag,
					"stars":                 float64(40),
					"destructionPercentage": 91.5,
					"expEarned":             float64(210),
				},
				"opponent": map[string]interface{}{
					"tag":                   theirTag,
					"name":                  "Away",
					"stars":                 float64(33),
					"destructionPercentage": 80.25,
				},
			},
			map[string]interface{}{
				"endTime":  "20240210T080000.000Z",
				"teamSize": float64(15),
				"clan": map[string]interface{}{
					"tag":       ourTag,
					"stars":     float64(150),
					"expEarned": float64(500),
				},
				"opponent": map[string]interface{}{},
			},
		},
	}
}
