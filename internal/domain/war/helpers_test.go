package war

import (
	"context"
	"errors"
	"sync"
	"time"

	"coc_war_stats/internal/app"
)

// testAttack describes one attack for building war snapshots in tests
type testAttack struct {
	attacker    string
	defender    string
	stars       int
	destruction float64
	order       int
}

// warSnapshot builds the JSON-shaped data the API would return for a war. Members are
// generated as "<prefix><n>" with map position n; attacks are attached to their attacker.
func warSnapshot(state string, homeSize, awaySize int, attacks []testAttack) app.Data {
	home := sideSnapshot("#2PP", "Home", "#H", homeSize, attacks)
	away := sideSnapshot("#8QU", "Away", "#A", awaySize, attacks)

	return app.Data{
		"state":                state,
		"teamSize":             float64(max(homeSize, awaySize)),
		"preparationStartTime": "20240301T080000.000Z",
		"startTime":            "20240302T080000.000Z",
		"endTime":              "20240303T080000.000Z",
		"clan":                 map[string]interface{}(home),
		"opponent":             map[string]interface{}(away),
	}
}

func sideSnapshot(tag, name, prefix string, size int, attacks []testAttack) app.Data {
	var members []interface{}
	stars := 0
	destruction := 0.0
	for pos := size; pos >= 1; pos-- { // reverse roster order to exercise sorting
		memberTag := memberTag(prefix, pos)
		var memberAttacks []interface{}
		for _, a := range attacks {
			if a.attacker != memberTag {
				continue
			}
			memberAttacks = append(memberAttacks, map[string]interface{}{
				"attackerTag":           a.attacker,
				"defenderTag":           a.defender,
				"stars":                 float64(a.stars),
				"destructionPercentage": a.destruction,
				"order":                 float64(a.order),
			})
			stars += a.stars
			destruction += a.destruction
		}
		members = append(members, map[string]interface{}{
			"tag":           memberTag,
			"name":          name + " member",
			"townhallLevel": float64(10 + pos%5),
			"mapPosition":   float64(pos),
			"attacks":       memberAttacks,
		})
	}

	return app.Data{
		"tag":                   tag,
		"name":                  name,
		"clanLevel":             float64(12),
		"stars":                 float64(stars),
		"destructionPercentage": destruction / float64(max(size, 1)),
		"attacks":               float64(countAttacksBy(prefix, attacks)),
		"members":               members,
	}
}

func memberTag(prefix string, pos int) string {
	return prefix + string(rune('0'+pos/10)) + string(rune('0'+pos%10))
}

func countAttacksBy(prefix string, attacks []testAttack) int {
	n := 0
	for _, a := range attacks {
		if len(a.attacker) >= len(prefix) && a.attacker[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// scoredWar builds a war with fixed side totals and no members
func scoredWar(state string, homeStars int, homeDestruction float64, awayStars int, awayDestruction float64) *ClanWar {
	w, _ := NewClanWar(app.Data{
		"state": state,
		"clan": map[string]interface{}{
			"tag":                   "#2PP",
			"stars":                 float64(homeStars),
			"destructionPercentage": homeDestruction,
		},
		"opponent": map[string]interface{}{
			"tag":                   "#8QU",
			"stars":                 float64(awayStars),
			"destructionPercentage": awayDestruction,
		},
	}, "")
	return w
}

// fakeResolver resolves league wars from an in-memory map and records every call
type fakeResolver struct {
	mu    sync.Mutex
	wars  map[string]app.Data
	calls []string
	cache []bool
	delay time.Duration
}

var errUnknownWarTag = errors.New("unknown war tag")

func (r *fakeResolver) ResolveLeagueWar(ctx context.Context, warTag string, cache bool, ctor WarConstructor) (*ClanWar, error) {
	r.mu.Lock()
	r.calls = append(r.calls, warTag)
	r.cache = append(r.cache, cache)
	data, ok := r.wars[warTag]
	r.mu.Unlock()

	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if !ok {
		return nil, errUnknownWarTag
	}
	return ctor(data, "")
}

func leagueWarData(warTag, homeTag, awayTag string) app.Data {
	return app.Data{
		"state": StateInWar,
		"tag":   warTag,
		"clan":  map[string]interface{}{"tag": homeTag},
		"opponent": map[string]interface{}{
			"tag": awayTag,
		},
	}
}
