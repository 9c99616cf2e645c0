package processing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// RemoteReportName is the fixed name the report is published under
const RemoteReportName = "war_report.json"

// BuildReport converts a cycle result to the published JSON document
func BuildReport(result *CycleResult, clanTag string, currentTime time.Time, updateInterval time.Duration) app.WarReport {
	report := app.WarReport{
		Clan:     clanTag,
		Updated:  currentTime.UTC().Format(time.RFC3339),
		Interval: int(updateInterval.Seconds()),
		Phase:    war.PhaseOf(result.ActiveWar()).String(),
		WarLog:   result.WarLog,
	}

	for _, summary := range result.Summaries {
		switch {
		case result.LeagueWar != nil && summary.WarTag != "" && summary.WarTag == result.LeagueWar.WarTag:
			report.LeagueWar = summary
		case report.CurrentWar == nil:
			report.CurrentWar = summary
		}
	}

	for _, r := range result.LeagueRound {
		report.LeagueRound = append(report.LeagueRound, roundWar(r))
	}

	return report
}

func roundWar(r war.WarResult) app.RoundWar {
	entry := app.RoundWar{WarTag: r.WarTag}
	if r.Err != nil {
		entry.Error = r.Err.Error()
		return entry
	}
	w := r.War
	entry.State = w.State
	entry.ClanTag = w.Clan.Tag
	entry.ClanName = w.Clan.Name
	entry.ClanStars = w.Clan.Stars
	entry.OpponentTag = w.Opponent.Tag
	entry.OpponentName = w.Opponent.Name
	entry.OpponentStars = w.Opponent.Stars
	return entry
}

// exportAndDeployReport writes the report to the report directory and deploys it
func (wp *WarProcessor) exportAndDeployReport(result *CycleResult) error {
	report := BuildReport(result, wp.config.ClanTag, wp.now(), result.NextCheck)

	jsonBytes, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	dir := wp.config.ReportDir
	if dir == "" {
		dir = "."
	}
	filename := filepath.Join(dir, fmt.Sprintf("war_report_%s.json", strings.TrimPrefix(wp.config.ClanTag, "#")))

	if err := os.WriteFile(filename, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	log.Info().
		Str("filename", filename).
		Str("phase", report.Phase).
		Int("league_round_wars", len(report.LeagueRound)).
		Msg("Successfully exported war report")

	if wp.deployer == nil {
		log.Debug().Msg("No deployer configured - skipping remote deployment")
		return nil
	}

	if err := wp.deployer.DeployFile(filename, RemoteReportName); err != nil {
		return fmt.Errorf("failed to deploy JSON file: %w", err)
	}

	log.Info().
		Str("local_file", filename).
		Str("remote_file", RemoteReportName).
		Msg("Successfully deployed war report")

	return nil
}
