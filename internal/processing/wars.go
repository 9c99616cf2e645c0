package processing

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"coc_war_stats/internal/app"
	"coc_war_stats/internal/coc"
	"coc_war_stats/internal/domain/attack"
	"coc_war_stats/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// WarProcessor runs one polling cycle: it fetches the clan's war data, exports it to
// Google Sheets and publishes a JSON report
type WarProcessor struct {
	clashClient    ClashClientInterface
	resolver       war.WarResolver
	sheetsClient   SheetsClientInterface
	attackService  AttackProcessingServiceInterface
	summaryService WarSummaryServiceInterface
	deployer       DeployerInterface
	endedWars      EndedWarCache
	tracker        *APICallTracker
	config         *app.Config
	now            func() time.Time
}

// CycleResult is what one polling cycle saw, with its estimate of the next cycle's API calls
type CycleResult struct {
	CurrentWar     *war.ClanWar
	LeagueWar      *war.ClanWar
	LeagueRound    []war.WarResult
	WarLog         []app.WarLogRecord
	Summaries      []*app.WarSummary
	NextCheck      time.Duration
	PredictedCalls int64
}

// ActiveWar returns the war that drives the polling cadence: the current war, or the
// clan's league war while the current war endpoint reports no war
func (r *CycleResult) ActiveWar() *war.ClanWar {
	if war.PhaseOf(r.CurrentWar) != war.PhaseIdle {
		return r.CurrentWar
	}
	return r.LeagueWar
}

// NewWarProcessor creates a WarProcessor with interface dependencies for testability.
// sheetsClient and deployer may be nil to disable that output.
func NewWarProcessor(
	clashClient ClashClientInterface,
	resolver war.WarResolver,
	sheetsClient SheetsClientInterface,
	attackService AttackProcessingServiceInterface,
	summaryService WarSummaryServiceInterface,
	deployer DeployerInterface,
	tracker *APICallTracker,
	config *app.Config,
) *WarProcessor {
	if tracker == nil {
		tracker = NewAPICallTracker()
	}
	return &WarProcessor{
		clashClient:    clashClient,
		resolver:       resolver,
		sheetsClient:   sheetsClient,
		attackService:  attackService,
		summaryService: summaryService,
		deployer:       deployer,
		tracker:        tracker,
		config:         config,
		now:            time.Now,
	}
}

// NewWarProcessorWithCache wires the default services around a cached client, which
// also serves as the league war resolver
func NewWarProcessorWithCache(cached *CachedWarClient, sheetsClient SheetsClientInterface, deployer DeployerInterface, config *app.Config) *WarProcessor {
	wp := NewWarProcessor(
		cached,
		cached,
		sheetsClient,
		attack.NewAttackProcessingService(),
		NewWarSummaryService(),
		deployer,
		cached.tracker,
		config,
	)
	wp.endedWars = cached
	return wp
}

// ProcessCycle fetches the current war, the league round in battle day and the war log,
// then exports whatever was fetched. A failing step is logged and the cycle moves on; an
// error is only returned when no data could be fetched at all or ctx is done.
func (wp *WarProcessor) ProcessCycle(ctx context.Context) (*CycleResult, error) {
	log.Info().Str("clan_tag", wp.config.ClanTag).Msg("Processing war cycle")
	wp.tracker.ResetSession()

	result := &CycleResult{}
	var fetchErrs []error

	current, err := wp.fetchCurrentWar(ctx)
	if err != nil {
		fetchErrs = append(fetchErrs, err)
		wp.logFetchError(err, "current war")
	}
	result.CurrentWar = current

	round, leagueWar, err := wp.fetchLeagueRound(ctx)
	if err != nil {
		fetchErrs = append(fetchErrs, err)
		wp.logFetchError(err, "league round")
	}
	result.LeagueRound = round
	result.LeagueWar = leagueWar

	warLog, err := wp.fetchWarLog(ctx)
	if err != nil {
		fetchErrs = append(fetchErrs, err)
		wp.logFetchError(err, "war log")
	}
	result.WarLog = warLog

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("war cycle interrupted: %w", ctxErr)
	}

	for _, w := range wp.trackedWars(result) {
		summary, err := wp.processWar(ctx, w)
		if err != nil {
			log.Error().
				Err(err).
				Str("war_key", WarKey(w)).
				Msg("Failed to export war")
		}
		if summary != nil {
			result.Summaries = append(result.Summaries, summary)
		}
	}

	if result.WarLog != nil && wp.sheetsEnabled() {
		if err := wp.sheetsClient.UpdateWarLog(ctx, wp.config.SpreadsheetID, result.WarLog); err != nil {
			log.Error().Err(err).Msg("Failed to update war log sheet")
		}
	}

	result.NextCheck = war.NextCheckDelay(result.ActiveWar(), wp.now(), wp.config.UpdateInterval)
	result.PredictedCalls = wp.tracker.PredictCallsForNextCycle(war.PhaseOf(result.ActiveWar()), wp.uncachedLeagueWars(result.LeagueRound))

	if err := wp.exportAndDeployReport(result); err != nil {
		log.Error().Err(err).Msg("Failed to publish war report")
	}

	wp.tracker.LogSessionSummary(ctx)
	log.Info().
		Str("phase", war.PhaseOf(result.ActiveWar()).String()).
		Int("wars_exported", len(result.Summaries)).
		Dur("next_check", result.NextCheck).
		Int64("predicted_calls", result.PredictedCalls).
		Msg("Completed war cycle")

	if len(fetchErrs) == 3 {
		return result, fmt.Errorf("failed to fetch any war data: %w", errors.Join(fetchErrs...))
	}
	return result, nil
}

// uncachedLeagueWars counts the round wars the next cycle has to fetch again. Without a
// cache every war counts.
func (wp *WarProcessor) uncachedLeagueWars(round []war.WarResult) int {
	uncached := 0
	for _, r := range round {
		if wp.endedWars == nil || !wp.endedWars.IsCachedFinal(r.WarTag) {
			uncached++
		}
	}
	return uncached
}

// fetchCurrentWar returns nil without error when the clan is not in a war
func (wp *WarProcessor) fetchCurrentWar(ctx context.Context) (*war.ClanWar, error) {
	data, err := wp.clashClient.GetClanWar(ctx, wp.config.ClanTag)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current war: %w", err)
	}

	w, err := war.NewClanWar(data, wp.config.ClanTag)
	if err != nil {
		return nil, fmt.Errorf("failed to build current war: %w", err)
	}

	log.Debug().
		Str("state", w.State).
		Str("opponent", w.Opponent.Name).
		Msg("Fetched current war")
	return w, nil
}

// fetchLeagueRound resolves every war of the round in battle day and picks out the
// clan's own war. A clan outside Clan War League gets a 404, which is not an error.
func (wp *WarProcessor) fetchLeagueRound(ctx context.Context) ([]war.WarResult, *war.ClanWar, error) {
	data, err := wp.clashClient.GetLeagueGroup(ctx, wp.config.ClanTag)
	if err != nil {
		if coc.IsNotFound(err) {
			log.Debug().Msg("Clan is not in a league group")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to fetch league group: %w", err)
	}

	group, err := war.NewClanWarLeagueGroup(data, wp.resolver)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build league group: %w", err)
	}

	wars, err := group.GetWars(war.DefaultRoundIndex, true, OrientedWarConstructor(wp.config.ClanTag))
	if err != nil {
		if errors.Is(err, war.ErrRoundIndexOutOfRange) {
			log.Debug().Str("state", group.State).Msg("No league round visible yet")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to select league round: %w", err)
	}

	results := wars.Collect(ctx, wp.config.LeagueParallelism)

	var own *war.ClanWar
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Warn().
				Err(r.Err).
				Str("war_tag", r.WarTag).
				Msg("Failed to resolve league war")
			continue
		}
		if r.War.Clan.Tag == wp.config.ClanTag {
			own = r.War
		}
	}

	log.Debug().
		Str("season", group.Season).
		Int("wars", len(results)).
		Int("failed", failed).
		Bool("own_war_found", own != nil).
		Msg("Resolved league round")

	return results, own, nil
}

// fetchWarLog returns nil without error when the clan's war log is private
func (wp *WarProcessor) fetchWarLog(ctx context.Context) ([]app.WarLogRecord, error) {
	data, err := wp.clashClient.GetWarLog(ctx, wp.config.ClanTag)
	if err != nil {
		if coc.IsAccessDenied(err) {
			log.Warn().Msg("War log is private - skipping")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch war log: %w", err)
	}
	return ConvertWarLog(war.NewClanWarLog(data)), nil
}

// trackedWars returns the wars to export, deduplicated by war key
func (wp *WarProcessor) trackedWars(result *CycleResult) []*war.ClanWar {
	seen := make(map[string]bool)
	var wars []*war.ClanWar
	for _, w := range []*war.ClanWar{result.CurrentWar, result.LeagueWar} {
		if war.PhaseOf(w) == war.PhaseIdle {
			continue
		}
		key := WarKey(w)
		if seen[key] {
			continue
		}
		seen[key] = true
		wars = append(wars, w)
	}
	return wars
}

// processWar summarizes one war and writes it to the sheets when enabled
func (wp *WarProcessor) processWar(ctx context.Context, w *war.ClanWar) (*app.WarSummary, error) {
	records := wp.attackService.ProcessAttacksIntoRecords(w)
	summary := wp.summaryService.GenerateWarSummary(w, records)

	log.Info().
		Str("war_key", summary.WarKey).
		Str("state", w.State).
		Str("type", summary.Type).
		Int("attacks", len(records)).
		Msg("Processing war")

	if !wp.sheetsEnabled() {
		return summary, nil
	}

	sheetConfig, err := wp.sheetsClient.EnsureWarSheets(ctx, wp.config.SpreadsheetID, summary.WarKey)
	if err != nil {
		return summary, fmt.Errorf("failed to ensure war sheets: %w", err)
	}

	if err := wp.sheetsClient.UpdateWarSummary(ctx, wp.config.SpreadsheetID, sheetConfig, summary); err != nil {
		return summary, fmt.Errorf("failed to update war summary: %w", err)
	}

	if err := wp.sheetsClient.UpdateAttackRecords(ctx, wp.config.SpreadsheetID, sheetConfig, records); err != nil {
		return summary, fmt.Errorf("failed to update attack records: %w", err)
	}

	return summary, nil
}

func (wp *WarProcessor) sheetsEnabled() bool {
	return wp.sheetsClient != nil && wp.config.SheetsEnabled()
}

func (wp *WarProcessor) logFetchError(err error, what string) {
	event := log.Error().Err(err).Str("step", what)
	var apiErr *coc.APIError
	if errors.As(err, &apiErr) {
		event = event.Int("status_code", apiErr.StatusCode).Str("reason", apiErr.Reason)
	}
	event.Msg("Failed to fetch war data")
}

// OrientedWarConstructor builds league wars so that clanTag is always the home side.
// League wars come back in the API's own order, so the sides are exchanged in the raw
// snapshot before the war is built. Wars clanTag is not part of are built unchanged.
func OrientedWarConstructor(clanTag string) war.WarConstructor {
	return func(data app.Data, _ string) (*war.ClanWar, error) {
		if data != nil && data.Object("opponent").String("tag") == clanTag && clanTag != "" {
			oriented := maps.Clone(data)
			oriented["clan"], oriented["opponent"] = data["opponent"], data["clan"]
			data = oriented
		}
		return war.NewClanWar(data, "")
	}
}
