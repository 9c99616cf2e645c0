package processing

import (
	"context"
	"maps"
	"sync"
	"time"

	"coc_war_stats/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// Endpoint names used for call accounting
const (
	EndpointClanWar     = "GetClanWar"
	EndpointLeagueGroup = "GetLeagueGroup"
	EndpointLeagueWar   = "GetLeagueWar"
	EndpointWarLog      = "GetWarLog"
)

// APICallTracker monitors API call usage per polling cycle
type APICallTracker struct {
	sessionStart    time.Time
	sessionCalls    int64
	totalCalls      int64
	callsByEndpoint map[string]int64
	mutex           sync.RWMutex
}

// NewAPICallTracker creates a new API call tracker
func NewAPICallTracker() *APICallTracker {
	return &APICallTracker{
		sessionStart:    time.Now(),
		callsByEndpoint: make(map[string]int64),
	}
}

// RecordCall records an API call for tracking
func (t *APICallTracker) RecordCall(endpoint string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionCalls++
	t.totalCalls++
	t.callsByEndpoint[endpoint]++
}

// GetSessionStats returns API call statistics for current session
func (t *APICallTracker) GetSessionStats() APICallStats {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	duration := time.Since(t.sessionStart)

	var perMinute float64
	if minutes := duration.Minutes(); minutes > 0 {
		perMinute = float64(t.sessionCalls) / minutes
	}

	return APICallStats{
		SessionCalls:    t.sessionCalls,
		TotalCalls:      t.totalCalls,
		SessionDuration: duration,
		CallsByEndpoint: maps.Clone(t.callsByEndpoint),
		CallsPerMinute:  perMinute,
	}
}

// ResetSession resets session-specific counters
func (t *APICallTracker) ResetSession() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionStart = time.Now()
	t.sessionCalls = 0
	// total calls and the endpoint breakdown are kept across sessions
}

// LogSessionSummary logs a summary of API usage for the session
func (t *APICallTracker) LogSessionSummary(ctx context.Context) {
	stats := t.GetSessionStats()

	logEvent := log.Info().
		Int64("session_calls", stats.SessionCalls).
		Int64("total_calls", stats.TotalCalls).
		Float64("calls_per_minute", stats.CallsPerMinute).
		Dur("session_duration", stats.SessionDuration)

	for endpoint, count := range stats.CallsByEndpoint {
		logEvent = logEvent.Int64(endpoint+"_calls", count)
	}

	logEvent.Msg("API call session summary")
}

// APICallStats represents API call statistics
type APICallStats struct {
	SessionCalls    int64
	TotalCalls      int64
	SessionDuration time.Duration
	CallsByEndpoint map[string]int64
	CallsPerMinute  float64
}

// PredictCallsForNextCycle estimates the API calls of the next cycle: the current war
// and the war log always, plus the league group and one call per round war that is not
// already cached as ended.
func (t *APICallTracker) PredictCallsForNextCycle(phase war.Phase, uncachedLeagueWars int) int64 {
	calls := int64(2)
	if uncachedLeagueWars > 0 || phase == war.PhaseIdle {
		calls += 1 + int64(uncachedLeagueWars)
	}
	return calls
}
