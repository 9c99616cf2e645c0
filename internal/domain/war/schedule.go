package war

import "time"

// Polling cadence per war phase
const (
	PreparationUpdateInterval = 15 * time.Minute
	BattleUpdateInterval      = 2 * time.Minute
	MinCheckDelay             = 30 * time.Second

	// BattleStartCheckOffset wakes the poller just before battle day opens
	BattleStartCheckOffset = -1 * time.Minute
)

// Phase is where a clan sits in the war cycle, used to pick how often to poll
type Phase int

const (
	// PhaseIdle means the clan is not in a war
	PhaseIdle Phase = iota
	// PhasePreparation means a war is matched and battle day has not started
	PhasePreparation
	// PhaseBattle means attacks are being made
	PhaseBattle
	// PhaseEnded means the last war is over and its result is final
	PhaseEnded
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePreparation:
		return "Preparation"
	case PhaseBattle:
		return "Battle"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// PhaseOf maps a war's state to its phase. A nil war is idle.
func PhaseOf(w *ClanWar) Phase {
	if w == nil {
		return PhaseIdle
	}
	switch w.State {
	case StatePreparation:
		return PhasePreparation
	case StateInWar:
		return PhaseBattle
	case StateWarEnded:
		return PhaseEnded
	default:
		return PhaseIdle
	}
}

// NextCheckDelay decides how long to wait before polling again.
// Preparation waits until just before battle day but never longer than
// PreparationUpdateInterval; battle day polls every BattleUpdateInterval; idle and ended
// wars use fallback.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func NextCheckDelay(w *ClanWar, now time.Time, fallback time.Duration) time.Duration {
	switch PhaseOf(w) {
	case PhasePreparation:
		delay := PreparationUpdateInterval
		if !w.StartTime.IsZero() {
			untilStart := w.StartTime.Add(BattleStartCheckOffset).Sub(now)
			delay = min(delay, untilStart)
		}
		return max(delay, MinCheckDelay)
	case PhaseBattle:
		return min(BattleUpdateInterval, max(fallback, MinCheckDelay))
	default:
		return max(fallback, MinCheckDelay)
	}
}
