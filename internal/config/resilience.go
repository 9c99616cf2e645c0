package config

import "time"

// Retry configuration constants
const (
	// API Request retry configuration
	APIRequestMaxAttempts       = 3
	APIRequestInitialWait       = 1 * time.Second
	APIRequestMaxWait           = 16 * time.Second
	APIRequestBackoffMultiplier = 2.0
	APIRequestTimeout           = 30 * time.Second

	// API request throttling, the developer keys allow short bursts
	APIRequestInterval = 100 * time.Millisecond
	APIRequestBurst    = 5

	// Sheet Read retry configuration
	SheetReadMaxAttempts       = 3
	SheetReadInitialWait       = 500 * time.Millisecond
	SheetReadMaxWait           = 5 * time.Second
	SheetReadBackoffMultiplier = 2.0
	SheetReadTimeout           = 30 * time.Second

	// Sheet Write retry configuration
	SheetWriteMaxAttempts       = 3
	SheetWriteInitialWait       = 1 * time.Second
	SheetWriteMaxWait           = 10 * time.Second
	SheetWriteBackoffMultiplier = 2.0
	SheetWriteTimeout           = 30 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	Timeout     time.Duration
}

// Backoff returns how long to wait after the given failed attempt (1-based),
// growing by Multiplier from InitialWait and capped at MaxWait.
func (rc RetryConfig) Backoff(attempt int) time.Duration {
	wait := float64(rc.InitialWait)
	for i := 1; i < attempt; i++ {
		wait *= rc.Multiplier
		if time.Duration(wait) >= rc.MaxWait {
			return rc.MaxWait
		}
	}
	return min(time.Duration(wait), rc.MaxWait)
}

// RateConfig defines client side request throttling
type RateConfig struct {
	Interval time.Duration
	Burst    int
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	APIRequest RetryConfig
	APIRate    RateConfig
	SheetRead  RetryConfig
	SheetWrite RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	APIRequest: RetryConfig{
		MaxAttempts: APIRequestMaxAttempts,
		InitialWait: APIRequestInitialWait,
		MaxWait:     APIRequestMaxWait,
		Multiplier:  APIRequestBackoffMultiplier,
		Timeout:     APIRequestTimeout,
	},
	APIRate: RateConfig{
		Interval: APIRequestInterval,
		Burst:    APIRequestBurst,
	},
	SheetRead: RetryConfig{
		MaxAttempts: SheetReadMaxAttempts,
		InitialWait: SheetReadInitialWait,
		MaxWait:     SheetReadMaxWait,
		Multiplier:  SheetReadBackoffMultiplier,
		Timeout:     SheetReadTimeout,
	},
	SheetWrite: RetryConfig{
		MaxAttempts: SheetWriteMaxAttempts,
		InitialWait: SheetWriteInitialWait,
		MaxWait:     SheetWriteMaxWait,
		Multiplier:  SheetWriteBackoffMultiplier,
		Timeout:     SheetWriteTimeout,
	},
}
