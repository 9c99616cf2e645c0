package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultAPIBaseURL is the public Clash of Clans API endpoint
const DefaultAPIBaseURL = "https://api.clashofclans.com/v1"

// Config holds application configuration
type Config struct {
	APIToken          string
	APIBaseURL        string
	ClanTag           string
	SpreadsheetID     string
	CredentialsFile   string
	DeployURL         string
	DeployKeyFile     string
	KnownHostsFile    string
	ReportDir         string
	LeagueParallelism int
	UpdateInterval    time.Duration
}

// SheetsEnabled reports whether war reports should be written to Google Sheets
func (c *Config) SheetsEnabled() bool {
	return c.SpreadsheetID != ""
}

// DeployEnabled reports whether the JSON report should be uploaded after each cycle
func (c *Config) DeployEnabled() bool {
	return c.DeployURL != ""
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	token := os.Getenv("COC_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("COC_API_TOKEN environment variable is required")
	}

	clanTag := NormalizeTag(os.Getenv("CLAN_TAG"))
	if clanTag == "" {
		return nil, fmt.Errorf("CLAN_TAG environment variable is required")
	}

	baseURL := os.Getenv("COC_API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	reportDir := os.Getenv("REPORT_DIR")
	if reportDir == "" {
		reportDir = "."
	}

	parallelism := 1
	if raw := os.Getenv("LEAGUE_PARALLELISM"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LEAGUE_PARALLELISM must be a positive integer, got %q", raw)
		}
		parallelism = n
	}

	return &Config{
		APIToken:          token,
		APIBaseURL:        strings.TrimRight(baseURL, "/"),
		ClanTag:           clanTag,
		SpreadsheetID:     os.Getenv("SPREADSHEET_ID"),
		CredentialsFile:   credentialsFile,
		DeployURL:         os.Getenv("DEPLOY_URL"),
		DeployKeyFile:     os.Getenv("DEPLOY_KEY_FILE"),
		KnownHostsFile:    os.Getenv("DEPLOY_KNOWN_HOSTS"),
		ReportDir:         reportDir,
		LeagueParallelism: parallelism,
	}, nil
}

// NormalizeTag upper-cases a player or clan tag and ensures the leading '#'
func NormalizeTag(tag string) string {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	tag = strings.ReplaceAll(tag, "O", "0")
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}
