package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"torn_flight_board/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	FlightLogURL          string
	TornAPIKey            string
	ListenAddr            string
	Location              *time.Location
	AllowedOrigins        []string
	NameCacheTTL          time.Duration
	NameLookupConcurrency int
	SpreadsheetID         string
	BoardSheetName        string
	CredentialsFile       string
	DeployURL             string
	DeployKeyFile         string
	DeployKnownHosts      string
	UpdateInterval        time.Duration
}

// ResolvesNames reports whether an operator key for the Torn API is configured
func (c *Config) ResolvesNames() bool {
	return c.TornAPIKey != ""
}

// PublishesSheet reports whether the board should be mirrored to Google Sheets
func (c *Config) PublishesSheet() bool {
	return c.SpreadsheetID != ""
}

// PublishesSnapshot reports whether the board should be uploaded over SCP
func (c *Config) PublishesSnapshot() bool {
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
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	case "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		level, parseErr := zerolog.ParseLevel(levelStr)
		if parseErr != nil {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
		} else {
			zerolog.SetGlobalLevel(level)
		}
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
	flightLogURL := os.Getenv("FLIGHTLOG_URL")
	if flightLogURL == "" {
		return nil, fmt.Errorf("FLIGHTLOG_URL environment variable is required")
	}

	timezone := getEnvDefault("TIMEZONE", "UTC")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", timezone, err)
	}

	cacheTTL := config.NameCacheTTL
	if raw := os.Getenv("NAME_CACHE_TTL"); raw != "" {
		cacheTTL, err = time.ParseDuration(raw)
		if err != nil || cacheTTL <= 0 {
			return nil, fmt.Errorf("invalid NAME_CACHE_TTL %q: must be a positive duration", raw)
		}
	}

	concurrency := config.NameLookupConcurrency
	if raw := os.Getenv("NAME_LOOKUP_CONCURRENCY"); raw != "" {
		concurrency, err = strconv.Atoi(raw)
		if err != nil || concurrency < 1 {
			return nil, fmt.Errorf("invalid NAME_LOOKUP_CONCURRENCY %q: must be a positive integer", raw)
		}
	}

	return &Config{
		FlightLogURL:          flightLogURL,
		TornAPIKey:            os.Getenv("TORN_API_KEY"),
		ListenAddr:            getEnvDefault("LISTEN_ADDR", ":8090"),
		Location:              location,
		AllowedOrigins:        splitList(getEnvDefault("CORS_ALLOWED_ORIGINS", "*")),
		NameCacheTTL:          cacheTTL,
		NameLookupConcurrency: concurrency,
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		BoardSheetName:        getEnvDefault("BOARD_SHEET_NAME", "Flight Board"),
		CredentialsFile:       getEnvDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		DeployURL:             os.Getenv("DEPLOY_URL"),
		DeployKeyFile:         getEnvDefault("DEPLOY_KEY_FILE", "deploy.pem"),
		DeployKnownHosts:      os.Getenv("DEPLOY_KNOWN_HOSTS"),
		UpdateInterval:        config.DefaultRefreshInterval,
	}, nil
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
