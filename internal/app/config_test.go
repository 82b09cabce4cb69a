package app

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var configEnvKeys = []string{
	"FLIGHTLOG_URL", "TORN_API_KEY", "LISTEN_ADDR", "TIMEZONE",
	"CORS_ALLOWED_ORIGINS", "NAME_CACHE_TTL", "NAME_LOOKUP_CONCURRENCY",
	"SPREADSHEET_ID", "BOARD_SHEET_NAME", "GOOGLE_CREDENTIALS_FILE",
	"DEPLOY_URL", "DEPLOY_KEY_FILE", "DEPLOY_KNOWN_HOSTS",
}

// clearConfigEnv blanks every variable LoadConfig reads; t.Setenv restores them afterwards
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("ValidConfiguration", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("FLIGHTLOG_URL", "http://localhost:8080/flightlog")
		t.Setenv("TORN_API_KEY", "test_api_key")
		t.Setenv("SPREADSHEET_ID", "test_spreadsheet_id")
		t.Setenv("GOOGLE_CREDENTIALS_FILE", "test_credentials.json")
		t.Setenv("TIMEZONE", "America/New_York")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
		t.Setenv("NAME_CACHE_TTL", "10m")
		t.Setenv("NAME_LOOKUP_CONCURRENCY", "3")
		t.Setenv("DEPLOY_URL", "deploy@host:/var/www")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.FlightLogURL != "http://localhost:8080/flightlog" {
			t.Errorf("Expected FlightLogURL to be set, got '%s'", config.FlightLogURL)
		}
		if config.TornAPIKey != "test_api_key" || !config.ResolvesNames() {
			t.Errorf("Expected TornAPIKey 'test_api_key' and name resolution enabled, got '%s'", config.TornAPIKey)
		}
		if config.SpreadsheetID != "test_spreadsheet_id" || !config.PublishesSheet() {
			t.Errorf("Expected SpreadsheetID 'test_spreadsheet_id', got '%s'", config.SpreadsheetID)
		}
		if config.CredentialsFile != "test_credentials.json" {
			t.Errorf("Expected CredentialsFile 'test_credentials.json', got '%s'", config.CredentialsFile)
		}
		if config.Location.String() != "America/New_York" {
			t.Errorf("Expected location America/New_York, got %s", config.Location)
		}
		if len(config.AllowedOrigins) != 2 || config.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Expected two trimmed origins, got %v", config.AllowedOrigins)
		}
		if config.NameCacheTTL != 10*time.Minute {
			t.Errorf("Expected NameCacheTTL 10m, got %v", config.NameCacheTTL)
		}
		if config.NameLookupConcurrency != 3 {
			t.Errorf("Expected NameLookupConcurrency 3, got %d", config.NameLookupConcurrency)
		}
		if !config.PublishesSnapshot() {
			t.Error("Expected snapshot publishing to be enabled")
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("FLIGHTLOG_URL", "http://localhost:8080/flightlog")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.ResolvesNames() {
			t.Error("Expected name resolution to be disabled without TORN_API_KEY")
		}
		if config.PublishesSheet() || config.PublishesSnapshot() {
			t.Error("Expected publishers to be disabled by default")
		}
		if config.ListenAddr != ":8090" {
			t.Errorf("Expected ListenAddr ':8090', got '%s'", config.ListenAddr)
		}
		if config.Location != time.UTC {
			t.Errorf("Expected UTC location, got %s", config.Location)
		}
		if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
			t.Errorf("Expected wildcard origin, got %v", config.AllowedOrigins)
		}
		if config.BoardSheetName != "Flight Board" {
			t.Errorf("Expected BoardSheetName 'Flight Board', got '%s'", config.BoardSheetName)
		}
		if config.CredentialsFile != "credentials.json" {
			t.Errorf("Expected CredentialsFile to default to 'credentials.json', got '%s'", config.CredentialsFile)
		}
		if config.DeployKeyFile != "deploy.pem" {
			t.Errorf("Expected DeployKeyFile 'deploy.pem', got '%s'", config.DeployKeyFile)
		}
		if config.UpdateInterval != 30*time.Second {
			t.Errorf("Expected UpdateInterval 30s, got %v", config.UpdateInterval)
		}
	})

	t.Run("MissingFlightLogURL", func(t *testing.T) {
		clearConfigEnv(t)

		_, err := LoadConfig()
		if err == nil {
			t.Fatal("Expected error for missing FLIGHTLOG_URL, got nil")
		}
		if !strings.Contains(err.Error(), "FLIGHTLOG_URL") {
			t.Errorf("Expected error message to contain 'FLIGHTLOG_URL', got '%s'", err.Error())
		}
	})

	invalid := []struct {
		name  string
		key   string
		value string
	}{
		{"InvalidTimezone", "TIMEZONE", "Mars/Olympus_Mons"},
		{"InvalidCacheTTL", "NAME_CACHE_TTL", "soon"},
		{"NegativeCacheTTL", "NAME_CACHE_TTL", "-5m"},
		{"InvalidConcurrency", "NAME_LOOKUP_CONCURRENCY", "many"},
		{"ZeroConcurrency", "NAME_LOOKUP_CONCURRENCY", "0"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv("FLIGHTLOG_URL", "http://localhost:8080/flightlog")
			t.Setenv(tc.key, tc.value)

			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.key) {
				t.Errorf("Expected error message to contain '%s', got '%s'", tc.key, err.Error())
			}
		})
	}
}

func TestSetupEnvironment(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	testCases := []struct {
		name          string
		env           string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"ProductionDebug", "production", "debug", zerolog.DebugLevel},
		{"ProductionInfo", "production", "info", zerolog.InfoLevel},
		{"ProductionWarn", "production", "warn", zerolog.WarnLevel},
		{"ProductionWarning", "production", "warning", zerolog.WarnLevel},
		{"ProductionError", "production", "error", zerolog.ErrorLevel},
		{"ProductionDisabled", "production", "disabled", zerolog.Disabled},
		{"ProductionDefault", "production", "", zerolog.WarnLevel},
		{"ProductionUnknown", "production", "unknown", zerolog.InfoLevel},
		{"DevelopmentDebug", "development", "debug", zerolog.DebugLevel},
		{"DevelopmentDefault", "development", "", zerolog.InfoLevel},
		{"DevelopmentUnknown", "", "unknown", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ENV", tc.env)
			t.Setenv("LOGLEVEL", tc.logLevel)

			SetupEnvironment()

			if zerolog.GlobalLevel() != tc.expectedLevel {
				t.Errorf("Expected log level %v, got %v", tc.expectedLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestSetupEnvironmentKeepsExistingVariables(t *testing.T) {
	t.Setenv("FLIGHTLOG_URL", "http://already-set.example/flightlog")

	SetupEnvironment()

	if os.Getenv("FLIGHTLOG_URL") != "http://already-set.example/flightlog" {
		t.Errorf("Expected existing FLIGHTLOG_URL to survive .env loading, got %s", os.Getenv("FLIGHTLOG_URL"))
	}
}
