package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source selects which spreadsheet endpoint a deployment reads. The three
// are mutually exclusive per deployment.
const (
	SourceCSV  = "csv"
	SourceXLSX = "xlsx"
	SourceAPI  = "api"
)

type Config struct {
	Env  string
	Port string

	// Source selection
	SheetsSource     string
	CSVExportURL     string
	XLSXPublishedURL string
	SpreadsheetID    string
	CredentialsFile  string
	FetchTimeout     time.Duration

	// Cache
	CacheTTL             time.Duration
	RefreshWorkerEnabled bool

	// Aggregation
	TimelineGranularity string

	// Chat assistant
	OpenRouterURL    string
	OpenRouterAPIKey string
	OpenRouterModels []string
	ChatTimeout      time.Duration

	// Session verification (empty secret disables auth, dev mode)
	SessionSecret   string
	SessionIssuer   string
	SessionAudience string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		SheetsSource:     getEnv("SHEETS_SOURCE", SourceCSV),
		CSVExportURL:     getEnv("SHEETS_CSV_URL", ""),
		XLSXPublishedURL: getEnv("SHEETS_XLSX_URL", ""),
		SpreadsheetID:    getEnv("SHEETS_SPREADSHEET_ID", ""),
		CredentialsFile:  getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
		FetchTimeout:     getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

		CacheTTL:             getEnvDuration("CACHE_TTL", 60*time.Second),
		RefreshWorkerEnabled: getEnvBool("REFRESH_WORKER_ENABLED", false),

		TimelineGranularity: getEnv("TIMELINE_GRANULARITY", "month"),

		OpenRouterURL:    getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterAPIKey: getSecret("OPENROUTER_API_KEY", "OPENROUTER_API_KEY_FILE", ""),
		OpenRouterModels: getEnvList("OPENROUTER_MODELS", []string{
			"moonshotai/kimi-k2:free",
			"moonshotai/kimi-k2",
			"meta-llama/llama-3.2-3b-instruct:free",
		}),
		ChatTimeout: getEnvDuration("CHAT_TIMEOUT", 30*time.Second),

		SessionSecret:   getSecret("SESSION_SECRET", "SESSION_SECRET_FILE", ""),
		SessionIssuer:   getEnv("SESSION_ISSUER", "ticket-dashboard"),
		SessionAudience: getEnv("SESSION_AUDIENCE", "ticket-dashboard"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
