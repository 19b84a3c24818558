package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Fonnte  FonnteConfig
	Sheets  SheetsConfig
	Cache   CacheConfig
	Search  SearchConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// FonnteConfig contains credentials for the Fonnte WhatsApp gateway.
type FonnteConfig struct {
	Token   string
	BaseURL string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReadRange       string
}

// CacheConfig tunes the dataset snapshot lifecycle.
type CacheConfig struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	WarmSchedule string
}

// SearchConfig tunes the matching and pagination behavior.
type SearchConfig struct {
	PageSize       int
	FuzzyThreshold float64
}

// MongoDBConfig holds settings for the optional query audit log. An empty
// URI disables it.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttl, err := parseDurationEnv("STOCK_CACHE_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDurationEnv("SHEETS_FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	pageSize, err := parseIntEnv("SEARCH_PAGE_SIZE", 7)
	if err != nil {
		return nil, err
	}
	fuzzyThreshold, err := parseFloatEnv("SEARCH_FUZZY_THRESHOLD", 0.7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Fonnte: FonnteConfig{
			Token:   os.Getenv("FONNTE_TOKEN"),
			BaseURL: getenvWithDefault("FONNTE_BASE_URL", "https://api.fonnte.com"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			ReadRange:       getenvWithDefault("SHEET_READ_RANGE", "Sheet1"),
		},
		Cache: CacheConfig{
			TTL:          ttl,
			FetchTimeout: fetchTimeout,
			WarmSchedule: getenvWithDefault("CACHE_WARM_SCHEDULE", "*/10 * * * *"),
		},
		Search: SearchConfig{
			PageSize:       pageSize,
			FuzzyThreshold: fuzzyThreshold,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "laden"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Fonnte.Token == "":
		return errors.New("FONNTE_TOKEN must be provided")
	case c.Fonnte.BaseURL == "":
		return errors.New("FONNTE_BASE_URL must not be empty")
	}

	if c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	}
	if c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
	}
	if c.Sheets.ReadRange == "" {
		return errors.New("SHEET_READ_RANGE must not be empty")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("STOCK_CACHE_TTL must be positive")
	}
	if c.Cache.FetchTimeout <= 0 {
		return errors.New("SHEETS_FETCH_TIMEOUT must be positive")
	}
	if c.Cache.WarmSchedule == "" {
		return errors.New("CACHE_WARM_SCHEDULE must be provided")
	}

	if c.Search.PageSize <= 0 {
		return errors.New("SEARCH_PAGE_SIZE must be positive")
	}
	if c.Search.FuzzyThreshold <= 0 || c.Search.FuzzyThreshold > 1 {
		return errors.New("SEARCH_FUZZY_THRESHOLD must be in (0, 1]")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return value, nil
}

func parseIntEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid integer: %w", key, err)
	}
	return value, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid number: %w", key, err)
	}
	return value, nil
}
