package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	DefaultTMDBImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultOpenAIModel      = "gpt-4o-mini"
)

const (
	defaultEnrichmentQueueSize  = 100
	defaultNumEnrichmentWorkers = 2
)

type Config struct {
	// database connection string (Postgres DSN)
	DatabaseURL string

	// LLM search settings
	OpenAIAPIKey string
	OpenAIModel  string

	// movie metadata (TMDB) settings
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string

	// enrichment worker settings
	EnrichmentQueueSize  int
	NumEnrichmentWorkers int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	cfg := Config{
		DatabaseURL:          getEnvOrDefault("DATABASE_URL", "postgres://localhost:5432/disneybound?sslmode=disable"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          getEnvOrDefault("OPENAI_MODEL", DefaultOpenAIModel),
		TMDBAPIKey:           os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:          getEnvOrDefault("TMDB_BASE_URL", DefaultTMDBBaseURL),
		TMDBImageBaseURL:     getEnvOrDefault("TMDB_IMAGE_BASE_URL", DefaultTMDBImageBaseURL),
		EnrichmentQueueSize:  getEnvIntOrDefault("ENRICHMENT_QUEUE_SIZE", defaultEnrichmentQueueSize),
		NumEnrichmentWorkers: getEnvIntOrDefault("NUM_ENRICHMENT_WORKERS", defaultNumEnrichmentWorkers),
	}

	if cfg.OpenAIAPIKey == "" {
		log.Printf("Warning: OPENAI_API_KEY is not set; character searches will fail")
	}
	if cfg.TMDBAPIKey == "" {
		log.Printf("Warning: TMDB_API_KEY is not set; thumbnail enrichment will be skipped")
	}

	return cfg, nil
}
