package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	FirebaseApiKey  string
	Environment     string

	TMDBApiKey     string
	TMDBBaseURL    string
	OpenLibraryURL string

	RatingDebounce time.Duration
	DateDebounce   time.Duration
	NoteDebounce   time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:  getEnv("FIREBASE_API_KEY", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),
		TMDBApiKey:      getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		OpenLibraryURL:  getEnv("OPENLIBRARY_BASE_URL", "https://openlibrary.org"),
		RatingDebounce:  getEnvAsDuration("RATING_DEBOUNCE_MS", 500),
		DateDebounce:    getEnvAsDuration("DATE_DEBOUNCE_MS", 500),
		NoteDebounce:    getEnvAsDuration("NOTE_DEBOUNCE_MS", 1000),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultMs int64) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		ms, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defaultMs) * time.Millisecond
}
