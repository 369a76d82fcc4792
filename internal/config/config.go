package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from the environment.
type App struct {
	Env            string
	Port           string
	BackendURL     string
	GraphQLPath    string
	BackendTimeout time.Duration
	SlowBackendMs  int
	DBPath         string
	SlowQueryMs    int
	SlowRequestMs  int
	RedisURL       string
	SessionTTL     time.Duration
	SessionKey     []byte
	CSRFKey        []byte
	RateLimit      int
	RefreshDelay   time.Duration
	LogLevel       slog.Level
	LogFormat      string
}

// IsProduction reports whether the server runs with production settings.
func (a App) IsProduction() bool {
	return a.Env == "production"
}

// GraphQLURL returns the absolute GraphQL endpoint.
func (a App) GraphQLURL() string {
	return strings.TrimRight(a.BackendURL, "/") + a.GraphQLPath
}

// Load reads an optional .env file, then the environment, and validates the result.
// PRE: none
// POST: Returns a validated App or the first configuration error
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env: %v", err)
	}

	app := App{
		Env:            getEnv("MINISTRY_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		BackendURL:     getEnv("MINISTRY_BACKEND_URL", "http://localhost:8000"),
		GraphQLPath:    getEnv("MINISTRY_GRAPHQL_PATH", "/graphql"),
		BackendTimeout: durationEnv("MINISTRY_BACKEND_TIMEOUT", 10*time.Second),
		SlowBackendMs:  intEnv("MINISTRY_SLOW_BACKEND_MS", 500),
		DBPath:         getEnv("MINISTRY_DB", "ministry.db"),
		SlowQueryMs:    intEnv("MINISTRY_SLOW_QUERY_MS", 50),
		SlowRequestMs:  intEnv("MINISTRY_SLOW_REQUEST_MS", 200),
		RedisURL:       os.Getenv("MINISTRY_REDIS_URL"),
		SessionTTL:     durationEnv("MINISTRY_SESSION_TTL", 24*time.Hour),
		RateLimit:      intEnv("MINISTRY_RATE_LIMIT", 10),
		RefreshDelay:   durationEnv("MINISTRY_REFRESH_DELAY", 1500*time.Millisecond),
		LogLevel:       levelEnv("MINISTRY_LOG_LEVEL", slog.LevelInfo),
		LogFormat:      getEnv("MINISTRY_LOG_FORMAT", "text"),
	}

	var err error
	if app.CSRFKey, err = keyEnv("MINISTRY_CSRF_KEY", app.IsProduction()); err != nil {
		return App{}, err
	}
	if app.SessionKey, err = keyEnv("MINISTRY_SESSION_KEY", app.IsProduction()); err != nil {
		return App{}, err
	}
	if err := app.Validate(); err != nil {
		return App{}, err
	}
	return app, nil
}

// Validate checks the loaded values for consistency.
// PRE: App populated by Load or by hand in tests
// POST: Returns nil or a descriptive error
func (a App) Validate() error {
	u, err := url.Parse(a.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("MINISTRY_BACKEND_URL must be an http(s) URL, got %q", a.BackendURL)
	}
	if !strings.HasPrefix(a.GraphQLPath, "/") {
		return fmt.Errorf("MINISTRY_GRAPHQL_PATH must start with /, got %q", a.GraphQLPath)
	}
	if a.BackendTimeout <= 0 {
		return errors.New("MINISTRY_BACKEND_TIMEOUT must be positive")
	}
	if a.SessionTTL <= 0 {
		return errors.New("MINISTRY_SESSION_TTL must be positive")
	}
	if a.RateLimit < 1 {
		return errors.New("MINISTRY_RATE_LIMIT must be at least 1")
	}
	if a.RefreshDelay < 0 {
		return errors.New("MINISTRY_REFRESH_DELAY must not be negative")
	}
	if a.LogFormat != "text" && a.LogFormat != "json" {
		return fmt.Errorf("MINISTRY_LOG_FORMAT must be text or json, got %q", a.LogFormat)
	}
	if len(a.CSRFKey) != 32 || len(a.SessionKey) != 32 {
		return errors.New("CSRF and session keys must be 32 bytes")
	}
	return nil
}

// keyEnv reads a hex-encoded 32-byte secret. Outside production a random key is
// generated when the variable is unset, so sessions do not survive a restart.
func keyEnv(key string, required bool) ([]byte, error) {
	if keyHex := os.Getenv(key); keyHex != "" {
		b, err := hex.DecodeString(keyHex)
		if err != nil || len(b) != 32 {
			return nil, fmt.Errorf("%s must be 64 hex characters (32 bytes)", key)
		}
		return b, nil
	}
	if required {
		return nil, fmt.Errorf("%s is required in production", key)
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate %s: %w", key, err)
	}
	log.Printf("WARNING: using random %s. Set it for production.", key)
	return b, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}

func levelEnv(key string, fallback slog.Level) slog.Level {
	if val := os.Getenv(key); val != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(val)); err == nil {
			return lvl
		}
		log.Printf("invalid log level for %s, using fallback %s", key, fallback)
	}
	return fallback
}
