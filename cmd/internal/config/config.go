package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"byteapi/cmd/internal/utils"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	StoreSupabase = "supabase"
	StoreSQLite   = "sqlite"

	AuthSupabase = "supabase"
	AuthCognito  = "cognito"
	AuthJWT      = "jwt"
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

type SupabaseConfig struct {
	URL            string
	Key            string
	ServiceRoleKey string
}

type AuthConfig struct {
	Provider      string
	JWTSecret     string
	JWKSURL       string
	CognitoRegion string
}

type StorageConfig struct {
	Region    string
	Bucket    string
	PublicURL string
}

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	BodyLimit   string
	CORSOrigins []string

	StoreDriver  string
	SQLitePath   string
	StoreTimeout time.Duration

	// EventSweepInterval is zero when the sweeper is disabled.
	EventSweepInterval time.Duration
	NodeID             int64

	Supabase SupabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
}

// UploadsEnabled reports whether an S3 bucket is configured.
func (c *Config) UploadsEnabled() bool {
	return c.Storage.Bucket != ""
}

// Load reads configuration from environment variables.
// It fails fast with clear errors for missing required values.
func Load() (*Config, error) {
	var missing []string

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("GO_ENV", EnvDevelopment),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		BodyLimit:   getEnv("BODY_LIMIT", "2M"),
		CORSOrigins: defaultCORSOrigins,
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreSupabase)),
		SQLitePath:  getEnv("SQLITE_PATH", "database.db"),
		Supabase: SupabaseConfig{
			URL:            os.Getenv("SUPABASE_URL"),
			Key:            os.Getenv("SUPABASE_KEY"),
			ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		},
		Auth: AuthConfig{
			Provider:      strings.ToLower(getEnv("AUTH_PROVIDER", AuthSupabase)),
			JWTSecret:     getEnv("JWT_SECRET_KEY", os.Getenv("SUPABASE_KEY")),
			JWKSURL:       os.Getenv("JWKS_URL"),
			CognitoRegion: os.Getenv("AWS_COGNITO_REGION"),
		},
		Storage: StorageConfig{
			Region:    os.Getenv("AWS_S3_REGION"),
			Bucket:    os.Getenv("S3_BUCKET_NAME"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		},
	}

	if origins := utils.SplitList(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	sweepDefault := time.Duration(0)
	if cfg.StoreDriver == StoreSQLite {
		sweepDefault = time.Hour
	}
	if cfg.EventSweepInterval, err = getDuration("EVENT_SWEEP_INTERVAL", sweepDefault); err != nil {
		return nil, err
	}

	if cfg.NodeID, err = strconv.ParseInt(getEnv("NODE_ID", "1"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid NODE_ID: %w", err)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL value %q: must be debug, info, warn, or error", cfg.LogLevel)
	}

	switch cfg.StoreDriver {
	case StoreSupabase:
		missing = append(missing, cfg.Supabase.missing()...)
	case StoreSQLite:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER value %q: must be supabase or sqlite", cfg.StoreDriver)
	}

	switch cfg.Auth.Provider {
	case AuthSupabase:
		missing = append(missing, cfg.Supabase.missing()...)
	case AuthCognito:
		if cfg.Auth.CognitoRegion == "" {
			missing = append(missing, "AWS_COGNITO_REGION")
		}
	case AuthJWT:
		if cfg.Auth.JWTSecret == "" && cfg.Auth.JWKSURL == "" {
			missing = append(missing, "JWT_SECRET_KEY or JWKS_URL")
		}
	default:
		return nil, fmt.Errorf("invalid AUTH_PROVIDER value %q: must be supabase, cognito, or jwt", cfg.Auth.Provider)
	}

	if cfg.UploadsEnabled() && cfg.Storage.Region == "" {
		missing = append(missing, "AWS_S3_REGION")
	}

	if missing = dedupe(missing); len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func (s SupabaseConfig) missing() []string {
	var out []string
	if s.URL == "" {
		out = append(out, "SUPABASE_URL")
	}
	if s.Key == "" {
		out = append(out, "SUPABASE_KEY")
	}
	return out
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
