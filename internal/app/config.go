package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pestlead/leadquote/pkg/jwtx"
)

type Config struct {
	JWTSecret  string        // Required: HMAC secret for session tokens
	SessionTTL time.Duration // Optional: session lifetime (default: 7d)
	Issuer     string        // Optional: issuer claim for tokens (default: leadquote-auth)

	DatabaseFile string // Optional: path to SQLite database file (default: ./leadquote.db)

	CloudinaryCloudName string // Required for uploads
	CloudinaryAPIKey    string // Required for uploads
	CloudinaryAPISecret string // Required for uploads

	DefaultProfilePictureURL string // Optional: avatar for users created without one

	AdminEmail    string // Optional: seed admin account on first start
	AdminPassword string // Optional: password for the seed admin

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

const defaultProfilePictureURL = "https://res.cloudinary.com/dv3uzwxy6/image/upload/v1750505737/pest-leadquotation/profile-pics/profile_1750505735431.png"

// LoadConfig reads the environment. It errors rather than limping along when
// a required credential is missing or a lifetime fails to parse, so a
// misconfigured deployment dies at startup instead of at first login.
func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:                os.Getenv("JWT_SECRET"),
		Issuer:                   getEnvOrDefault("AUTH_ISSUER", "leadquote-auth"),
		DatabaseFile:             getEnvOrDefault("DATABASE_FILE", "leadquote.db"),
		CloudinaryCloudName:      os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:         os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:      os.Getenv("CLOUDINARY_API_SECRET"),
		DefaultProfilePictureURL: getEnvOrDefault("DEFAULT_PROFILE_PICTURE_URL", defaultProfilePictureURL),
		AdminEmail:               os.Getenv("ADMIN_EMAIL"),
		AdminPassword:            os.Getenv("ADMIN_PASSWORD"),
		Env:                      getEnvOrDefault("ENV", "dev"),
		LogLevel:                 getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:                getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                     getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:      getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg.SessionTTL = jwtx.DefaultSessionTTL
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		ttl, err := jwtx.ParseLifetime(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", raw, err)
		}
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
