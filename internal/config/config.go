package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Default sheet names, matching the header schemas in internal/schemas.
const (
	DefaultMatchSheet = "Match Scouting Data"
	DefaultPitSheet   = "Pit Scouting Data"
)

// S3 holds the object-store settings for robot photos. PublicBaseURL is the
// externally reachable prefix used to build viewable photo links
// (e.g. http://minio.local:9000).
type S3 struct {
	Endpoint      string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Config is the full static configuration surface. It is built once in main
// and injected into the server; nothing below main reads the environment.
type Config struct {
	Addr        string
	DatabaseURL string

	// AllowedCodes is the shared-secret allow-list checked on every
	// submission.
	AllowedCodes []string

	MatchSheet string
	PitSheet   string

	// AdminToken guards the sheet maintenance endpoints.
	AdminToken string

	S3 S3
}

// Load reads configuration from the environment, loading a local .env file
// first when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        envOr("ADDR", ":8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MatchSheet:  envOr("MATCH_SHEET_NAME", DefaultMatchSheet),
		PitSheet:    envOr("PIT_SHEET_NAME", DefaultPitSheet),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		S3: S3{
			Endpoint:      os.Getenv("MINIO_ENDPOINT"),
			Bucket:        os.Getenv("MINIO_BUCKET"),
			AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
			PublicBaseURL: os.Getenv("PHOTO_PUBLIC_BASE_URL"),
		},
	}
	for _, code := range strings.Split(os.Getenv("ALLOWED_TEAM_CODES"), ",") {
		if code = strings.TrimSpace(code); code != "" {
			cfg.AllowedCodes = append(cfg.AllowedCodes, code)
		}
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is not set")
	}
	if len(cfg.AllowedCodes) == 0 {
		return cfg, fmt.Errorf("ALLOWED_TEAM_CODES is not set")
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
