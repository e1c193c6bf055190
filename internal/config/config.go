package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL    string // GAZETTE_DATABASE_URL (required)
	HTTPAddr       string // GAZETTE_HTTP_ADDR (default ":8080")
	NATSURL        string // GAZETTE_NATS_URL (optional, empty = no events)
	ModerationFile string // GAZETTE_MODERATION_FILE (optional TOML word list)

	// Sync settings
	SyncInterval   time.Duration // GAZETTE_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // GAZETTE_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // GAZETTE_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // GAZETTE_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // GAZETTE_SYNC_S3_KEY (default "gazette/backup.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("GAZETTE_DATABASE_URL"),
		HTTPAddr:       envOrDefault("GAZETTE_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("GAZETTE_NATS_URL"),
		ModerationFile: os.Getenv("GAZETTE_MODERATION_FILE"),
		SyncS3Bucket:   os.Getenv("GAZETTE_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("GAZETTE_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("GAZETTE_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("GAZETTE_SYNC_S3_KEY", "gazette/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("GAZETTE_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("GAZETTE_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("GAZETTE_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
