package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds one export run's settings, loaded from the environment.
type Config struct {
	ElectionID            string
	BaseAPIURL            string
	AdminEmail            string
	AdminPassword         string
	ConcurrentWorkers     int
	DownloadAttachments   bool
	ExportRoot            string
	GoogleCredentialsPath string
	GoogleSheetID         string
	QuickReportsSheetID   string
	DisplayLocation       *time.Location
	MongoURI              string
}

// Load reads the run configuration from the environment. ELECTION_ID and
// BASE_API_URL are required; everything else has a usable default.
func Load() (*Config, error) {
	electionID := os.Getenv("ELECTION_ID")
	if electionID == "" {
		return nil, fmt.Errorf("ELECTION_ID env var not set")
	}
	baseURL := os.Getenv("BASE_API_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("BASE_API_URL env var not set")
	}

	workers, err := strconv.Atoi(getEnv("CONCURRENT_WORKERS", "8"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("invalid CONCURRENT_WORKERS: %q", os.Getenv("CONCURRENT_WORKERS"))
	}

	loc := time.UTC
	if tz := os.Getenv("DISPLAY_TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tz, err)
		}
	}

	return &Config{
		ElectionID:            electionID,
		BaseAPIURL:            baseURL,
		AdminEmail:            os.Getenv("ADMIN_EMAIL"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		ConcurrentWorkers:     workers,
		DownloadAttachments:   strings.EqualFold(os.Getenv("DOWNLOAD_ATTACHMENTS"), "true"),
		ExportRoot:            filepath.Join(getEnv("EXPORT_ROOT", "exported-data"), electionID),
		GoogleCredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
		GoogleSheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		QuickReportsSheetID:   os.Getenv("QUICK_REPORTS_SHEET_ID"),
		DisplayLocation:       loc,
		MongoURI:              os.Getenv("MONGO_URI"),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
