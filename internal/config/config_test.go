package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ELECTION_ID", "election-1")
	t.Setenv("BASE_API_URL", "https://api.example.org")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.ConcurrentWorkers)
	assert.False(t, cfg.DownloadAttachments)
	assert.Equal(t, filepath.Join("exported-data", "election-1"), cfg.ExportRoot)
	assert.Equal(t, time.UTC, cfg.DisplayLocation)
}

func TestLoadRequiresElectionID(t *testing.T) {
	t.Setenv("ELECTION_ID", "")
	t.Setenv("BASE_API_URL", "https://api.example.org")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadWorkerCount(t *testing.T) {
	setRequired(t)
	t.Setenv("CONCURRENT_WORKERS", "zero")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadParsesTunables(t *testing.T) {
	setRequired(t)
	t.Setenv("CONCURRENT_WORKERS", "4")
	t.Setenv("DOWNLOAD_ATTACHMENTS", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.ConcurrentWorkers)
	assert.True(t, cfg.DownloadAttachments)
}
