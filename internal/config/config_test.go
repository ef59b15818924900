package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "https://studiovelocity.com.br/api/v1", cfg.Studio.BaseURL)
	assert.Equal(t, "35", cfg.Studio.UnitList)
	assert.Equal(t, int64(525), cfg.Watcher.InstructorID)
	assert.Equal(t, "SP", cfg.Watcher.Region)
	assert.Equal(t, 14, cfg.Watcher.WindowDays)
	assert.Equal(t, []int{1, 2}, cfg.Watcher.Pages)
	assert.Equal(t, "HTML", cfg.Telegram.ParseMode)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[watcher]
instructor_id = 777
region = "RJ"

[telegram]
parse_mode = "MarkdownV2"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(777), cfg.Watcher.InstructorID)
	assert.Equal(t, "RJ", cfg.Watcher.Region)
	assert.Equal(t, "MarkdownV2", cfg.Telegram.ParseMode)

	// Незатронутые секции остаются со значениями по умолчанию
	assert.Equal(t, "https://studiovelocity.com.br/api/v1", cfg.Studio.BaseURL)
	assert.Equal(t, 14, cfg.Watcher.WindowDays)
	assert.Equal(t, []int{1, 2}, cfg.Watcher.Pages)
}

func TestLoadRejectsInvalidInstructor(t *testing.T) {
	path := writeConfig(t, `
[watcher]
instructor_id = -5
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instructor_id")
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	path := writeConfig(t, `
[studio]
timeout = 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "studio.timeout")
}

func TestLoadRejectsBrokenMetricsSection(t *testing.T) {
	path := writeConfig(t, `
[metrics]
enabled = true
path = ""
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.path")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[watcher`)

	_, err := Load(path)
	require.Error(t, err)
}
