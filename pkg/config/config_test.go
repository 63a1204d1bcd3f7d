package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "08:30", cfg.Calendar.DayStart)
	assert.Equal(t, 45, cfg.Calendar.BlockMinutes)
	assert.Equal(t, 18, cfg.Calendar.BlocksPerDay)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CALENDAR_DAY_START", "07:00")
	t.Setenv("CALENDAR_BLOCK_MINUTES", "60")
	t.Setenv("ENABLE_TIMETABLE_CACHE", "true")
	t.Setenv("TIMETABLE_CACHE_TTL", "90s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.edu, ,https://b.example.edu")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "07:00", cfg.Calendar.DayStart)
	assert.Equal(t, 60, cfg.Calendar.BlockMinutes)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example.edu", "https://b.example.edu"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
