package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
wordpress:
  domain: "https://cms.example.com"
smtp:
  host: "smtp.example.com"
  from_email: "citas@example.com"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
	assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, DefaultPageSize, cfg.WordPress.PageSize)
	assert.Equal(t, time.Wednesday, cfg.Booking.Weekday)
	assert.Equal(t, "09:00", cfg.Booking.DayStart)
	assert.Equal(t, "12:00", cfg.Booking.DayEnd)
	assert.Equal(t, 5*time.Minute, cfg.Booking.SlotInterval)
	assert.Equal(t, 24, cfg.Booking.LockWindowHours)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTP.Port)
	assert.Equal(t, "citas@example.com", cfg.SMTP.InternalEmail)
}

func TestLoadMissingDomain(t *testing.T) {
	_, err := Load(writeConfig(t, `
smtp:
  host: "smtp.example.com"
  from_email: "citas@example.com"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wordpress.domain")
}

func TestLoadTrailingSlashRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
wordpress:
  domain: "https://cms.example.com/"
smtp:
  host: "smtp.example.com"
  from_email: "citas@example.com"
`))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WP_DOMAIN", "https://other.example.com/")
	t.Setenv("SITEAPI_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("APP_DEBUG", "yes")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://other.example.com", cfg.WordPress.Domain)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Debug)
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"false", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBool(tt.in), "parseBool(%q)", tt.in)
	}
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 9*60, ClockMinutes("09:00"))
	assert.Equal(t, 12*60, ClockMinutes("12:00"))
	assert.Equal(t, 13*60+30, ClockMinutes("13:30"))
}

func TestValidateBadClock(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
booking:
  day_start: "25:00"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day_start")
}
