package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE", StoreMemory)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30, cfg.SlotMinutes)

	s := cfg.Scheduling()
	assert.Equal(t, 30*time.Minute, s.SlotWidth)
	assert.Equal(t, 30*time.Minute, s.LeadTime)
	assert.Equal(t, "09:00", s.DefaultStart.String())
	assert.Equal(t, "18:00", s.DefaultEnd.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE", StoreMemory)
	t.Setenv("SLOT_MINUTES", "15")
	t.Setenv("DEFAULT_WORK_START", "08:00")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.Scheduling().SlotWidth)
	assert.Equal(t, "08:00", cfg.Scheduling().DefaultStart.String())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store:            StoreMemory,
			SlotMinutes:      30,
			DefaultWorkStart: "09:00",
			DefaultWorkEnd:   "18:00",
			ShopTimezone:     "UTC",
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.SlotMinutes = 0
	assert.Error(t, c.Validate())

	c = base()
	c.DefaultWorkStart = "19:00"
	assert.Error(t, c.Validate())

	c = base()
	c.Store = StorePostgres
	assert.Error(t, c.Validate(), "postgres store needs DATABASE_URL")

	c = base()
	c.Store = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.ShopTimezone = "Mars/Olympus"
	assert.Error(t, c.Validate())
}

func TestHolder_Reload(t *testing.T) {
	t.Setenv("STORE", StoreMemory)

	h, err := NewHolder()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, h.Scheduling().LeadTime)

	t.Setenv("LEAD_TIME_MINUTES", "60")
	require.NoError(t, h.Reload())
	assert.Equal(t, 60*time.Minute, h.Scheduling().LeadTime)

	t.Setenv("SLOT_MINUTES", "-1")
	assert.Error(t, h.Reload())
	assert.Equal(t, 60*time.Minute, h.Scheduling().LeadTime, "invalid reload keeps the previous snapshot")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://a.example, ,https://b.example "}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())

	assert.Empty(t, (&Config{}).AllowedOrigins())
}
