package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, -80, cfg.RSSIThreshold)
	assert.Equal(t, -50, cfg.FootstepThreshold)
	assert.Equal(t, 5*time.Second, cfg.ScanWindow())
	assert.Len(t, cfg.AllowList, 13)
	assert.Equal(t, DefaultBaudRate, cfg.Serial.BaudRate)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crowdsense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
rssi_threshold: -75
scan_window_s: 10
allow_list:
  - "11:22:33:44:55:66"
serial:
  device: /dev/ttyUSB0
  baud_rate: 9600
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, -75, cfg.RSSIThreshold)
	assert.Equal(t, -50, cfg.FootstepThreshold) // untouched default
	assert.Equal(t, 10*time.Second, cfg.ScanWindow())
	assert.Equal(t, []string{"11:22:33:44:55:66"}, cfg.AllowList)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "rssi_threshold: [not an int")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"footstep below rssi threshold", func(c *Config) {
			c.FootstepThreshold = -90
		}, false},
		{"footstep equal to rssi threshold", func(c *Config) {
			c.FootstepThreshold = c.RSSIThreshold
		}, false},
		{"zero scan window", func(c *Config) {
			c.ScanWindowS = 0
		}, false},
		{"negative baud rate", func(c *Config) {
			c.Serial.BaudRate = -1
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
