package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the node settings loadable from a YAML file. Zero-valued
// fields fall back to the compiled defaults; everything is static for the
// process lifetime.
type Config struct {
	RSSIThreshold     int          `yaml:"rssi_threshold"`     // dBm, in-range bound
	FootstepThreshold int          `yaml:"footstep_threshold"` // dBm, close-range bound
	ScanWindowS       int          `yaml:"scan_window_s"`      // scan window in seconds
	AllowList         []string     `yaml:"allow_list"`
	Serial            SerialConfig `yaml:"serial"`
}

// SerialConfig contains the bus peripheral link settings.
type SerialConfig struct {
	Device   string `yaml:"device"` // e.g. /dev/ttyUSB0; empty disables the link
	BaudRate int    `yaml:"baud_rate"`
}

// Default returns a Config populated with the compiled defaults.
func Default() *Config {
	return &Config{
		RSSIThreshold:     DefaultRSSIThreshold,
		FootstepThreshold: DefaultFootstepThreshold,
		ScanWindowS:       int(DefaultScanWindow / time.Second),
		AllowList:         append([]string(nil), DefaultAllowList...),
		Serial: SerialConfig{
			BaudRate: DefaultBaudRate,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings the rest of the node assumes to hold.
func (c *Config) Validate() error {
	if c.FootstepThreshold <= c.RSSIThreshold {
		return fmt.Errorf("footstep_threshold (%d) must be greater than rssi_threshold (%d)",
			c.FootstepThreshold, c.RSSIThreshold)
	}
	if c.ScanWindowS <= 0 {
		return fmt.Errorf("scan_window_s must be positive, got %d", c.ScanWindowS)
	}
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial baud_rate must be positive, got %d", c.Serial.BaudRate)
	}
	return nil
}

// ScanWindow returns the configured scan window as a duration.
func (c *Config) ScanWindow() time.Duration {
	return time.Duration(c.ScanWindowS) * time.Second
}
