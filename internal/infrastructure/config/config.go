package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Ember Home Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Logging    LoggingConfig    `yaml:"logging"`
	Simulation SimulationConfig `yaml:"simulation"`
	History    HistoryConfig    `yaml:"history"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SimulationConfig contains defaults for the simulated device layer.
type SimulationConfig struct {
	// EnergyCostPerCommand is the usage charged by the energy monitor
	// for each state-changing command, in arbitrary units.
	EnergyCostPerCommand float64 `yaml:"energy_cost_per_command"`

	// EventLogCapacity bounds the in-memory event log.
	EventLogCapacity int `yaml:"event_log_capacity"`

	// NotificationCapacity bounds the notification service history.
	NotificationCapacity int `yaml:"notification_capacity"`

	// DeviceHistoryCapacity bounds each device's change history.
	DeviceHistoryCapacity int `yaml:"device_history_capacity"`
}

// HistoryConfig contains settings for the optional SQLite event history.
// Disabled by default; the in-memory event log is always active.
type HistoryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains settings for the optional MQTT event mirror.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// TelemetryConfig contains InfluxDB connection settings for the optional
// energy/event telemetry sink.
type TelemetryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: EMBERHOME_SECTION_KEY
// For example: EMBERHOME_HISTORY_PATH, EMBERHOME_MQTT_HOST
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration without reading any file.
// Used by the CLI when no config file is present.
func Default() *Config {
	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	return cfg
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ID:       "site-001",
			Name:     "Ember Home",
			Timezone: "UTC",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Simulation: SimulationConfig{
			EnergyCostPerCommand:  1.0,
			EventLogCapacity:      1000,
			NotificationCapacity:  200,
			DeviceHistoryCapacity: 100,
		},
		History: HistoryConfig{
			Enabled:     false,
			Path:        "./data/emberhome.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Enabled: false,
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "emberhome-core",
			},
			QoS: 1,
		},
		Telemetry: TelemetryConfig{
			Enabled:       false,
			URL:           "http://localhost:8086",
			Bucket:        "emberhome",
			BatchSize:     100,
			FlushInterval: 10,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: EMBERHOME_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Logging
	if v := os.Getenv("EMBERHOME_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// History
	if v := os.Getenv("EMBERHOME_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("EMBERHOME_HISTORY_ENABLED"); v != "" {
		cfg.History.Enabled, _ = strconv.ParseBool(v)
	}

	// MQTT
	if v := os.Getenv("EMBERHOME_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("EMBERHOME_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("EMBERHOME_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Telemetry
	if v := os.Getenv("EMBERHOME_TELEMETRY_TOKEN"); v != "" {
		cfg.Telemetry.Token = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	if c.Simulation.EnergyCostPerCommand < 0 {
		errs = append(errs, "simulation.energy_cost_per_command must not be negative")
	}
	if c.Simulation.EventLogCapacity < 1 {
		errs = append(errs, "simulation.event_log_capacity must be at least 1")
	}
	if c.Simulation.NotificationCapacity < 1 {
		errs = append(errs, "simulation.notification_capacity must be at least 1")
	}
	if c.Simulation.DeviceHistoryCapacity < 1 {
		errs = append(errs, "simulation.device_history_capacity must be at least 1")
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path is required when history is enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.URL == "" {
			errs = append(errs, "telemetry.url is required when telemetry is enabled")
		}
		if c.Telemetry.Org == "" {
			errs = append(errs, "telemetry.org is required when telemetry is enabled")
		}
		if c.Telemetry.Bucket == "" {
			errs = append(errs, "telemetry.bucket is required when telemetry is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
