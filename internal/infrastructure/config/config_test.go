package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
site:
  id: "test-site"
  name: "Test Home"
logging:
  level: "debug"
simulation:
  energy_cost_per_command: 2.5
history:
  enabled: true
  path: "/tmp/test.db"
mqtt:
  broker:
    host: "broker.local"
    port: 1883
    client_id: "test-client"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-site" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "test-site")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Simulation.EnergyCostPerCommand != 2.5 {
		t.Errorf("Simulation.EnergyCostPerCommand = %v, want 2.5", cfg.Simulation.EnergyCostPerCommand)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, `site: {id: "s"}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Simulation.EventLogCapacity != 1000 {
		t.Errorf("EventLogCapacity = %d, want 1000", cfg.Simulation.EventLogCapacity)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false by default")
	}
	if cfg.MQTT.Enabled {
		t.Error("MQTT.Enabled = true, want false by default")
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false by default")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
site:
  id: ""
mqtt:
  qos: 7
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Load() expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "site.id") {
		t.Errorf("error = %v, want mention of site.id", err)
	}
	if !strings.Contains(err.Error(), "mqtt.qos") {
		t.Errorf("error = %v, want mention of mqtt.qos", err)
	}
}

func TestValidate_EnabledSectionsRequireFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "history enabled without path",
			mutate:  func(c *Config) { c.History.Enabled = true; c.History.Path = "" },
			wantErr: "history.path",
		},
		{
			name:    "mqtt enabled without host",
			mutate:  func(c *Config) { c.MQTT.Enabled = true; c.MQTT.Broker.Host = "" },
			wantErr: "mqtt.broker.host",
		},
		{
			name:    "telemetry enabled without org",
			mutate:  func(c *Config) { c.Telemetry.Enabled = true },
			wantErr: "telemetry.org",
		},
		{
			name:    "negative energy cost",
			mutate:  func(c *Config) { c.Simulation.EnergyCostPerCommand = -1 },
			wantErr: "energy_cost_per_command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EMBERHOME_MQTT_HOST", "env-broker")
	t.Setenv("EMBERHOME_HISTORY_ENABLED", "true")

	cfg := Default()
	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "env-broker")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true from env override")
	}
}
