// Package config handles loading and validating Ember Home Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The simulation core runs entirely from defaults; the config file only
// matters when one of the optional sinks (history, mqtt, telemetry) is
// switched on.
//
// Security Considerations:
//   - Sensitive values (broker passwords, tokens) should be set via
//     environment variables rather than the config file
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name)
package config
