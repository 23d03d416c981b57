// Package config provides configuration management for lumen-go clients
// using Viper with support for multiple formats, environment variables,
// and hot-reloading.
//
// This package manages client configuration including:
//   - Data API connection (endpoint, token, default keyspace)
//   - Timeout defaults (per-request and overall)
//   - Circuit breaker thresholds for the HTTP commander
//   - Logging (level, format, output)
//
// # Configuration Loading
//
// Load configuration from file:
//
//	cfg, err := config.LoadConfig("./config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Format
//
// Supports YAML, JSON, and TOML formats. Example YAML:
//
//	endpoint: https://db.example.com
//	token: app-token
//	keyspace: default_keyspace
//
//	timeouts:
//	  request_ms: 10000
//	  general_method_ms: 30000
//
//	breaker:
//	  enabled: true
//	  max_requests: 100
//
//	logger:
//	  level: 4
//	  format: json
//	  output: stdout
//
// # Environment Variables
//
// Values can be overridden with LUMEN_-prefixed environment variables:
//
//	export LUMEN_ENDPOINT=https://db.example.com
//	export LUMEN_TOKEN=app-token
//
// # Hot Reloading
//
// Watch the configuration file for changes:
//
//	config.Watch(cfg, func(cfg *config.Config) {
//	    // react to configuration changes
//	})
package config
