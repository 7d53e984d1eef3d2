package main

import "errors"

// KnownMetrics is the set of metric names exported by amazon-sp-proxy
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"spproxy_http_request_duration_seconds": true,
	"spproxy_http_requests_total":           true,

	// Health metrics.
	"spproxy_healthz_up": true,
	"spproxy_readyz_up":  true,

	// Credential lifecycle metrics.
	"spproxy_credential_cache_hits_total":   true,
	"spproxy_credential_cache_misses_total": true,
	"spproxy_credential_creates_total":      true,
	"spproxy_credential_refreshes_total":    true,

	// Amazon API metrics.
	"spproxy_token_exchanges_total":       true,
	"spproxy_amazon_api_calls_total":      true,
	"spproxy_amazon_api_duration_seconds": true,

	// Recording rules.
	"spproxy:http_requests:rate5m":           true,
	"spproxy:http_errors:rate5m":             true,
	"spproxy:credential_cache_hits:rate5m":   true,
	"spproxy:credential_cache_misses:rate5m": true,
	"spproxy:token_exchange_errors:rate5m":   true,
	"spproxy:amazon_api_calls:rate5m":        true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
