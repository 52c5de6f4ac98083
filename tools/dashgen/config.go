package main

import "errors"

// KnownMetrics is the set of metric names exported by ebaynet plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// eBay API metrics.
	"ebaynet_api_requests_total":                  true,
	"ebaynet_api_request_duration_seconds_bucket": true,

	// OAuth metrics.
	"ebaynet_token_fetch_errors_total": true,

	// Recording rules.
	"ebaynet:api_requests:rate5m": true,
	"ebaynet:api_errors:rate5m":   true,
	"ebaynet:token_errors:rate5m": true,
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
