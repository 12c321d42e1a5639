// Package config holds the run configuration of golgg-drafts.
//
// Defaults describe the gol.gg site profile. An optional YAML file overlays
// them, and the environment may override the HTTP client headers. The value
// returned by Load is treated as immutable by every consumer.
package config
