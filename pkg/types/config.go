package types

import "time"

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" (default) or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// File is an optional log file path. When set, JSON logs are also written
	// there with size-based rotation.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// TelemetryConfig controls span export.
type TelemetryConfig struct {
	// Enabled turns on the stdout span exporter.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// ServiceName is recorded on every span (default "reag").
	ServiceName string `json:"service_name" yaml:"service_name" mapstructure:"service_name"`
}

// ConversionBackend identifies the document-to-markdown tool.
type ConversionBackend string

const (
	// BackendLocal runs a markitdown executable found on PATH.
	BackendLocal ConversionBackend = "local"

	// BackendContainer runs the markitdown image under docker or podman.
	BackendContainer ConversionBackend = "container"
)

// ConversionConfig holds settings for the converter adapter.
type ConversionConfig struct {
	// Backend selects local or container conversion (default local).
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Binary is the markitdown executable for the local backend (default "markitdown").
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// Image is the container image for the container backend (default "markitdown:latest").
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// ProviderConfig holds credentials and client settings for one model provider.
type ProviderConfig struct {
	// APIKey authenticates against the provider. Usually loaded from .secrets/.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxRetries is the number of retry attempts inside the provider client
	// (default 2). A negative value disables retries for every provider.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// MaxTokens bounds the response length where the provider requires it (default 4096).
	MaxTokens int64 `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout is the per-request timeout (default 5m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// QueryConfig holds settings for the concurrency orchestrator.
type QueryConfig struct {
	// MaxConcurrency caps the worker pool. Zero means one worker per document.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency" mapstructure:"max_concurrency"`

	// RequestsPerSecond throttles dispatches. Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// AcquisitionConfig controls how command-line inputs given as URLs are
// downloaded.
type AcquisitionConfig struct {
	// Timeout bounds each download (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxBytes rejects downloads larger than this (default 50 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`

	// MaxRetries bounds retries on 429 and 5xx gateway responses (default 3).
	// A negative value disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// Config groups all settings read from reag.yaml and REAG_* variables.
type Config struct {
	Logging     LoggingConfig             `json:"logging" yaml:"logging" mapstructure:"logging"`
	Telemetry   TelemetryConfig           `json:"telemetry" yaml:"telemetry" mapstructure:"telemetry"`
	Acquisition AcquisitionConfig         `json:"acquisition" yaml:"acquisition" mapstructure:"acquisition"`
	Conversion  ConversionConfig          `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Query       QueryConfig               `json:"query" yaml:"query" mapstructure:"query"`
	Providers   map[string]ProviderConfig `json:"providers" yaml:"providers" mapstructure:"providers"`
}
