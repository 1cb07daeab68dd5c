// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the conversion and query stages.
package types

// File is one input blob supplied by the host for a single invocation.
type File struct {
	// Blob is the raw file content.
	Blob []byte `json:"-" yaml:"-" mapstructure:"blob"`

	// Filename is the display name of the source file (e.g. "report.pdf").
	Filename string `json:"filename" yaml:"filename" mapstructure:"filename"`

	// Extension is the declared file extension (e.g. ".pdf"). It may be empty.
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`
}

// Document is the normalized text extracted from one source file.
// Documents are created by the converter and never mutated afterwards.
type Document struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// Verdict is the model's judgement about one document for one query.
type Verdict struct {
	// Content is the answer extracted from the model output.
	Content string `json:"content" yaml:"content"`

	// Reasoning is the model's reasoning block, or "" when none was emitted.
	Reasoning string `json:"reasoning" yaml:"reasoning"`

	// IsIrrelevant reports that the document holds nothing useful for the query.
	IsIrrelevant bool `json:"is_irrelevant" yaml:"is_irrelevant"`

	// Document is the source the verdict was produced from.
	Document Document `json:"document" yaml:"document"`
}

// ModelSelector names the language model a query is dispatched to.
type ModelSelector struct {
	// Provider selects the model client (e.g. "anthropic", "openai", "ollama").
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the provider-specific model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Mode is "chat" or "completion". Providers that only support one mode ignore it.
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// Model modes.
const (
	ModeChat       = "chat"
	ModeCompletion = "completion"
)

// QueryRequest is shared read-only by every dispatch of one invocation.
type QueryRequest struct {
	Query string        `json:"query" yaml:"query"`
	Model ModelSelector `json:"model" yaml:"model"`
}
