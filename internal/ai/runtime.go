// Package ai provides thin HTTP clients for remote text-generation backends
// used by the narrative composer.
package ai

import (
	"context"
	"errors"
	"time"
)

// Runtime is the minimal interface implemented by text-generation backends.
type Runtime interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Provider identifiers used across the CLI and server for selection.
const (
	ProviderLocal = "local"
	ProviderHF    = "hf"
	ProviderSpace = "space"
)

// ErrCredentialMissing signals a missing API key or endpoint URL. Callers
// render it as an instructional message, not a failure.
var ErrCredentialMissing = errors.New("credential missing")

// RuntimeConfig carries the knobs shared by runtimes.
type RuntimeConfig struct {
	APIKey      string
	Endpoint    string // space base URL
	Model       string
	HTTPTimeout time.Duration
}

// RuntimeFactory builds a Runtime from the generic config above.
type RuntimeFactory func(RuntimeConfig) Runtime

var registry = map[string]RuntimeFactory{}

// RegisterRuntime registers a provider name with its factory.
func RegisterRuntime(name string, f RuntimeFactory) { registry[name] = f }

// GetRuntime creates a Runtime for the given provider if registered.
func GetRuntime(name string, cfg RuntimeConfig) (Runtime, bool) {
	if f, ok := registry[name]; ok {
		return f(cfg), true
	}
	return nil, false
}

func init() {
	RegisterRuntime(ProviderHF, func(c RuntimeConfig) Runtime {
		return NewHFClient(c.APIKey, c.Model, c.HTTPTimeout)
	})
	RegisterRuntime(ProviderSpace, func(c RuntimeConfig) Runtime {
		return NewSpaceClient(c.Endpoint, c.HTTPTimeout)
	})
}
