// Package llm provides reasoning-service clients for schema mapping.
package llm

import "context"

// Generator is the minimal reasoning capability the schema mapper depends on.
// Implementations wrap a concrete LLM provider; use this interface for
// dependency injection so the deterministic paths stay usable without any
// provider configured, and so tests can substitute a mock.
type Generator interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Ensure the concrete clients implement Generator at compile time.
var (
	_ Generator = (*Client)(nil)
	_ Generator = (*AnthropicClient)(nil)
	_ Generator = (*MockGenerator)(nil)
)
