package llm

import "context"

// MockGenerator is a configurable mock for testing reasoning-backed code.
// Set the function field to control behavior in tests.
type MockGenerator struct {
	// GenerateFunc is called when Generate is invoked.
	// If nil, returns empty string and nil error.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Call tracking for verification
	GenerateCalls int
	LastPrompt    string
}

// NewMockGenerator creates a new mock generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate implements Generator.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.GenerateCalls++
	m.LastPrompt = prompt
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

// Reset clears call tracking.
func (m *MockGenerator) Reset() {
	m.GenerateCalls = 0
	m.LastPrompt = ""
}
