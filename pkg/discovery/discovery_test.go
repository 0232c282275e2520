package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/llm"
	"github.com/datablogin/GrowthNav/pkg/mapper"
	"github.com/datablogin/GrowthNav/pkg/models"
	"github.com/datablogin/GrowthNav/pkg/profiler"
)

func newDiscovery(t *testing.T, generate func(ctx context.Context, prompt string) (string, error)) (SchemaDiscovery, *llm.MockGenerator) {
	t.Helper()
	mock := llm.NewMockGenerator()
	mock.GenerateFunc = generate

	m, err := mapper.New(mock, zap.NewNop())
	require.NoError(t, err)

	return New(profiler.New(zap.NewNop()), m, DefaultOptions(), zap.NewNop()), mock
}

func TestAnalyze_EmptyInputSkipsBackend(t *testing.T) {
	svc, mock := newDiscovery(t, func(ctx context.Context, prompt string) (string, error) {
		return "[]", nil
	})

	result, err := svc.Analyze(context.Background(), nil, "empty export")
	require.NoError(t, err)

	assert.Empty(t, result.Profiles)
	assert.Empty(t, result.FieldMap)
	assert.Equal(t, 0, mock.GenerateCalls)
}

func TestAnalyze_CombinesProfilesAndSuggestions(t *testing.T) {
	svc, mock := newDiscovery(t, func(ctx context.Context, prompt string) (string, error) {
		return `[
			{"source_field": "txn", "target_field": "transaction_id", "confidence": 0.92, "reason": "unique ids"},
			{"source_field": "total", "target_field": "value", "confidence": 0.6, "reason": "numeric"},
			{"source_field": "notes", "target_field": null, "confidence": 0.1, "reason": "free text"}
		]`, nil
	})

	records := []map[string]any{
		{"txn": "550e8400-e29b-41d4-a716-446655440000", "total": "$10.00", "notes": "gift"},
		{"txn": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "total": "$22.50", "notes": ""},
	}

	result, err := svc.Analyze(context.Background(), records, "pos export")
	require.NoError(t, err)

	assert.Len(t, result.Profiles, 3)
	assert.Equal(t, models.ColumnTypeNumber, result.Profiles["total"].InferredType)

	require.Len(t, result.Suggestions, 3)
	assert.Equal(t, map[string]string{"txn": "transaction_id"}, result.FieldMap)

	assert.Equal(t, 1, result.Summary.High)
	assert.Equal(t, 1, result.Summary.Medium)
	assert.Equal(t, 0, result.Summary.Low)
	assert.Equal(t, 1, result.Summary.Unmapped)

	assert.Equal(t, 1, mock.GenerateCalls)
	assert.Contains(t, mock.LastPrompt, "pos export")
}

func TestAnalyze_MapperErrorPropagates(t *testing.T) {
	svc, _ := newDiscovery(t, func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("backend down")
	})

	result, err := svc.Analyze(context.Background(), []map[string]any{{"a": "1"}}, "")

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestAnalyze_CustomMinConfidence(t *testing.T) {
	mock := llm.NewMockGenerator()
	mock.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return `[{"source_field": "total", "target_field": "value", "confidence": 0.55, "reason": "numeric"}]`, nil
	}

	m, err := mapper.New(mock, zap.NewNop())
	require.NoError(t, err)

	svc := New(profiler.New(zap.NewNop()), m, Options{MinConfidence: 0.5}, zap.NewNop())

	result, err := svc.Analyze(context.Background(), []map[string]any{{"total": "9.99"}}, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"total": "value"}, result.FieldMap)
}
