// Package mapper suggests mappings from ad-hoc source columns onto the
// canonical conversion schema, delegating semantic reasoning to an injected
// LLM backend.
package mapper

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/apperrors"
	"github.com/datablogin/GrowthNav/pkg/jsonutil"
	"github.com/datablogin/GrowthNav/pkg/llm"
	"github.com/datablogin/GrowthNav/pkg/logging"
	"github.com/datablogin/GrowthNav/pkg/models"
	"github.com/datablogin/GrowthNav/pkg/prompts"
)

// DefaultMinConfidence is the policy threshold for including a suggestion in
// a derived field map.
const DefaultMinConfidence = 0.7

// Mapper suggests schema mappings for profiled source columns.
type Mapper interface {
	// SuggestMappings asks the reasoning backend for a mapping suggestion per
	// source column. The call is atomic: either the full suggestion list is
	// returned or an error. Upstream failures and malformed responses are
	// reported as errors, never as an empty list, because "service failed"
	// and "nothing maps" are different conditions.
	SuggestMappings(
		ctx context.Context,
		profiles map[string]*models.ColumnProfile,
		sampleRows []map[string]any,
		sourceContext string,
	) ([]*models.MappingSuggestion, error)
}

type mapper struct {
	generator llm.Generator
	logger    *zap.Logger
}

// New creates a schema mapper backed by the given reasoning generator.
// A nil generator is a configuration error, surfaced here rather than at
// call time.
func New(generator llm.Generator, logger *zap.Logger) (Mapper, error) {
	if generator == nil {
		return nil, apperrors.ErrReasonerRequired
	}
	return &mapper{
		generator: generator,
		logger:    logger.Named("schema-mapper"),
	}, nil
}

var _ Mapper = (*mapper)(nil)

// rawSuggestion is the loosely-typed wire shape of one suggestion. LLMs
// occasionally return numbers for string fields and vice versa, so the raw
// fields are normalized through jsonutil.
type rawSuggestion struct {
	SourceField json.RawMessage `json:"source_field"`
	TargetField json.RawMessage `json:"target_field"`
	Confidence  json.RawMessage `json:"confidence"`
	Reason      json.RawMessage `json:"reason"`
}

func (m *mapper) SuggestMappings(
	ctx context.Context,
	profiles map[string]*models.ColumnProfile,
	sampleRows []map[string]any,
	sourceContext string,
) ([]*models.MappingSuggestion, error) {
	m.logger.Info("Requesting schema mapping",
		zap.Int("source_fields", len(profiles)),
		zap.String("context", sourceContext))

	prompt := prompts.BuildSchemaMappingPrompt(profiles, sampleRows, sourceContext)

	response, err := m.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMappingUnavailable, err)
	}

	suggestions, err := m.parseResponse(response, profiles)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Schema mapping complete",
		zap.Int("suggestions", len(suggestions)))

	return suggestions, nil
}

// parseResponse parses the reasoning response as a strict JSON array of
// suggestions. A response without a well-formed array fails the call.
func (m *mapper) parseResponse(
	response string,
	profiles map[string]*models.ColumnProfile,
) ([]*models.MappingSuggestion, error) {
	m.logger.Debug("Reasoner response",
		zap.String("snippet", logging.TruncateString(response, logging.MaxValueLogLength)))

	raw, err := llm.ParseJSONResponse[[]rawSuggestion](response)
	if err != nil {
		return nil, fmt.Errorf("%w: expected array of suggestions: %w", apperrors.ErrMalformedMapping, err)
	}

	suggestions := make([]*models.MappingSuggestion, 0, len(raw))
	for _, item := range raw {
		sourceField := jsonutil.FlexibleStringValue(item.SourceField)
		if sourceField == "" {
			return nil, fmt.Errorf("%w: suggestion missing source_field", apperrors.ErrMalformedMapping)
		}

		var targetField *string
		if t := jsonutil.FlexibleStringValue(item.TargetField); t != "" {
			targetField = &t
		}

		confidence, ok := jsonutil.FlexibleFloatValue(item.Confidence)
		if !ok {
			return nil, fmt.Errorf("%w: suggestion for %q missing confidence", apperrors.ErrMalformedMapping, sourceField)
		}
		if clamped := clamp01(confidence); clamped != confidence {
			m.logger.Warn("Clamped out-of-range confidence",
				zap.String("source_field", sourceField),
				zap.Float64("raw", confidence),
				zap.Float64("clamped", clamped))
			confidence = clamped
		}

		// Sample values are copied from the profile for audit.
		var samples []string
		if p, ok := profiles[sourceField]; ok {
			samples = p.SampleValues
		}

		suggestions = append(suggestions, &models.MappingSuggestion{
			SourceField:  sourceField,
			TargetField:  targetField,
			Confidence:   confidence,
			Reason:       jsonutil.FlexibleStringValue(item.Reason),
			SampleValues: samples,
		})
	}

	return suggestions, nil
}

// FieldMap derives a source-to-canonical field map usable by a normalizer,
// keeping only suggestions with a target field and confidence at or above
// minConfidence. Pass DefaultMinConfidence unless policy says otherwise.
func FieldMap(suggestions []*models.MappingSuggestion, minConfidence float64) map[string]string {
	fieldMap := make(map[string]string)
	for _, s := range suggestions {
		if s.IsMapped() && s.Confidence >= minConfidence {
			fieldMap[s.SourceField] = *s.TargetField
		}
	}
	return fieldMap
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
