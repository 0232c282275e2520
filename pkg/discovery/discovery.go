// Package discovery combines column profiling with reasoning-backed schema
// mapping into a single analysis pass over a source sample.
package discovery

import (
	"context"

	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/mapper"
	"github.com/datablogin/GrowthNav/pkg/models"
	"github.com/datablogin/GrowthNav/pkg/profiler"
)

// ConfidenceSummary buckets mapping suggestions by confidence band.
type ConfidenceSummary struct {
	High     int `json:"high"`     // confidence >= 0.7, mapped
	Medium   int `json:"medium"`   // 0.5 <= confidence < 0.7, mapped
	Low      int `json:"low"`      // 0.3 <= confidence < 0.5, mapped
	Unmapped int `json:"unmapped"` // no target field, or confidence < 0.3
}

// Result holds the output of one schema discovery pass.
type Result struct {
	Profiles    map[string]*models.ColumnProfile `json:"profiles"`
	Suggestions []*models.MappingSuggestion      `json:"suggestions"`

	// FieldMap keeps only high-confidence mapped suggestions; it is what a
	// downstream normalizer consumes.
	FieldMap map[string]string `json:"field_map"`

	Summary ConfidenceSummary `json:"confidence_summary"`
}

// SchemaDiscovery runs profiling and mapping over a source data sample.
type SchemaDiscovery interface {
	// Analyze profiles the records and requests mapping suggestions.
	// Empty input yields an empty result without calling the reasoning
	// backend.
	Analyze(ctx context.Context, records []map[string]any, sourceContext string) (*Result, error)
}

// Options tune a discovery pass.
type Options struct {
	// SampleSize is the number of sample values stored per column profile.
	SampleSize int

	// MinConfidence is the field-map inclusion threshold.
	MinConfidence float64
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		SampleSize:    profiler.DefaultSampleSize,
		MinConfidence: mapper.DefaultMinConfidence,
	}
}

type schemaDiscovery struct {
	profiler profiler.Profiler
	mapper   mapper.Mapper
	opts     Options
	logger   *zap.Logger
}

// New creates a schema discovery pipeline from an already-constructed
// profiler and mapper.
func New(p profiler.Profiler, m mapper.Mapper, opts Options, logger *zap.Logger) SchemaDiscovery {
	if opts.SampleSize <= 0 {
		opts.SampleSize = profiler.DefaultSampleSize
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = mapper.DefaultMinConfidence
	}
	return &schemaDiscovery{
		profiler: p,
		mapper:   m,
		opts:     opts,
		logger:   logger.Named("schema-discovery"),
	}
}

var _ SchemaDiscovery = (*schemaDiscovery)(nil)

func (d *schemaDiscovery) Analyze(ctx context.Context, records []map[string]any, sourceContext string) (*Result, error) {
	if len(records) == 0 {
		return &Result{
			Profiles: map[string]*models.ColumnProfile{},
			FieldMap: map[string]string{},
		}, nil
	}

	d.logger.Info("Analyzing source schema",
		zap.Int("records", len(records)),
		zap.String("context", sourceContext))

	profiles := d.profiler.Profile(records, d.opts.SampleSize)

	suggestions, err := d.mapper.SuggestMappings(ctx, profiles, records, sourceContext)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Profiles:    profiles,
		Suggestions: suggestions,
		FieldMap:    mapper.FieldMap(suggestions, d.opts.MinConfidence),
		Summary:     summarize(suggestions),
	}

	d.logger.Info("Schema discovery complete",
		zap.Int("high_confidence", result.Summary.High),
		zap.Int("medium_confidence", result.Summary.Medium),
		zap.Int("low_confidence", result.Summary.Low),
		zap.Int("unmapped", result.Summary.Unmapped))

	return result, nil
}

func summarize(suggestions []*models.MappingSuggestion) ConfidenceSummary {
	var summary ConfidenceSummary
	for _, s := range suggestions {
		switch {
		case !s.IsMapped() || s.Confidence < 0.3:
			summary.Unmapped++
		case s.Confidence >= 0.7:
			summary.High++
		case s.Confidence >= 0.5:
			summary.Medium++
		default:
			summary.Low++
		}
	}
	return summary
}
