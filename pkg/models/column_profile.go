package models

import "slices"

// ============================================================================
// Column Types
// ============================================================================

// ColumnType is the elementary type inferred for a source column.
type ColumnType string

const (
	ColumnTypeString   ColumnType = "string"
	ColumnTypeNumber   ColumnType = "number"
	ColumnTypeDatetime ColumnType = "datetime"
	ColumnTypeBoolean  ColumnType = "boolean"
	ColumnTypeUnknown  ColumnType = "unknown"
)

// ValidColumnTypes contains all valid column type values.
var ValidColumnTypes = []ColumnType{
	ColumnTypeString,
	ColumnTypeNumber,
	ColumnTypeDatetime,
	ColumnTypeBoolean,
	ColumnTypeUnknown,
}

// IsValidColumnType checks if the given type is valid.
func IsValidColumnType(t ColumnType) bool {
	return slices.Contains(ValidColumnTypes, t)
}

// Pattern names detected by the profiler. Patterns are matched against
// column DATA (not column names) to make data-driven decisions.
const (
	PatternEmail    = "email"
	PatternPhone    = "phone"
	PatternCurrency = "currency"
	PatternDateISO  = "date_iso"
	PatternUUID     = "uuid"
	PatternClickID  = "gclid"
	PatternURL      = "url"
)

// ============================================================================
// Column Profile
// ============================================================================

// ColumnProfile holds statistics, sample values, and detected patterns for a
// single source column. Profiles are created fresh per profiling call and are
// immutable once returned; persistence is a caller concern.
type ColumnProfile struct {
	Name         string     `json:"name"`
	InferredType ColumnType `json:"inferred_type"`

	// Counts. A value that is absent, nil, or the empty string counts as
	// null; UniqueCount is computed over string-rendered non-null values.
	TotalCount  int `json:"total_count"`
	NullCount   int `json:"null_count"`
	UniqueCount int `json:"unique_count"`

	// For number columns
	MinValue  *float64 `json:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty"`
	MeanValue *float64 `json:"mean_value,omitempty"`

	// For string columns
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	AvgLength *float64 `json:"avg_length,omitempty"`

	// Patterns matched by a strict majority of sampled non-null values.
	DetectedPatterns []string `json:"detected_patterns,omitempty"`

	// Up to sampleSize distinct string-rendered values, first-occurrence order.
	SampleValues []string `json:"sample_values,omitempty"`
}

// NullRate returns the fraction of null values (0.0 - 1.0).
func (p *ColumnProfile) NullRate() float64 {
	if p.TotalCount == 0 {
		return 0
	}
	return float64(p.NullCount) / float64(p.TotalCount)
}

// UniqueRate returns the fraction of unique values (0.0 - 1.0).
func (p *ColumnProfile) UniqueRate() float64 {
	if p.TotalCount == 0 {
		return 0
	}
	return float64(p.UniqueCount) / float64(p.TotalCount)
}

// HasPattern returns true if the named pattern was detected for this column.
func (p *ColumnProfile) HasPattern(name string) bool {
	return slices.Contains(p.DetectedPatterns, name)
}
