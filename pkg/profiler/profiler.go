// Package profiler computes per-column statistics and pattern detection for
// raw source records ahead of schema mapping.
package profiler

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/models"
)

const (
	// typeInferenceSampleSize bounds how many non-null values feed type inference.
	typeInferenceSampleSize = 100

	// patternSampleSize bounds how many non-null values feed pattern detection.
	patternSampleSize = 50

	// DefaultSampleSize is the default number of sample values stored per column.
	DefaultSampleSize = 10
)

// samplePatterns defines regex patterns for recognizing well-known value
// formats. Patterns are matched against column DATA, not column names.
var samplePatterns = map[string]*regexp.Regexp{
	models.PatternEmail:    regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`),
	models.PatternPhone:    regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,4}[)]?[-\s\.]?[0-9]{1,9}$`),
	models.PatternCurrency: regexp.MustCompile(`^\$?\d+(,\d{3})*(\.\d{2})?$`),
	models.PatternDateISO:  regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`),
	models.PatternUUID:     regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`),
	models.PatternClickID:  regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`),
	models.PatternURL:      regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`),
}

// datetimePatterns recognize ISO-like and common date renderings for type
// inference.
var datetimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),                   // YYYY-MM-DD
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`),  // ISO 8601
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),                   // MM/DD/YYYY
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),                   // YYYY/MM/DD
}

// currencySymbols are stripped from the front of a value before numeric parsing.
var currencySymbols = []string{"$", "€", "£"}

// Profiler profiles columns in record batches to infer types, detect
// patterns, and gather statistics.
type Profiler interface {
	// Profile profiles all columns across the given records. The column set
	// is the union of keys seen in any row; rows need not share a schema.
	// Empty input produces an empty map, never an error.
	Profile(records []map[string]any, sampleSize int) map[string]*models.ColumnProfile
}

type profiler struct {
	logger *zap.Logger
}

// New creates a new column profiler.
func New(logger *zap.Logger) Profiler {
	return &profiler{logger: logger.Named("profiler")}
}

var _ Profiler = (*profiler)(nil)

func (p *profiler) Profile(records []map[string]any, sampleSize int) map[string]*models.ColumnProfile {
	profiles := make(map[string]*models.ColumnProfile)
	if len(records) == 0 {
		return profiles
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	columns := make(map[string]struct{})
	for _, row := range records {
		for name := range row {
			columns[name] = struct{}{}
		}
	}

	// Sorted iteration keeps logging reproducible run to run.
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := make([]any, 0, len(records))
		for _, row := range records {
			values = append(values, row[name])
		}
		profiles[name] = p.profileColumn(name, values, sampleSize)
	}

	p.logger.Debug("Profiled columns",
		zap.Int("records", len(records)),
		zap.Int("columns", len(profiles)))

	return profiles
}

// profileColumn computes the full profile for one column.
func (p *profiler) profileColumn(name string, values []any, sampleSize int) *models.ColumnProfile {
	totalCount := len(values)
	nonNull := make([]any, 0, totalCount)
	for _, v := range values {
		if !isNull(v) {
			nonNull = append(nonNull, v)
		}
	}
	nullCount := totalCount - len(nonNull)

	rendered := make([]string, len(nonNull))
	for i, v := range nonNull {
		rendered[i] = renderValue(v)
	}

	unique := make(map[string]struct{}, len(rendered))
	for _, s := range rendered {
		unique[s] = struct{}{}
	}

	inferenceSample := nonNull
	if len(inferenceSample) > typeInferenceSampleSize {
		inferenceSample = inferenceSample[:typeInferenceSampleSize]
	}

	profile := &models.ColumnProfile{
		Name:         name,
		InferredType: inferType(inferenceSample),
		TotalCount:   totalCount,
		NullCount:    nullCount,
		UniqueCount:  len(unique),
	}

	switch profile.InferredType {
	case models.ColumnTypeNumber:
		setNumericStats(profile, nonNull)
	case models.ColumnTypeString:
		setLengthStats(profile, rendered)
	}

	profile.DetectedPatterns = detectPatterns(rendered)
	profile.SampleValues = sampleDistinct(rendered, sampleSize)

	return profile
}

// isNull reports whether a value counts as null for statistics purposes.
// Absent, nil, and empty string are indistinguishable in the output.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// renderValue converts an arbitrary scalar to its string rendering.
func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// inferType assigns the type held by a strict majority of the sample values.
// Candidate types are checked in the fixed order boolean > number >
// datetime > string; without a strict majority the column is a string.
func inferType(values []any) models.ColumnType {
	if len(values) == 0 {
		return models.ColumnTypeUnknown
	}

	counts := map[models.ColumnType]int{}
	for _, v := range values {
		switch {
		case isBooleanValue(v):
			counts[models.ColumnTypeBoolean]++
		case isNumericValue(v):
			counts[models.ColumnTypeNumber]++
		case isDatetimeValue(v):
			counts[models.ColumnTypeDatetime]++
		default:
			counts[models.ColumnTypeString]++
		}
	}

	total := len(values)
	order := []models.ColumnType{
		models.ColumnTypeBoolean,
		models.ColumnTypeNumber,
		models.ColumnTypeDatetime,
		models.ColumnTypeString,
	}
	for _, t := range order {
		if counts[t]*2 > total {
			return t
		}
	}

	// No strict majority: default to string.
	return models.ColumnTypeString
}

func isBooleanValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return true
	case string:
		lower := strings.ToLower(strings.TrimSpace(t))
		return lower == "true" || lower == "false"
	default:
		return false
	}
}

func isNumericValue(v any) bool {
	_, ok := parseNumeric(v)
	return ok
}

// parseNumeric interprets a value as a float after stripping thousands
// separators and a single leading currency symbol.
func parseNumeric(v any) (float64, bool) {
	switch t := v.(type) {
	case bool:
		return 0, false
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, sym := range currencySymbols {
			if strings.HasPrefix(s, sym) {
				s = strings.TrimPrefix(s, sym)
				break
			}
		}
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isDatetimeValue(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case string:
		for _, re := range datetimePatterns {
			if re.MatchString(t) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// setNumericStats computes min/max/mean over the parseable values.
func setNumericStats(profile *models.ColumnProfile, values []any) {
	var nums []float64
	for _, v := range values {
		if f, ok := parseNumeric(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return
	}

	minV, maxV, sum := nums[0], nums[0], 0.0
	for _, f := range nums {
		if f < minV {
			minV = f
		}
		if f > maxV {
			maxV = f
		}
		sum += f
	}
	mean := sum / float64(len(nums))

	profile.MinValue = &minV
	profile.MaxValue = &maxV
	profile.MeanValue = &mean
}

// setLengthStats computes string-length stats over string-rendered values.
func setLengthStats(profile *models.ColumnProfile, rendered []string) {
	if len(rendered) == 0 {
		return
	}

	minL, maxL, sum := len(rendered[0]), len(rendered[0]), 0
	for _, s := range rendered {
		l := len(s)
		if l < minL {
			minL = l
		}
		if l > maxL {
			maxL = l
		}
		sum += l
	}
	avg := float64(sum) / float64(len(rendered))

	profile.MinLength = &minL
	profile.MaxLength = &maxL
	profile.AvgLength = &avg
}

// detectPatterns returns the pattern names matched by a strict majority of a
// bounded sample of values. Ties cannot occur because the threshold is a
// strict majority.
func detectPatterns(rendered []string) []string {
	if len(rendered) == 0 {
		return nil
	}

	sample := rendered
	if len(sample) > patternSampleSize {
		sample = sample[:patternSampleSize]
	}

	var detected []string
	for _, name := range []string{
		models.PatternEmail,
		models.PatternPhone,
		models.PatternCurrency,
		models.PatternDateISO,
		models.PatternUUID,
		models.PatternClickID,
		models.PatternURL,
	} {
		re := samplePatterns[name]
		matches := 0
		for _, s := range sample {
			if re.MatchString(s) {
				matches++
			}
		}
		if matches*2 > len(sample) {
			detected = append(detected, name)
		}
	}

	return detected
}

// sampleDistinct keeps up to n distinct values in first-occurrence order.
func sampleDistinct(rendered []string, n int) []string {
	seen := make(map[string]struct{}, n)
	var sample []string
	for _, s := range rendered {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sample = append(sample, s)
		if len(sample) >= n {
			break
		}
	}
	return sample
}
