// Package prompts builds reasoning-service prompts for schema discovery.
package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/datablogin/GrowthNav/pkg/models"
)

// maxSampleRows bounds how many sample rows are embedded to keep prompts small.
const maxSampleRows = 5

// maxSampleValues bounds how many sample values are shown per source field.
const maxSampleValues = 5

// sourceFieldContext is the per-column summary embedded into the prompt.
type sourceFieldContext struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	NullRate     float64  `json:"null_rate"`
	UniqueValues int      `json:"unique_values"`
	SampleValues []string `json:"sample_values,omitempty"`
	Patterns     []string `json:"patterns,omitempty"`
}

// BuildSchemaMappingPrompt creates the prompt asking the reasoning service to
// map source columns onto the canonical conversion schema. It includes the
// per-column profiles, the full target schema with purpose descriptions, a
// bounded set of sample rows, and the confidence rubric plus the exact JSON
// response contract.
func BuildSchemaMappingPrompt(
	profiles map[string]*models.ColumnProfile,
	sampleRows []map[string]any,
	sourceContext string,
) string {
	// Sorted field order keeps prompts reproducible across runs.
	fields := make([]string, 0, len(profiles))
	for name := range profiles {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	sourceSchema := make([]sourceFieldContext, 0, len(fields))
	for _, name := range fields {
		p := profiles[name]
		samples := p.SampleValues
		if len(samples) > maxSampleValues {
			samples = samples[:maxSampleValues]
		}
		sourceSchema = append(sourceSchema, sourceFieldContext{
			Name:         name,
			Type:         string(p.InferredType),
			NullRate:     p.NullRate(),
			UniqueValues: p.UniqueCount,
			SampleValues: samples,
			Patterns:     p.DetectedPatterns,
		})
	}

	if len(sampleRows) > maxSampleRows {
		sampleRows = sampleRows[:maxSampleRows]
	}
	if sourceContext == "" {
		sourceContext = "Unknown data source"
	}

	sourceJSON, _ := json.MarshalIndent(sourceSchema, "", "  ")
	targetJSON, _ := json.MarshalIndent(models.CanonicalSchema, "", "  ")
	samplesJSON, _ := json.MarshalIndent(sampleRows, "", "  ")

	var prompt strings.Builder

	prompt.WriteString("You are a data integration expert. Analyze the source schema and suggest how fields should map to the target conversion schema.\n\n")
	prompt.WriteString(fmt.Sprintf("Context: %s\n\n", sourceContext))

	prompt.WriteString("SOURCE SCHEMA:\n")
	prompt.Write(sourceJSON)
	prompt.WriteString("\n\nTARGET CONVERSION SCHEMA:\n")
	prompt.Write(targetJSON)
	prompt.WriteString("\n\nSAMPLE DATA:\n")
	prompt.Write(samplesJSON)

	prompt.WriteString(fmt.Sprintf(`

IMPORTANT NOTES:
- %s are REQUIRED fields for Customer Lifetime Value (CLV) analysis
- Look for common field name patterns (e.g., "order_id" -> "transaction_id", "total" -> "value")
- Consider data types and detected patterns when suggesting mappings
- If a source field doesn't clearly map to any target field, set target_field to null
- Confidence should be:
  * 0.9-1.0: Exact or near-exact name match with correct data type
  * 0.7-0.9: Strong semantic match (e.g., "total_amount" -> "value")
  * 0.5-0.7: Reasonable match based on type/patterns but ambiguous name
  * 0.3-0.5: Weak match, might be correct but uncertain
  * 0.0-0.3: Very uncertain or no clear match

Respond with a JSON array of mapping suggestions. Each suggestion must have:
- source_field: name of the source field
- target_field: name of the target conversion field (or null if no match)
- confidence: float between 0.0 and 1.0
- reason: brief explanation of the mapping decision

Example response format:
[
  {"source_field": "order_id", "target_field": "transaction_id", "confidence": 0.95, "reason": "Field name strongly suggests transaction identifier"},
  {"source_field": "internal_code", "target_field": null, "confidence": 0.1, "reason": "No clear mapping to conversion schema"}
]

Respond with ONLY the JSON array, no other text.`,
		strings.Join(models.RequiredConversionFields, ", ")))

	return prompt.String()
}
