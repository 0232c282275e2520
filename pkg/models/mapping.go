package models

// ============================================================================
// Mapping Suggestions
// ============================================================================

// MappingSuggestion is a suggested mapping from a source field to a field of
// the canonical conversion schema. A nil TargetField means "no confident
// mapping"; such suggestions are still emitted so callers can detect unmapped
// columns rather than having them silently dropped.
type MappingSuggestion struct {
	SourceField string `json:"source_field"`

	// TargetField is the canonical field name, or nil when the source field
	// does not map to anything.
	TargetField *string `json:"target_field"`

	// Confidence is in [0.0, 1.0].
	Confidence float64 `json:"confidence"`

	// Reason is a human-readable explanation of the mapping decision.
	Reason string `json:"reason"`

	// SampleValues are copied from the column profile for audit.
	SampleValues []string `json:"sample_values,omitempty"`
}

// IsMapped returns true if this suggestion carries a target field.
func (s *MappingSuggestion) IsMapped() bool {
	return s.TargetField != nil && *s.TargetField != ""
}

// ============================================================================
// Canonical Conversion Schema
// ============================================================================

// Canonical conversion field names. Every source system's columns are
// ultimately mapped onto this fixed set.
const (
	FieldTransactionID   = "transaction_id"
	FieldUserID          = "user_id"
	FieldTimestamp       = "timestamp"
	FieldValue           = "value"
	FieldCurrency        = "currency"
	FieldQuantity        = "quantity"
	FieldProductID       = "product_id"
	FieldProductName     = "product_name"
	FieldProductCategory = "product_category"
	FieldLocationID      = "location_id"
	FieldLocationName    = "location_name"
	FieldGCLID           = "gclid"
	FieldFBCLID          = "fbclid"
	FieldUTMSource       = "utm_source"
	FieldUTMMedium       = "utm_medium"
	FieldUTMCampaign     = "utm_campaign"
)

// CanonicalField describes one field of the conversion schema for reasoning
// prompts and documentation.
type CanonicalField struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CanonicalSchema enumerates the conversion schema in a fixed order so that
// prompts and reports are reproducible.
var CanonicalSchema = []CanonicalField{
	{FieldTransactionID, "Unique identifier for the transaction/purchase (REQUIRED for CLV)"},
	{FieldUserID, "Unique identifier for the customer/user"},
	{FieldTimestamp, "Date and time of the conversion event (REQUIRED for CLV)"},
	{FieldValue, "Monetary value of the conversion (REQUIRED for CLV)"},
	{FieldCurrency, "Three-letter currency code (e.g., USD, EUR)"},
	{FieldQuantity, "Number of items/units in the conversion"},
	{FieldProductID, "Unique identifier for the product/service"},
	{FieldProductName, "Human-readable product/service name"},
	{FieldProductCategory, "Category or type of product/service"},
	{FieldLocationID, "Unique identifier for the business location"},
	{FieldLocationName, "Human-readable location name"},
	{FieldGCLID, "Google Click ID for attribution"},
	{FieldFBCLID, "Facebook Click ID for attribution"},
	{FieldUTMSource, "UTM source parameter for attribution"},
	{FieldUTMMedium, "UTM medium parameter for attribution"},
	{FieldUTMCampaign, "UTM campaign parameter for attribution"},
}

// RequiredConversionFields are the canonical fields CLV analysis cannot work
// without.
var RequiredConversionFields = []string{FieldTransactionID, FieldTimestamp, FieldValue}

// IsCanonicalField checks if the given name is part of the conversion schema.
func IsCanonicalField(name string) bool {
	for _, f := range CanonicalSchema {
		if f.Name == name {
			return true
		}
	}
	return false
}
