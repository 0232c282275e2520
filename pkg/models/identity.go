package models

import (
	"slices"
	"strings"
)

// ============================================================================
// Fragment Types
// ============================================================================

// FragmentType identifies the kind of identity clue a fragment carries.
// Some types (email, phone, hashed_card) are strong identifiers, while
// others (cookie_id, device_id) are weaker and need additional signals.
type FragmentType string

const (
	FragmentTypeEmail      FragmentType = "email"
	FragmentTypePhone      FragmentType = "phone"
	FragmentTypeHashedCard FragmentType = "hashed_card"
	FragmentTypeLoyaltyID  FragmentType = "loyalty_id"
	FragmentTypeDeviceID   FragmentType = "device_id"
	FragmentTypeCookieID   FragmentType = "cookie_id"
	FragmentTypeCustomerID FragmentType = "customer_id"

	// FragmentTypeFullName is only ever used in combination with another
	// fragment type during probabilistic matching; names alone are too
	// ambiguous for exact clustering.
	FragmentTypeFullName FragmentType = "full_name"

	// FragmentTypeNameZip is the name + ZIP composite used as a medium
	// strength matching signal.
	FragmentTypeNameZip FragmentType = "full_name_zip"
)

// ValidFragmentTypes contains all valid fragment type values.
var ValidFragmentTypes = []FragmentType{
	FragmentTypeEmail,
	FragmentTypePhone,
	FragmentTypeHashedCard,
	FragmentTypeLoyaltyID,
	FragmentTypeDeviceID,
	FragmentTypeCookieID,
	FragmentTypeCustomerID,
	FragmentTypeFullName,
	FragmentTypeNameZip,
}

// IsValidFragmentType checks if the given type is valid.
func IsValidFragmentType(t FragmentType) bool {
	return slices.Contains(ValidFragmentTypes, t)
}

// ============================================================================
// Identity Fragment
// ============================================================================

// IdentityFragment is a single identity clue extracted from one record of a
// source system. Two fragments with the same type and the same value ignoring
// case are the same fragment for clustering purposes.
type IdentityFragment struct {
	FragmentType  FragmentType `json:"fragment_type"`
	FragmentValue string       `json:"fragment_value"`
	SourceSystem  string       `json:"source_system,omitempty"`

	// Confidence is 1.0 for exact-capture fields, lower for inferred ones.
	Confidence float64 `json:"confidence"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// FragmentKey is the identity of a fragment for deduplication and clustering.
type FragmentKey struct {
	Type  FragmentType
	Value string
}

// Key returns the (type, lowercased trimmed value) identity of this fragment.
// Fragments with equal keys are duplicates regardless of literal case.
func (f *IdentityFragment) Key() FragmentKey {
	return FragmentKey{
		Type:  f.FragmentType,
		Value: strings.ToLower(strings.TrimSpace(f.FragmentValue)),
	}
}

// Equal reports whether two fragments are the same under the clustering
// identity rule.
func (f *IdentityFragment) Equal(other *IdentityFragment) bool {
	if other == nil {
		return false
	}
	return f.Key() == other.Key()
}

// ============================================================================
// Resolved Identity
// ============================================================================

// ResolvedIdentity is a unified customer identity resolved from fragments
// across source systems. It is created only by a resolution run and never
// mutated afterwards; every run re-derives identities from its input batch.
// GlobalID is stable within a run but not across runs unless a caller
// persists it.
type ResolvedIdentity struct {
	GlobalID string `json:"global_id"`

	// Fragments is the deduplicated union of all fragments extracted from
	// the cluster's member records, in input order.
	Fragments []*IdentityFragment `json:"fragments"`

	// MatchProbability is 1.0 for deterministic clusters and the cluster
	// level probability estimate for probabilistic clusters.
	MatchProbability float64 `json:"match_probability"`
}

// Emails returns all email fragment values in this identity.
func (r *ResolvedIdentity) Emails() []string {
	return r.valuesOfType(FragmentTypeEmail)
}

// Phones returns all phone fragment values in this identity.
func (r *ResolvedIdentity) Phones() []string {
	return r.valuesOfType(FragmentTypePhone)
}

// HasFragmentType returns true if at least one fragment of the given type
// exists in this identity.
func (r *ResolvedIdentity) HasFragmentType(t FragmentType) bool {
	for _, f := range r.Fragments {
		if f.FragmentType == t {
			return true
		}
	}
	return false
}

func (r *ResolvedIdentity) valuesOfType(t FragmentType) []string {
	var values []string
	for _, f := range r.Fragments {
		if f.FragmentType == t {
			values = append(values, f.FragmentValue)
		}
	}
	return values
}
