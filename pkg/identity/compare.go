package identity

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Similarity thresholds for fuzzy field comparison. Emails within two edits
// are considered close (typo tolerance); names use Jaro-Winkler with the
// conventional 0.88 agreement threshold.
const (
	emailEditThreshold      = 2
	nameSimilarityThreshold = 0.88

	// Winkler's prefix bonus applies above this Jaro score, over at most
	// the first four characters.
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// Agreement is the per-field comparison level fed to the match model.
type Agreement int

const (
	// AgreementMissing means at least one side has no value for the field.
	AgreementMissing Agreement = iota
	// AgreementDisagree means both sides have values that do not match.
	AgreementDisagree
	// AgreementClose means the values are within the fuzzy tolerance.
	AgreementClose
	// AgreementExact means the values are identical.
	AgreementExact
)

// compareExact compares token-like fields (phone, hashed card, loyalty id)
// where only identity counts.
func compareExact(a, b string) Agreement {
	switch {
	case a == "" || b == "":
		return AgreementMissing
	case a == b:
		return AgreementExact
	default:
		return AgreementDisagree
	}
}

// compareEmail tolerates small typos via edit distance.
func compareEmail(a, b string) Agreement {
	switch {
	case a == "" || b == "":
		return AgreementMissing
	case a == b:
		return AgreementExact
	case levenshtein.ComputeDistance(a, b) <= emailEditThreshold:
		return AgreementClose
	default:
		return AgreementDisagree
	}
}

// compareName uses Jaro-Winkler similarity, which favors shared prefixes the
// way human name variants usually do.
func compareName(a, b string) Agreement {
	switch {
	case a == "" || b == "":
		return AgreementMissing
	case a == b:
		return AgreementExact
	case smetrics.JaroWinkler(a, b, jaroWinklerBoostThreshold, jaroWinklerPrefixSize) >= nameSimilarityThreshold:
		return AgreementClose
	default:
		return AgreementDisagree
	}
}
