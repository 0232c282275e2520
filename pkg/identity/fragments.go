// Package identity extracts identity fragments from raw source records and
// resolves them into unified cross-system customer identities.
package identity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/datablogin/GrowthNav/pkg/models"
)

// emailPattern validates the local-part@domain.tld shape. Values that fail
// validation contribute no email fragment rather than polluting clusters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// nonDigitPattern strips everything but digits from phone values.
var nonDigitPattern = regexp.MustCompile(`\D`)

// Recognized source field aliases, checked in order; the first present,
// non-empty field wins.
var (
	emailAliases      = []string{"email", "email_address"}
	phoneAliases      = []string{"phone", "phone_number"}
	firstNameAliases  = []string{"first_name", "fname"}
	lastNameAliases   = []string{"last_name", "lname"}
	hashedCardAliases = []string{"hashed_card", "hashed_cc", "cc_hash", "card"}
	loyaltyAliases    = []string{"loyalty_id", "member_id"}
	customerIDAliases = []string{"customer_id"}
	zipAliases        = []string{"zip", "zip_code", "postal_code"}
)

// SourceRecord is one raw row tagged with the system it came from.
type SourceRecord struct {
	Source string
	Fields map[string]any
}

// normalizedRecord holds the per-record identity fields after alias
// resolution and normalization. Empty string means "not present"; a record
// missing a field simply contributes no fragment of that type.
type normalizedRecord struct {
	source     string
	email      string
	phone      string
	firstName  string
	lastName   string
	hashedCard string
	loyaltyID  string
	customerID string
	zip        string
}

// fullName returns the combined lowercase name, or "" when absent.
func (n *normalizedRecord) fullName() string {
	return strings.TrimSpace(n.firstName + " " + n.lastName)
}

// nameZip returns the name+zip composite key, or "" when either part is absent.
func (n *normalizedRecord) nameZip() string {
	name := n.fullName()
	if name == "" || n.zip == "" {
		return ""
	}
	return name + "|" + n.zip
}

// normalizeRecord applies the shared normalization rules to one raw record.
// Both linkers go through this path so deterministic and probabilistic
// results stay comparable.
func normalizeRecord(record map[string]any, source string) normalizedRecord {
	return normalizedRecord{
		source:     source,
		email:      normalizeEmail(firstPresent(record, emailAliases)),
		phone:      NormalizePhone(firstPresent(record, phoneAliases)),
		firstName:  normalizeName(firstPresent(record, firstNameAliases)),
		lastName:   normalizeName(firstPresent(record, lastNameAliases)),
		hashedCard: strings.TrimSpace(firstPresent(record, hashedCardAliases)),
		loyaltyID:  strings.TrimSpace(firstPresent(record, loyaltyAliases)),
		customerID: strings.TrimSpace(firstPresent(record, customerIDAliases)),
		zip:        strings.TrimSpace(firstPresent(record, zipAliases)),
	}
}

// firstPresent returns the first non-empty string value among the aliases.
func firstPresent(record map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := record[alias]; ok && v != nil {
			if s, ok := v.(string); ok {
				if s != "" {
					return s
				}
				continue
			}
			// Loyalty numbers and customer ids arrive as JSON numbers
			// from some connectors; render them as integral strings.
			if s := renderScalar(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func renderScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// normalizeEmail lowercases, trims, and validates an email address.
// Returns "" for values that do not look like an email at all.
func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// NormalizePhone strips non-digits and keeps the last 10 digits. Values with
// fewer than 10 digits are dropped (returned as ""): this is a US-centric
// policy, and dropping short numbers from linking is preferred over
// mis-linking them.
func NormalizePhone(phone string) string {
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if len(digits) < 10 {
		return ""
	}
	return digits[len(digits)-10:]
}

// normalizeName lowercases and trims a name part.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// fragments converts the normalized fields into typed identity fragments.
// Order is fixed so fragment lists are reproducible.
func (n *normalizedRecord) fragments() []*models.IdentityFragment {
	var frags []*models.IdentityFragment

	add := func(t models.FragmentType, value string) {
		if value == "" {
			return
		}
		frags = append(frags, &models.IdentityFragment{
			FragmentType:  t,
			FragmentValue: value,
			SourceSystem:  n.source,
			Confidence:    1.0,
		})
	}

	add(models.FragmentTypeEmail, n.email)
	add(models.FragmentTypePhone, n.phone)
	add(models.FragmentTypeFullName, n.fullName())
	add(models.FragmentTypeNameZip, n.nameZip())
	add(models.FragmentTypeHashedCard, n.hashedCard)
	add(models.FragmentTypeLoyaltyID, n.loyaltyID)
	add(models.FragmentTypeCustomerID, n.customerID)

	return frags
}

// ExtractFragments extracts zero or more identity fragments from one raw
// record using the shared alias and normalization rules.
func ExtractFragments(record map[string]any, source string) []*models.IdentityFragment {
	n := normalizeRecord(record, source)
	return n.fragments()
}

// extractAll normalizes a batch of tagged records. The result preserves input
// order; both linkers consume it so extraction is applied identically.
func extractAll(records []SourceRecord) []normalizedRecord {
	normalized := make([]normalizedRecord, len(records))
	for i, r := range records {
		normalized[i] = normalizeRecord(r.Fields, r.Source)
	}
	return normalized
}
