// Package logging masks customer PII and credentials before values reach
// log output. Raw identity values must never appear in logs; mask first.
package logging

import (
	"regexp"
	"strings"

	"github.com/datablogin/GrowthNav/pkg/models"
)

const (
	// MaxValueLogLength is the maximum length of a raw value to log
	MaxValueLogLength = 64
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match email addresses embedded in free text (error
	// messages, upstream API responses)
	emailLogPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Pattern to match potential API keys
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|key)=[A-Za-z0-9-_]{20,}`)

	// Pattern to match bearer tokens
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9._-]+`)
)

// MaskEmail keeps the first character of the local part and the domain.
// "jane.doe@example.com" becomes "j***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return RedactedText
	}
	return email[:1] + "***" + email[at:]
}

// MaskPhone keeps the last four digits. "5551234567" becomes "******4567".
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return RedactedText
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskValue masks a fragment value according to its type. Hashed card
// values are already opaque but still get truncated so full hashes cannot
// be correlated across log lines.
func MaskValue(fragmentType models.FragmentType, value string) string {
	switch fragmentType {
	case models.FragmentTypeEmail:
		return MaskEmail(value)
	case models.FragmentTypePhone:
		return MaskPhone(value)
	case models.FragmentTypeHashedCard:
		if len(value) > 8 {
			return value[:8] + "..."
		}
		return value
	case models.FragmentTypeFullName, models.FragmentTypeNameZip:
		return RedactedText
	default:
		return TruncateString(value, MaxValueLogLength)
	}
}

// SanitizeError sanitizes error messages that might contain customer data
// or credentials. Use this before logging any error from upstream calls.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := emailLogPattern.ReplaceAllStringFunc(err.Error(), MaskEmail)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)

	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
