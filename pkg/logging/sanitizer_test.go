package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/datablogin/GrowthNav/pkg/models"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "standard address",
			input:    "jane.doe@example.com",
			expected: "j***@example.com",
		},
		{
			name:     "single character local part",
			input:    "j@example.com",
			expected: "j***@example.com",
		},
		{
			name:     "not an email",
			input:    "plainvalue",
			expected: RedactedText,
		},
		{
			name:     "empty string",
			input:    "",
			expected: RedactedText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskEmail(tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMaskPhone(t *testing.T) {
	got := MaskPhone("5551234567")
	if got != "******4567" {
		t.Errorf("expected ******4567, got %q", got)
	}

	if MaskPhone("123") != RedactedText {
		t.Errorf("short values must be fully redacted")
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		name         string
		fragmentType models.FragmentType
		input        string
		expected     string
	}{
		{
			name:         "email keeps domain",
			fragmentType: models.FragmentTypeEmail,
			input:        "jane@example.com",
			expected:     "j***@example.com",
		},
		{
			name:         "phone keeps last four",
			fragmentType: models.FragmentTypePhone,
			input:        "5551234567",
			expected:     "******4567",
		},
		{
			name:         "hashed card truncated",
			fragmentType: models.FragmentTypeHashedCard,
			input:        "a1b2c3d4e5f6a7b8c9d0",
			expected:     "a1b2c3d4...",
		},
		{
			name:         "name fully redacted",
			fragmentType: models.FragmentTypeFullName,
			input:        "jane doe",
			expected:     RedactedText,
		},
		{
			name:         "name zip fully redacted",
			fragmentType: models.FragmentTypeNameZip,
			input:        "jane doe|94110",
			expected:     RedactedText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskValue(tt.fragmentType, tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeError(t *testing.T) {
	err := errors.New(`request failed for jane.doe@example.com with api_key=abcdefghij1234567890XYZ`)
	got := SanitizeError(err)

	if strings.Contains(got, "jane.doe@example.com") {
		t.Errorf("email leaked: %q", got)
	}
	if !strings.Contains(got, "j***@example.com") {
		t.Errorf("expected masked email in %q", got)
	}
	if strings.Contains(got, "abcdefghij1234567890XYZ") {
		t.Errorf("api key leaked: %q", got)
	}

	if SanitizeError(nil) != "" {
		t.Errorf("nil error must sanitize to empty string")
	}
}

func TestSanitizeError_BearerToken(t *testing.T) {
	err := errors.New("401 unauthorized: Bearer eyJabc.def.ghi rejected")
	got := SanitizeError(err)

	if strings.Contains(got, "eyJabc") {
		t.Errorf("token leaked: %q", got)
	}
	if !strings.Contains(got, "Bearer "+RedactedText) {
		t.Errorf("expected redacted bearer token in %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := TruncateString("abcdefghij", 4); got != "abcd..." {
		t.Errorf("expected abcd..., got %q", got)
	}
}
