package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareEmail(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected Agreement
	}{
		{name: "identical", a: "jane@x.com", b: "jane@x.com", expected: AgreementExact},
		{name: "one typo", a: "jane@x.com", b: "jame@x.com", expected: AgreementClose},
		{name: "two edits", a: "jane@x.com", b: "jamey@x.com", expected: AgreementClose},
		{name: "different address", a: "jane@x.com", b: "robert@y.org", expected: AgreementDisagree},
		{name: "left missing", a: "", b: "jane@x.com", expected: AgreementMissing},
		{name: "both missing", a: "", b: "", expected: AgreementMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, compareEmail(tt.a, tt.b))
		})
	}
}

func TestCompareExact(t *testing.T) {
	assert.Equal(t, AgreementExact, compareExact("4155550100", "4155550100"))
	assert.Equal(t, AgreementDisagree, compareExact("4155550100", "4155550101"))
	assert.Equal(t, AgreementMissing, compareExact("", "4155550100"))
}

func TestCompareName(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected Agreement
	}{
		{name: "identical", a: "jane doe", b: "jane doe", expected: AgreementExact},
		// Jaro-Winkler rewards the long shared prefix.
		{name: "prefix variant", a: "jonathan smith", b: "jonathon smith", expected: AgreementClose},
		{name: "transposition", a: "martha", b: "marhta", expected: AgreementClose},
		{name: "different person", a: "jane doe", b: "robert roe", expected: AgreementDisagree},
		{name: "left missing", a: "", b: "jane doe", expected: AgreementMissing},
		{name: "both missing", a: "", b: "", expected: AgreementMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, compareName(tt.a, tt.b))
		})
	}
}
