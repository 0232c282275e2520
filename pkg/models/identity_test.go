package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityFragment_KeyIsCaseInsensitive(t *testing.T) {
	a := &IdentityFragment{FragmentType: FragmentTypeEmail, FragmentValue: "Jane@Example.com", SourceSystem: "web"}
	b := &IdentityFragment{FragmentType: FragmentTypeEmail, FragmentValue: "jane@example.com ", SourceSystem: "pos"}

	// Source system and confidence never participate in fragment identity.
	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
}

func TestIdentityFragment_DifferentTypesSameValue(t *testing.T) {
	a := &IdentityFragment{FragmentType: FragmentTypeLoyaltyID, FragmentValue: "12345"}
	b := &IdentityFragment{FragmentType: FragmentTypeCustomerID, FragmentValue: "12345"}

	assert.NotEqual(t, a.Key(), b.Key())
	assert.False(t, a.Equal(b))
}

func TestResolvedIdentity_Accessors(t *testing.T) {
	identity := &ResolvedIdentity{
		GlobalID: "g-1",
		Fragments: []*IdentityFragment{
			{FragmentType: FragmentTypeEmail, FragmentValue: "a@x.com"},
			{FragmentType: FragmentTypeEmail, FragmentValue: "b@x.com"},
			{FragmentType: FragmentTypePhone, FragmentValue: "4155550100"},
		},
	}

	assert.Equal(t, []string{"a@x.com", "b@x.com"}, identity.Emails())
	assert.Equal(t, []string{"4155550100"}, identity.Phones())
	assert.True(t, identity.HasFragmentType(FragmentTypePhone))
	assert.False(t, identity.HasFragmentType(FragmentTypeHashedCard))
}

func TestColumnProfile_Rates(t *testing.T) {
	profile := &ColumnProfile{TotalCount: 10, NullCount: 4, UniqueCount: 3}

	assert.InDelta(t, 0.4, profile.NullRate(), 0.001)
	assert.InDelta(t, 0.3, profile.UniqueRate(), 0.001)

	empty := &ColumnProfile{}
	assert.Equal(t, 0.0, empty.NullRate())
	assert.Equal(t, 0.0, empty.UniqueRate())
}

func TestIsCanonicalField(t *testing.T) {
	assert.True(t, IsCanonicalField(FieldTransactionID))
	assert.True(t, IsCanonicalField(FieldUTMCampaign))
	assert.False(t, IsCanonicalField("order_total"))
}
