package identity

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/logging"
	"github.com/datablogin/GrowthNav/pkg/models"
)

// DefaultLinkTypes are the fragment types strong enough to act as exact link
// keys on their own. Names are excluded: they are far too ambiguous for
// exact clustering. Customer ids are excluded because they are only unique
// within one source system. Callers can narrow or widen this set through
// Options.
var DefaultLinkTypes = []models.FragmentType{
	models.FragmentTypeEmail,
	models.FragmentTypePhone,
	models.FragmentTypeHashedCard,
	models.FragmentTypeLoyaltyID,
}

// Options tune deterministic resolution.
type Options struct {
	// LinkTypes are the fragment types used as exact link keys.
	// Defaults to DefaultLinkTypes when empty.
	LinkTypes []models.FragmentType
}

// DeterministicLinker clusters records that share identical normalized
// fragment values. It is always available, has no external dependency, and
// serves both as ground truth for the probabilistic linker and as the
// fallback when no match model is configured.
type DeterministicLinker struct {
	opts   Options
	logger *zap.Logger
}

// NewDeterministicLinker creates a deterministic linker.
func NewDeterministicLinker(opts Options, logger *zap.Logger) *DeterministicLinker {
	if len(opts.LinkTypes) == 0 {
		opts.LinkTypes = DefaultLinkTypes
	}
	return &DeterministicLinker{
		opts:   opts,
		logger: logger.Named("deterministic-linker"),
	}
}

// Resolve extracts fragments from the tagged records and clusters them.
// Resolution is a pure function of the input batch: no state survives the
// call, and every run re-derives its identities.
func (l *DeterministicLinker) Resolve(records []SourceRecord) []*models.ResolvedIdentity {
	fragmentSets := make([][]*models.IdentityFragment, len(records))
	for i, n := range extractAll(records) {
		fragmentSets[i] = n.fragments()
	}
	return l.ResolveFragments(fragmentSets)
}

// ResolveFragments clusters pre-extracted per-record fragment sets.
//
// For each link-key fragment type independently, record indices sharing an
// identical normalized value are unioned. Union-find makes the closure
// transitive: if record A shares an email with B and B shares a phone with
// C, all three land in one identity even though A and C share nothing
// directly.
func (l *DeterministicLinker) ResolveFragments(fragmentSets [][]*models.IdentityFragment) []*models.ResolvedIdentity {
	if len(fragmentSets) == 0 {
		return []*models.ResolvedIdentity{}
	}

	uf := newUnionFind(len(fragmentSets))

	linkable := make(map[models.FragmentType]bool, len(l.opts.LinkTypes))
	for _, t := range l.opts.LinkTypes {
		linkable[t] = true
	}

	// Group record indices by (type, normalized value).
	groups := make(map[models.FragmentKey][]int)
	for i, frags := range fragmentSets {
		for _, f := range frags {
			if !linkable[f.FragmentType] {
				continue
			}
			key := f.Key()
			groups[key] = append(groups[key], i)
		}
	}

	for key, indices := range groups {
		if len(indices) < 2 {
			continue
		}
		// Raw identity values never reach the log; mask first.
		l.logger.Debug("Linking records on shared value",
			zap.String("fragment_type", string(key.Type)),
			zap.String("value", logging.MaskValue(key.Type, key.Value)),
			zap.Int("records", len(indices)))
		for i := 1; i < len(indices); i++ {
			uf.union(indices[0], indices[i])
		}
	}

	clusters := uf.clusters()
	identities := make([]*models.ResolvedIdentity, 0, len(clusters))
	for _, memberIdx := range clusters {
		identities = append(identities, &models.ResolvedIdentity{
			GlobalID:         uuid.NewString(),
			Fragments:        collectFragments(fragmentSets, memberIdx),
			MatchProbability: 1.0, // exact matches only
		})
	}

	l.logger.Info("Deterministic resolution complete",
		zap.Int("records", len(fragmentSets)),
		zap.Int("identities", len(identities)))

	return identities
}

// collectFragments gathers the deduplicated union of all fragments across
// the cluster's member records, in input order. The policy is "keep one of
// each distinct fragment", not "first source wins per type": repeated values
// are collapsed by the (type, lowercased value) identity rule, but distinct
// values of the same type all survive.
func collectFragments(fragmentSets [][]*models.IdentityFragment, memberIdx []int) []*models.IdentityFragment {
	var fragments []*models.IdentityFragment
	seen := make(map[models.FragmentKey]bool)

	for _, idx := range memberIdx {
		for _, f := range fragmentSets[idx] {
			key := f.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			fragments = append(fragments, f)
		}
	}
	return fragments
}
