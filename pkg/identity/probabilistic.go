package identity

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datablogin/GrowthNav/pkg/apperrors"
	"github.com/datablogin/GrowthNav/pkg/logging"
	"github.com/datablogin/GrowthNav/pkg/models"
)

// DefaultMatchThreshold is the minimum match probability at which a record
// pair is accepted as an edge in the identity graph.
const DefaultMatchThreshold = 0.9

// PairComparison is the field-by-field agreement vector for one candidate
// record pair. Indices refer to the record batch passed to Resolve.
type PairComparison struct {
	LeftIndex  int
	RightIndex int

	Email      Agreement
	Phone      Agreement
	Name       Agreement
	HashedCard Agreement
	LoyaltyID  Agreement
}

// PairPrediction is the model's match probability for one compared pair.
type PairPrediction struct {
	LeftIndex   int
	RightIndex  int
	Probability float64
}

// MatchModel scores candidate pairs. Implementations own the statistical
// machinery (weight estimation, training state); the linker owns candidate
// generation, comparison, and clustering. Predictions must cover every
// submitted pair.
type MatchModel interface {
	EstimateMatches(ctx context.Context, pairs []PairComparison) ([]PairPrediction, error)
}

// ProbabilisticOptions tune probabilistic resolution.
type ProbabilisticOptions struct {
	// MatchThreshold is the minimum probability for accepting a pair.
	// Defaults to DefaultMatchThreshold when zero.
	MatchThreshold float64
}

// ProbabilisticLinker clusters records whose field agreement patterns score
// above a probability threshold under an injected match model. It shares
// normalization, fragment extraction, and union-find clustering with the
// deterministic linker, so the two differ only in how edges are found.
type ProbabilisticLinker struct {
	model  MatchModel
	opts   ProbabilisticOptions
	logger *zap.Logger
}

// NewProbabilisticLinker creates a probabilistic linker. A nil model is
// allowed at construction; Resolve reports the linker unavailable.
func NewProbabilisticLinker(model MatchModel, opts ProbabilisticOptions, logger *zap.Logger) *ProbabilisticLinker {
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = DefaultMatchThreshold
	}
	return &ProbabilisticLinker{
		model:  model,
		opts:   opts,
		logger: logger.Named("probabilistic-linker"),
	}
}

// Available reports whether a match model is configured.
func (l *ProbabilisticLinker) Available() bool {
	return l.model != nil
}

// Resolve extracts fragments, generates candidate pairs by blocking,
// compares them, scores them with the match model, and clusters accepted
// pairs transitively.
//
// A cluster's MatchProbability is the mean probability of its accepted
// edges. Singletons carry 1.0: a record linked to nothing was not matched
// uncertainly, it was not matched at all.
func (l *ProbabilisticLinker) Resolve(ctx context.Context, records []SourceRecord) ([]*models.ResolvedIdentity, error) {
	if l.model == nil {
		return nil, apperrors.ErrProbabilisticUnavailable
	}
	if len(records) == 0 {
		return []*models.ResolvedIdentity{}, nil
	}

	normalized := extractAll(records)
	pairs := candidatePairs(normalized)

	comparisons := make([]PairComparison, len(pairs))
	for i, p := range pairs {
		comparisons[i] = comparePair(&normalized[p[0]], &normalized[p[1]], p[0], p[1])
		// Raw identity values never reach the log; mask first.
		l.logger.Debug("Comparing candidate pair",
			zap.Int("left", p[0]),
			zap.Int("right", p[1]),
			zap.String("left_email", logging.MaskEmail(normalized[p[0]].email)),
			zap.String("right_email", logging.MaskEmail(normalized[p[1]].email)))
	}

	predictions, err := l.model.EstimateMatches(ctx, comparisons)
	if err != nil {
		return nil, err
	}

	uf := newUnionFind(len(records))
	type edge struct {
		left, right int
		probability float64
	}
	var accepted []edge
	for _, pred := range predictions {
		if pred.Probability < l.opts.MatchThreshold {
			continue
		}
		if pred.LeftIndex < 0 || pred.LeftIndex >= len(records) ||
			pred.RightIndex < 0 || pred.RightIndex >= len(records) {
			continue
		}
		uf.union(pred.LeftIndex, pred.RightIndex)
		accepted = append(accepted, edge{pred.LeftIndex, pred.RightIndex, pred.Probability})
	}

	// Accumulate per-cluster edge probabilities keyed by root.
	probSum := make(map[int]float64)
	probCount := make(map[int]int)
	for _, e := range accepted {
		root := uf.find(e.left)
		probSum[root] += e.probability
		probCount[root]++
	}

	fragmentSets := make([][]*models.IdentityFragment, len(records))
	for i := range normalized {
		fragmentSets[i] = normalized[i].fragments()
	}

	clusters := uf.clusters()
	identities := make([]*models.ResolvedIdentity, 0, len(clusters))
	for _, memberIdx := range clusters {
		probability := 1.0
		if root := uf.find(memberIdx[0]); probCount[root] > 0 {
			probability = probSum[root] / float64(probCount[root])
		}
		identities = append(identities, &models.ResolvedIdentity{
			GlobalID:         uuid.NewString(),
			Fragments:        collectFragments(fragmentSets, memberIdx),
			MatchProbability: probability,
		})
	}

	l.logger.Info("Probabilistic resolution complete",
		zap.Int("records", len(records)),
		zap.Int("candidate_pairs", len(pairs)),
		zap.Int("accepted_pairs", len(accepted)),
		zap.Int("identities", len(identities)))

	return identities, nil
}

// candidatePairs generates record pairs worth comparing. Records are blocked
// on each strong key plus the full name: only pairs sharing at least one
// block are compared, which keeps the pair count far below the quadratic
// worst case on realistic data. Pairs are deduplicated and ordered.
func candidatePairs(normalized []normalizedRecord) [][2]int {
	blocks := make(map[string][]int)
	addBlock := func(prefix, value string, idx int) {
		if value == "" {
			return
		}
		key := prefix + ":" + value
		blocks[key] = append(blocks[key], idx)
	}

	for i := range normalized {
		n := &normalized[i]
		addBlock("email", n.email, i)
		addBlock("phone", n.phone, i)
		addBlock("card", n.hashedCard, i)
		addBlock("loyalty", n.loyaltyID, i)
		addBlock("name", n.fullName(), i)
	}

	seen := make(map[[2]int]bool)
	var pairs [][2]int
	for _, indices := range blocks {
		for i := 0; i < len(indices); i++ {
			for j := i + 1; j < len(indices); j++ {
				pair := [2]int{indices[i], indices[j]}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				if seen[pair] {
					continue
				}
				seen[pair] = true
				pairs = append(pairs, pair)
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// comparePair builds the agreement vector for one candidate pair using the
// shared normalized fields.
func comparePair(a, b *normalizedRecord, leftIdx, rightIdx int) PairComparison {
	return PairComparison{
		LeftIndex:  leftIdx,
		RightIndex: rightIdx,
		Email:      compareEmail(a.email, b.email),
		Phone:      compareExact(a.phone, b.phone),
		Name:       compareName(a.fullName(), b.fullName()),
		HashedCard: compareExact(a.hashedCard, b.hashedCard),
		LoyaltyID:  compareExact(a.loyaltyID, b.loyaltyID),
	}
}
