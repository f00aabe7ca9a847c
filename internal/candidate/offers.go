package candidate

import (
	"math/rand/v2"
	"slices"

	"jobmate/recruitment-service/internal/apperr"
)

// MaxOffersPerCandidate bounds how many offers a new candidate is assigned.
const MaxOffersPerCandidate = 3

// OfferSelector picks the offers assigned to a new candidate.
type OfferSelector struct {
	// intN returns a uniform int in [0, n). Must be safe for concurrent use.
	intN func(n int) int
}

// NewOfferSelector returns a selector backed by the global math/rand/v2
// source. A non-nil intN replaces it, e.g. a seeded source in tests.
func NewOfferSelector(intN func(n int) int) *OfferSelector {
	if intN == nil {
		intN = rand.IntN
	}
	return &OfferSelector{intN: intN}
}

// Select draws k uniformly from 1..MaxOffersPerCandidate, caps it at
// len(ids), and returns k distinct ids using a partial Fisher–Yates shuffle
// over a copy of ids.
func (s *OfferSelector) Select(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, apperr.Server("No job offers available in the system")
	}

	k := min(s.intN(MaxOffersPerCandidate)+1, len(ids))

	pool := slices.Clone(ids)
	for i := 0; i < k; i++ {
		j := i + s.intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}
