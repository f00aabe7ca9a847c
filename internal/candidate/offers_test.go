package candidate_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/recruitment-service/internal/apperr"
	"jobmate/recruitment-service/internal/candidate"
)

func seeded(seed uint64) func(int) int {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).IntN
}

func TestOfferSelector_NoOffers(t *testing.T) {
	s := candidate.NewOfferSelector(nil)

	_, err := s.Select(nil)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindServer, ae.Kind)
	assert.Equal(t, "No job offers available in the system", ae.Msg)
}

func TestOfferSelector_BoundsAndDistinct(t *testing.T) {
	for _, available := range []int{1, 2, 3, 4, 10} {
		ids := make([]int64, available)
		for i := range ids {
			ids[i] = int64(100 + i)
		}
		valid := make(map[int64]bool, available)
		for _, id := range ids {
			valid[id] = true
		}

		s := candidate.NewOfferSelector(seeded(uint64(available)))
		for round := 0; round < 200; round++ {
			got, err := s.Select(ids)
			require.NoError(t, err)

			require.GreaterOrEqual(t, len(got), 1)
			require.LessOrEqual(t, len(got), candidate.MaxOffersPerCandidate)
			require.LessOrEqual(t, len(got), available)

			seen := make(map[int64]bool, len(got))
			for _, id := range got {
				assert.True(t, valid[id], "id %d not in the offer list", id)
				assert.False(t, seen[id], "id %d selected twice", id)
				seen[id] = true
			}
		}
	}
}

func TestOfferSelector_CoversEveryCount(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6}
	s := candidate.NewOfferSelector(seeded(42))

	counts := map[int]int{}
	for i := 0; i < 600; i++ {
		got, err := s.Select(ids)
		require.NoError(t, err)
		counts[len(got)]++
	}

	for k := 1; k <= candidate.MaxOffersPerCandidate; k++ {
		assert.Positive(t, counts[k], "count %d never drawn", k)
	}
}

func TestOfferSelector_DoesNotMutateInput(t *testing.T) {
	ids := []int64{7, 8, 9, 10}
	want := append([]int64(nil), ids...)
	s := candidate.NewOfferSelector(seeded(7))

	for i := 0; i < 50; i++ {
		_, err := s.Select(ids)
		require.NoError(t, err)
	}
	assert.Equal(t, want, ids)
}

func TestOfferSelector_DrawCountIsCapped(t *testing.T) {
	// Always asks for the maximum count and always picks the last index.
	maxDraw := func(n int) int { return n - 1 }
	s := candidate.NewOfferSelector(maxDraw)

	got, err := s.Select([]int64{11, 22})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{11, 22}, got)
}
