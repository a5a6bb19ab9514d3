package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualRatingsWinnerGainsSixteen(t *testing.T) {
	s := New()

	newA, newB := s.Update(1000, 1000, true, 0)

	assert.Equal(t, 1016, newA)
	assert.Equal(t, 984, newB)
}

func TestSymmetricUnderSwap(t *testing.T) {
	s := New()

	cases := []struct {
		name     string
		ratingA  int
		ratingB  int
		aWon     bool
		margin   int
	}{
		{"equal ratings", 1000, 1000, true, 0},
		{"underdog wins", 900, 1200, true, 0},
		{"favourite wins", 1200, 900, true, 0},
		{"loss", 1050, 1000, false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newA, newB := s.Update(tc.ratingA, tc.ratingB, tc.aWon, tc.margin)
			swappedB, swappedA := s.Update(tc.ratingB, tc.ratingA, !tc.aWon, tc.margin)

			assert.Equal(t, newA, swappedA)
			assert.Equal(t, newB, swappedB)
		})
	}
}

func TestRatingSumConservedWithoutMargin(t *testing.T) {
	s := New()

	for _, pair := range [][2]int{{1000, 1000}, {1000, 1050}, {800, 1400}, {1300, 1299}} {
		newA, newB := s.Update(pair[0], pair[1], true, 0)

		deltaA := newA - pair[0]
		deltaB := newB - pair[1]
		// Rounding can shift the sum by at most one point
		assert.InDelta(t, 0, deltaA+deltaB, 1)
	}
}

func TestUpsetWinMovesMoreThanExpectedWin(t *testing.T) {
	s := New()

	upsetA, _ := s.Update(900, 1200, true, 0)
	expectedA, _ := s.Update(1200, 900, true, 0)

	upsetGain := upsetA - 900
	expectedGain := expectedA - 1200
	assert.Greater(t, upsetGain, expectedGain)
}

func TestScoreMarginSevenThree(t *testing.T) {
	s := New()

	// Final score 7-3: winner strictly up, loser strictly down
	newA, newB := s.Update(1000, 1050, true, 4)

	assert.Greater(t, newA, 1000)
	assert.Less(t, newB, 1050)
}

// The margin adjustment is applied to A positively and B negatively
// regardless of outcome. This pins the inherited behavior: when B wins with
// a large margin, B's gain is reduced rather than increased.
func TestMarginAdjustmentIsUnconditional(t *testing.T) {
	s := New()

	_, bWithoutMargin := s.Update(1000, 1000, false, 0)
	_, bWithMargin := s.Update(1000, 1000, false, 10)

	assert.Equal(t, bWithoutMargin-1, bWithMargin)
}

func TestDeterministic(t *testing.T) {
	s := New()

	a1, b1 := s.Update(987, 1123, false, 5)
	a2, b2 := s.Update(987, 1123, false, 5)

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}
