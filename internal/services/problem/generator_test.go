package problem

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathduel/mathduel/internal/dependencies/ident"
	"github.com/mathduel/mathduel/internal/dependencies/mocks"
	"github.com/mathduel/mathduel/internal/dependencies/random"
	"github.com/mathduel/mathduel/internal/model"
)

func newMocked() (*Generator, *mocks.MockRandom, *mocks.MockIdent) {
	rnd := mocks.NewMockRandom()
	id := mocks.NewMockIdent()
	return NewGenerator(rnd, id), rnd, id
}

func TestGenerateMultiplication(t *testing.T) {
	gen, rnd, id := newMocked()
	id.QueueID("prob-1")
	rnd.QueueIntn(2)       // pick multiply from tier-1 pool {add, sub, mul}
	rnd.QueueBetween(3, 4) // operands

	p := gen.Generate(1)

	assert.Equal(t, model.ProblemID("prob-1"), p.ID)
	assert.Equal(t, "3 x 4", p.Title)
	assert.Equal(t, "3 x 4", p.Description)
	assert.Equal(t, 1, p.Difficulty)
	assert.Equal(t, 12, p.Solution)
}

func TestGenerateAddition(t *testing.T) {
	gen, rnd, _ := newMocked()
	rnd.QueueIntn(0)        // add
	rnd.QueueBetween(7, 15) // operands

	p := gen.Generate(2)

	assert.Equal(t, "7 + 15", p.Title)
	assert.Equal(t, 22, p.Solution)
}

func TestGenerateSubtractionNeverNegative(t *testing.T) {
	gen, rnd, _ := newMocked()
	rnd.QueueIntn(1)        // subtract
	rnd.QueueBetween(5, 99) // subtrahend request above minuend gets clamped

	p := gen.Generate(1)

	assert.Equal(t, "5 - 5", p.Title)
	assert.Equal(t, 0, p.Solution)
}

func TestGenerateDivisionBuiltBackward(t *testing.T) {
	gen, rnd, _ := newMocked()
	rnd.QueueIntn(1)       // divide from tier-3 pool {mul, div, add}
	rnd.QueueBetween(4, 7) // divisor, quotient

	p := gen.Generate(3)

	assert.Equal(t, "28 / 4", p.Title)
	assert.Equal(t, 7, p.Solution)
}

func TestGenerateTwoStepExpression(t *testing.T) {
	gen, rnd, _ := newMocked()
	rnd.QueueIntn(2)          // two-step from tier-5 pool {mul, div, two-step}
	rnd.QueueBetween(2, 3, 4) // a, b, c

	p := gen.Generate(5)

	assert.Equal(t, "2 + 3 x 4", p.Title)
	assert.Equal(t, 14, p.Solution)
}

func TestDifficultyBelowOneIsClamped(t *testing.T) {
	gen, rnd, _ := newMocked()
	rnd.QueueIntn(0)
	rnd.QueueBetween(1, 1)

	p := gen.Generate(0)

	assert.Equal(t, 1, p.Difficulty)
}

// Property checks across all tiers using real randomness: the generator
// must never emit a division with a remainder, a negative subtraction, or a
// problem whose text disagrees with its solution.
func TestGeneratedProblemsAreWellFormed(t *testing.T) {
	gen := NewGenerator(random.New(), ident.New())

	seen := make(map[model.ProblemID]bool)

	for difficulty := 1; difficulty <= 8; difficulty++ {
		for i := 0; i < 200; i++ {
			p := gen.Generate(difficulty)

			require.False(t, seen[p.ID], "duplicate problem id")
			seen[p.ID] = true

			require.GreaterOrEqual(t, p.Solution, 0,
				"negative solution for %q", p.Title)
			assert.Equal(t, evalProblem(t, p.Title), p.Solution,
				"solution mismatch for %q", p.Title)

			if strings.Contains(p.Title, "/") {
				parts := strings.Split(p.Title, " / ")
				require.Len(t, parts, 2)
				dividend := mustAtoi(t, parts[0])
				divisor := mustAtoi(t, parts[1])
				require.NotZero(t, divisor, "division by zero in %q", p.Title)
				assert.Zero(t, dividend%divisor,
					"inexact division in %q", p.Title)
			}
		}
	}
}

func TestOperatorPoolsByTier(t *testing.T) {
	gen := NewGenerator(random.New(), ident.New())

	cases := []struct {
		difficulty int
		allowed    []string
	}{
		{1, []string{"+", "-", "x"}},
		{2, []string{"+", "-", "x"}},
		{3, []string{"x", "/", "+"}},
		{4, []string{"x", "/", "+"}},
		{5, []string{"x", "/", "+ x"}},
		{7, []string{"x", "/", "+ x"}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("difficulty_%d", tc.difficulty), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				p := gen.Generate(tc.difficulty)
				assert.True(t, matchesAnyShape(p.Title, tc.allowed),
					"unexpected problem %q at difficulty %d", p.Title, tc.difficulty)
			}
		})
	}
}

// matchesAnyShape checks a problem text against allowed operator shapes,
// where "+ x" means the two-step form "a + b x c"
func matchesAnyShape(title string, shapes []string) bool {
	fields := strings.Fields(title)
	for _, shape := range shapes {
		switch shape {
		case "+ x":
			if len(fields) == 5 && fields[1] == "+" && fields[3] == "x" {
				return true
			}
		default:
			if len(fields) == 3 && fields[1] == shape {
				return true
			}
		}
	}
	return false
}

// evalProblem computes the expected solution from the problem text
func evalProblem(t *testing.T, title string) int {
	t.Helper()
	fields := strings.Fields(title)

	switch len(fields) {
	case 3:
		a := mustAtoi(t, fields[0])
		b := mustAtoi(t, fields[2])
		switch fields[1] {
		case "+":
			return a + b
		case "-":
			return a - b
		case "x":
			return a * b
		case "/":
			return a / b
		}
	case 5:
		a := mustAtoi(t, fields[0])
		b := mustAtoi(t, fields[2])
		c := mustAtoi(t, fields[4])
		return a + b*c
	}

	t.Fatalf("unparseable problem text %q", title)
	return 0
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}
