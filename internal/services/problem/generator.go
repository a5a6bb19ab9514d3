package problem

import (
	"fmt"

	"github.com/mathduel/mathduel/internal/dependencies/ident"
	"github.com/mathduel/mathduel/internal/dependencies/random"
	"github.com/mathduel/mathduel/internal/model"
)

// operator identifies one kind of generated problem
type operator int

const (
	opAdd operator = iota
	opSubtract
	opMultiply
	opDivide
	opTwoStep // a + b x c
)

// Generator produces arithmetic problems parameterized by difficulty.
// Each call creates a fresh problem with a unique identity; the generator
// itself carries no state.
type Generator struct {
	random random.Random
	ident  ident.Ident
}

// NewGenerator creates a new problem generator
func NewGenerator(random random.Random, ident ident.Ident) *Generator {
	return &Generator{
		random: random,
		ident:  ident,
	}
}

// operatorPool returns the operators available at a difficulty tier
func operatorPool(difficulty int) []operator {
	switch {
	case difficulty <= 2:
		return []operator{opAdd, opSubtract, opMultiply}
	case difficulty <= 4:
		return []operator{opMultiply, opDivide, opAdd}
	default:
		return []operator{opMultiply, opDivide, opTwoStep}
	}
}

// Generate produces a single problem at the given difficulty. Difficulty
// values below 1 are treated as 1. Division problems are constructed
// backward from divisor and quotient so the solution is always an exact
// integer, and subtraction never produces a negative result.
func (g *Generator) Generate(difficulty int) *model.Problem {
	if difficulty < 1 {
		difficulty = 1
	}

	pool := operatorPool(difficulty)
	op := pool[g.random.Intn(len(pool))]

	var text string
	var solution int

	switch op {
	case opAdd:
		a := g.random.Between(1, 10+10*difficulty)
		b := g.random.Between(1, 10+10*difficulty)
		text = fmt.Sprintf("%d + %d", a, b)
		solution = a + b

	case opSubtract:
		minuend := g.random.Between(1, 10+10*difficulty)
		subtrahend := g.random.Between(1, minuend)
		text = fmt.Sprintf("%d - %d", minuend, subtrahend)
		solution = minuend - subtrahend

	case opMultiply:
		a := g.random.Between(1, 5+3*difficulty)
		b := g.random.Between(1, 5+3*difficulty)
		text = fmt.Sprintf("%d x %d", a, b)
		solution = a * b

	case opDivide:
		divisor := g.random.Between(1, 2+difficulty)
		quotient := g.random.Between(1, 5+2*difficulty)
		dividend := divisor * quotient
		text = fmt.Sprintf("%d / %d", dividend, divisor)
		solution = quotient

	case opTwoStep:
		a := g.random.Between(1, 10+5*difficulty)
		b := g.random.Between(1, 5+2*difficulty)
		c := g.random.Between(1, 5+2*difficulty)
		text = fmt.Sprintf("%d + %d x %d", a, b, c)
		solution = a + b*c
	}

	return &model.Problem{
		ID:          model.ProblemID(g.ident.NewID()),
		Title:       text,
		Description: text,
		Difficulty:  difficulty,
		Solution:    solution,
	}
}
