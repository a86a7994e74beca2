package interval_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/utwente-fmt/dftcalc-sub000/interval"
)

func TestCombineAndMultipliesBounds(t *testing.T) {
	a := interval.Approx(0.1, 0.2)
	b := interval.Approx(0.3, 0.4)
	got := interval.CombineAnd([]interval.Bound{a, b})
	assert.InDelta(t, 0.03, got.Lo, 1e-9)
	assert.InDelta(t, 0.08, got.Hi, 1e-9)
}

func TestCombineAndStaysExactWhenAllInputsExact(t *testing.T) {
	a := interval.Degenerate(decimal.NewFromFloat(0.5))
	b := interval.Degenerate(decimal.NewFromFloat(0.5))
	got := interval.CombineAnd([]interval.Bound{a, b})
	if assert.NotNil(t, got.Exact) {
		assert.True(t, got.Exact.Equal(decimal.NewFromFloat(0.25)))
	}
}

func TestCombineOrIsComplementOfAllSurviving(t *testing.T) {
	a := interval.Approx(0.1, 0.1)
	b := interval.Approx(0.2, 0.2)
	got := interval.CombineOr([]interval.Bound{a, b})
	assert.InDelta(t, 1-0.9*0.8, got.Lo, 1e-9)
}

func TestCombineVotMatchesOrAtKEqualsOne(t *testing.T) {
	children := []interval.Bound{interval.Approx(0.1, 0.1), interval.Approx(0.2, 0.2)}
	vot := interval.CombineVot(1, children)
	or := interval.CombineOr(children)
	assert.InDelta(t, or.Lo, vot.Lo, 1e-9)
}

func TestCombineVotMatchesAndAtKEqualsN(t *testing.T) {
	children := []interval.Bound{interval.Approx(0.1, 0.1), interval.Approx(0.2, 0.2)}
	vot := interval.CombineVot(2, children)
	and := interval.CombineAnd(children)
	assert.InDelta(t, and.Lo, vot.Lo, 1e-9)
}
