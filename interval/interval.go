// Package interval implements the bounded-numeric result type and the
// analytical AND/OR/VOT combination arithmetic the modularizer uses to
// combine independent subtree results without invoking a back end on
// their parent gate directly.
package interval

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bound is a closed numeric interval [Lo, Hi], with an optional exact
// decimal value folded in as a degenerate interval when every input that
// produced it was itself exact (e.g. an analytically combined AND/OR
// module whose children all came from an exact back-end run; CombineVot
// never sets Exact).
type Bound struct {
	Lo, Hi float64
	Exact  *decimal.Decimal
}

// Degenerate returns a Bound with Lo == Hi == v and Exact set, the shape
// an exact back-end result or a fully-exact analytical combination takes.
func Degenerate(v decimal.Decimal) Bound {
	return Bound{Lo: mustFloat(v), Hi: mustFloat(v), Exact: &v}
}

// Approx returns a plain double-interval Bound with no exact value.
func Approx(lo, hi float64) Bound {
	return Bound{Lo: lo, Hi: hi}
}

func mustFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Width reports Hi - Lo, the interval's imprecision.
func (b Bound) Width() float64 { return b.Hi - b.Lo }

// String renders "[lo, hi]", or the exact value alone when Exact is set
// and the interval is degenerate.
func (b Bound) String() string {
	if b.Exact != nil && b.Lo == b.Hi {
		return b.Exact.String()
	}
	return fmt.Sprintf("[%g, %g]", b.Lo, b.Hi)
}

// CombineAnd analytically combines the bounds of n independent children
// under AND semantics (all must fail): the combined bound is the
// elementwise product of each child's Lo and Hi, since failure
// probability is monotonically increasing in each argument.
func CombineAnd(children []Bound) Bound {
	loProd, hiProd := 1.0, 1.0
	exact := true
	exactProd := decimal.NewFromInt(1)
	for _, c := range children {
		loProd *= c.Lo
		hiProd *= c.Hi
		if c.Exact == nil {
			exact = false
			continue
		}
		exactProd = exactProd.Mul(*c.Exact)
	}
	b := Bound{Lo: loProd, Hi: hiProd}
	if exact && len(children) > 0 {
		v := exactProd
		b.Exact = &v
		b.Lo, b.Hi = mustFloat(v), mustFloat(v)
	}
	return b
}

// CombineOr analytically combines n independent children under OR
// semantics (at least one must fail): 1 - prod(1 - p_i), applied
// elementwise to Lo and Hi.
func CombineOr(children []Bound) Bound {
	loComp, hiComp := 1.0, 1.0
	exact := true
	exactComp := decimal.NewFromInt(1)
	for _, c := range children {
		loComp *= 1 - c.Lo
		hiComp *= 1 - c.Hi
		if c.Exact == nil {
			exact = false
			continue
		}
		exactComp = exactComp.Mul(decimal.NewFromInt(1).Sub(*c.Exact))
	}
	b := Bound{Lo: 1 - loComp, Hi: 1 - hiComp}
	if exact && len(children) > 0 {
		v := decimal.NewFromInt(1).Sub(exactComp)
		b.Exact = &v
		b.Lo, b.Hi = mustFloat(v), mustFloat(v)
	}
	return b
}

// CombineVot analytically combines n independent children under a k-of-n
// voting gate: the probability that at least k of n fail, computed via
// the Poisson-binomial recurrence over each bound's Lo and Hi
// independently. Exact decimal tracking is not attempted here (the
// convolution would need decimal arithmetic throughout to stay
// meaningful, and no caller currently requests an exact VOT
// combination), so the result is always an approximate Bound; see
// DESIGN.md.
func CombineVot(k int, children []Bound) Bound {
	return Bound{
		Lo: atLeastK(k, children, func(b Bound) float64 { return b.Lo }),
		Hi: atLeastK(k, children, func(b Bound) float64 { return b.Hi }),
	}
}

// atLeastK computes P(at least k of n independent events, with per-event
// probability p(children[i])) via the standard O(n*k) DP building up the
// probability of exactly j successes after each child is folded in.
func atLeastK(k int, children []Bound, p func(Bound) float64) float64 {
	n := len(children)
	if k <= 0 {
		return 1
	}
	if k > n {
		return 0
	}
	dist := make([]float64, n+1)
	dist[0] = 1
	for _, c := range children {
		pi := p(c)
		for j := n; j >= 1; j-- {
			dist[j] = dist[j]*(1-pi) + dist[j-1]*pi
		}
		dist[0] *= 1 - pi
	}
	sum := 0.0
	for j := k; j <= n; j++ {
		sum += dist[j]
	}
	return sum
}
