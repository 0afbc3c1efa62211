// Package scrape implements the SCRAPE dual-code: the {v_i}, {v'_i}
// coefficient setup of spec §4.7, and the scrape-sum aggregation that
// collapses n per-share consistency checks into a single DLEQ or Reshare
// proof.
package scrape

import (
	"go.dedis.ch/kyber/v3"

	"github.com/brorsson/dhpvss/curve"
)

// Coeffs holds the dual-code coefficients for one PvssCtx: V is used
// against the distribution-time evaluation points alpha[1..n], VPrime
// against the reshare-time evaluation points beta[0..n].
type Coeffs struct {
	V      []kyber.Scalar // length n
	VPrime []kyber.Scalar // length n
}

// Setup computes V and VPrime from the fixed evaluation points
// alpha[i]=beta[i]=i for i in 0..n, per spec §4.7:
//
//	v[i-1]      = prod_{j in [1..n], j!=i} (alpha_i - alpha_j)^-1 mod q
//	v'[i-1]     = prod_{j in [0..n], j!=i} (beta_i  - beta_j)^-1  mod q
//
// The source's inverse-table optimization (precomputing inverses of
// {-n+1,...,n} once, since every factor alpha_i-alpha_j is an integer in
// that exact range) is realized here as a memoized inverse-by-difference
// cache rather than a manually indexed array, since idiomatic Go reaches
// for a map over manual index arithmetic for a sparse, signed key space.
func Setup(s *curve.Suite, n int) *Coeffs {
	cache := newInverseCache(s)
	return &Coeffs{
		V:      deriveCoeffs(s, cache, 1, n),
		VPrime: deriveCoeffs(s, cache, 0, n),
	}
}

// deriveCoeffs computes, for i in 1..n, the product over j in [from..n],
// j != i, of (i-j)^-1 mod q.
func deriveCoeffs(s *curve.Suite, cache *inverseCache, from, n int) []kyber.Scalar {
	coeffs := make([]kyber.Scalar, n)
	for i := 1; i <= n; i++ {
		coeff := s.ScalarFromInt64(1)
		for j := from; j <= n; j++ {
			if i == j {
				continue
			}
			coeff = s.MulMod(coeff, cache.invDiff(i-j))
		}
		coeffs[i-1] = coeff
	}
	return coeffs
}

// inverseCache memoizes modular inverses of small nonzero integers so
// deriveCoeffs performs O(n) inversions (the expensive operation) instead
// of O(n^2), matching spec's documented optimization, while still being
// O(n^2) in cheap modular multiplications.
type inverseCache struct {
	s     *curve.Suite
	cache map[int]kyber.Scalar
}

func newInverseCache(s *curve.Suite) *inverseCache {
	return &inverseCache{s: s, cache: make(map[int]kyber.Scalar)}
}

func (c *inverseCache) invDiff(d int) kyber.Scalar {
	if inv, ok := c.cache[d]; ok {
		return inv
	}
	inv := c.s.InvMod(c.s.ScalarFromInt64(int64(d)))
	c.cache[d] = inv
	return inv
}

// EvalPoly evaluates the hash-derived polynomial m (given by its
// coefficients, lowest degree first) at evalPoint.
func EvalPoly(s *curve.Suite, coeffs []kyber.Scalar, evalPoint int) kyber.Scalar {
	base := s.ScalarFromInt64(int64(evalPoint))
	acc := s.ZeroScalar()
	for i, c := range coeffs {
		acc = s.AddMod(acc, s.MulMod(c, s.ExpMod(base, i)))
	}
	return acc
}

// Terms computes the n scrape-sum terms e_x = codeCoeffs[x-1] * m(x) for
// x in 1..n. The evaluation point for index x is x itself: alpha_x = x at
// distribution time and beta_x = x at reshare time are the same integer,
// per spec §3's definition alpha[i] = beta[i] = i.
func Terms(s *curve.Suite, codeCoeffs []kyber.Scalar, polyCoeffs []kyber.Scalar) []kyber.Scalar {
	n := len(codeCoeffs)
	terms := make([]kyber.Scalar, n)
	for x := 1; x <= n; x++ {
		m := EvalPoly(s, polyCoeffs, x)
		terms[x-1] = s.MulMod(codeCoeffs[x-1], m)
	}
	return terms
}
