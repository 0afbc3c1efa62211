// Package shamir implements Shamir-in-exponent secret sharing: a degree-t
// polynomial p with p(0) = 0 is sampled, and party i's share is
// p(i)*G + S for a point secret S, per spec §4.6 and the GLOSSARY entry
// for "Shamir-in-exponent". Reconstruction is the usual Lagrange-at-zero
// interpolation, carried out in the exponent.
package shamir

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"github.com/brorsson/dhpvss/curve"
)

// ErrBadCardinality is returned by Reconstruct when it is not given
// exactly t+1 shares.
var ErrBadCardinality = xerrors.New("shamir: need exactly t+1 shares to reconstruct")

// GenerateShares samples a degree-t polynomial with zero constant term and
// returns the n point-shares p(1)*G+secret, ..., p(n)*G+secret.
func GenerateShares(s *curve.Suite, secret kyber.Point, t, n int) []kyber.Point {
	coeffs := make([]kyber.Scalar, t+1)
	coeffs[0] = s.ZeroScalar()
	for j := 1; j <= t; j++ {
		coeffs[j] = s.RandomScalar()
	}

	shares := make([]kyber.Point, n)
	for i := 1; i <= n; i++ {
		shares[i-1] = s.PointAdd(evalPolyInExponent(s, coeffs, i), secret)
	}
	return shares
}

// evalPolyInExponent computes p(i)*G for the given coefficient list.
func evalPolyInExponent(s *curve.Suite, coeffs []kyber.Scalar, i int) kyber.Point {
	base := s.ScalarFromInt64(int64(i))
	acc := s.ZeroScalar()
	for j, coeff := range coeffs {
		term := s.MulMod(coeff, s.ExpMod(base, j))
		acc = s.AddMod(acc, term)
	}
	return s.BaseMul(acc)
}

// LagrangeCoefficients computes lambda_i = prod_{j!=i} (0 - index_j) /
// (index_i - index_j) mod q for every i in the given index set, reduced
// to a non-negative residue before use.
func LagrangeCoefficients(s *curve.Suite, indices []int) []kyber.Scalar {
	lambdas := make([]kyber.Scalar, len(indices))
	for i := range indices {
		num := s.ScalarFromInt64(1)
		den := s.ScalarFromInt64(1)
		xi := s.ScalarFromInt64(int64(indices[i]))
		for j := range indices {
			if i == j {
				continue
			}
			xj := s.ScalarFromInt64(int64(indices[j]))
			num = s.MulMod(num, s.NegMod(xj))
			den = s.MulMod(den, s.SubMod(xi, xj))
		}
		lambdas[i] = s.MulMod(num, s.InvMod(den))
	}
	return lambdas
}

// Reconstruct recovers the shared point secret from exactly t+1 shares at
// the given indices, via Shamir-in-exponent's invariant: for any (t+1)
// subset of honestly generated shares, the weighted sum with Lagrange
// coefficients returns the original secret.
func Reconstruct(s *curve.Suite, shares []kyber.Point, indices []int, t int) (kyber.Point, error) {
	if len(shares) != t+1 || len(indices) != t+1 {
		return nil, xerrors.Errorf("%w: got %d shares, want %d", ErrBadCardinality, len(shares), t+1)
	}
	lambdas := LagrangeCoefficients(s, indices)
	sum, err := s.WeightedSum(lambdas, shares)
	if err != nil {
		return nil, &curve.ErrBackendFailure{Op: "Reconstruct", Err: err}
	}
	return sum, nil
}
