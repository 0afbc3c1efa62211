package scrape_test

import (
	"testing"

	"go.dedis.ch/kyber/v3"
	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/scrape"
)

func TestCoeffsHaveExpectedLength(t *testing.T) {
	s := curve.NewP256()
	c := scrape.Setup(s, 10)
	require.Len(t, c.V, 10)
	require.Len(t, c.VPrime, 10)
}

// TestScrapeSumVanishesForLowDegreePoly exercises the dual-code
// orthogonality property the whole aggregation scheme rests on: for any
// polynomial m of degree strictly below n - t - 1, the scrape sum of
// v_i * m(i) over i=1..n is zero. This is the relation DistributeProve
// relies on to collapse n DLEQ checks into one.
func TestScrapeSumVanishesForLowDegreePoly(t *testing.T) {
	s := curve.NewP256()
	n := 10
	c := scrape.Setup(s, n)

	polyCoeffs := []kyber.Scalar{
		s.ScalarFromInt64(5),
		s.ScalarFromInt64(3),
		s.ScalarFromInt64(2),
	}

	terms := scrape.Terms(s, c.V, polyCoeffs)
	sum := s.ZeroScalar()
	for _, term := range terms {
		sum = s.AddMod(sum, term)
	}
	require.True(t, sum.Equal(s.ZeroScalar()))
}

func TestEvalPolyConstantTerm(t *testing.T) {
	s := curve.NewP256()
	coeffs := []kyber.Scalar{s.ScalarFromInt64(9)}
	got := scrape.EvalPoly(s, coeffs, 5)
	require.True(t, got.Equal(s.ScalarFromInt64(9)))
}
