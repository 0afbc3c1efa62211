package curve_test

import (
	"testing"

	"go.dedis.ch/kyber/v3"
	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
)

func TestScalarArithmeticRoundTrips(t *testing.T) {
	s := curve.NewP256()
	a := s.RandomScalar()
	b := s.RandomScalar()

	sum := s.AddMod(a, b)
	back := s.SubMod(sum, b)
	require.True(t, back.Equal(a))

	inv := s.InvMod(a)
	one := s.MulMod(a, inv)
	require.True(t, one.Equal(s.Group().Scalar().One()))
}

func TestExpModMatchesRepeatedMultiplication(t *testing.T) {
	s := curve.NewP256()
	base := s.ScalarFromInt64(3)

	got := s.ExpMod(base, 5)
	want := s.ScalarFromInt64(1)
	for i := 0; i < 5; i++ {
		want = s.MulMod(want, base)
	}
	require.True(t, got.Equal(want))
}

func TestWithDeterministicScalarIsScopedAndRestored(t *testing.T) {
	s := curve.NewP256()
	before := s.RandomScalar()

	var pinned1, pinned2 kyber.Scalar
	curve.WithDeterministicScalar(42, func() {
		pinned1 = s.RandomScalar()
		pinned2 = s.RandomScalar()
	})
	require.True(t, pinned1.Equal(pinned2))

	after := s.RandomScalar()
	require.False(t, after.Equal(before))
}

func TestWeightedSumMismatchedLengthsFails(t *testing.T) {
	s := curve.NewP256()
	_, err := s.WeightedSum([]kyber.Scalar{s.ScalarFromInt64(1)}, nil)
	require.Error(t, err)
}

func TestFromNameResolvesKnownCurves(t *testing.T) {
	for _, name := range []string{"", "P256", "ed25519", "secp256k1"} {
		suite, err := curve.FromName(name)
		require.NoError(t, err)
		require.NotNil(t, suite)
	}

	_, err := curve.FromName("bn256")
	require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
}
