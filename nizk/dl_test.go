package nizk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/nizk"
)

// TestDLHappyPath matches spec's concrete scenario 1: x=7, X=7G.
func TestDLHappyPath(t *testing.T) {
	s := curve.NewP256()
	x := s.ScalarFromInt64(7)
	X := s.BaseMul(x)

	pi, err := nizk.ProveDL(s, x)
	require.NoError(t, err)

	ok, err := nizk.VerifyDL(s, X, pi)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestDLTamperZ matches spec's scenario 2: replacing z with a fresh random
// scalar must reject.
func TestDLTamperZ(t *testing.T) {
	s := curve.NewP256()
	x := s.ScalarFromInt64(7)
	X := s.BaseMul(x)

	pi, err := nizk.ProveDL(s, x)
	require.NoError(t, err)

	pi.Z = s.RandomScalar()
	ok, err := nizk.VerifyDL(s, X, pi)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDLCompletenessAcrossRandomWitnesses(t *testing.T) {
	s := curve.NewP256()
	for i := 0; i < 10; i++ {
		x := s.RandomScalar()
		X := s.BaseMul(x)

		pi, err := nizk.ProveDL(s, x)
		require.NoError(t, err)

		ok, err := nizk.VerifyDL(s, X, pi)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestDLRejectsWrongStatement(t *testing.T) {
	s := curve.NewP256()
	x := s.RandomScalar()

	pi, err := nizk.ProveDL(s, x)
	require.NoError(t, err)

	wrongX := s.RandomPoint()
	ok, err := nizk.VerifyDL(s, wrongX, pi)
	require.NoError(t, err)
	require.False(t, ok)
}
