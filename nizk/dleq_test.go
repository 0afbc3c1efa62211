package nizk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/nizk"
)

func TestDLEQCompleteness(t *testing.T) {
	s := curve.NewP256()
	x := s.RandomScalar()
	a := s.RandomPoint()
	b := s.RandomPoint()

	pi, A, B, err := nizk.ProveDLEQ(s, x, a, b)
	require.NoError(t, err)

	ok, err := nizk.VerifyDLEQ(s, a, A, b, B, pi)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestDLEQMismatchB matches spec's concrete scenario 3: exp=7, prove for
// B=7b, but verify against a corrupted B_bad=6b.
func TestDLEQMismatchB(t *testing.T) {
	s := curve.NewP256()
	x := s.ScalarFromInt64(7)
	a := s.RandomPoint()
	b := s.RandomPoint()

	pi, A, _, err := nizk.ProveDLEQ(s, x, a, b)
	require.NoError(t, err)

	Bbad := s.PointMul(s.ScalarFromInt64(6), b)
	ok, err := nizk.VerifyDLEQ(s, a, A, b, Bbad, pi)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDLEQRejectsIndependentZ(t *testing.T) {
	s := curve.NewP256()
	x := s.RandomScalar()
	a := s.RandomPoint()
	b := s.RandomPoint()

	pi, A, B, err := nizk.ProveDLEQ(s, x, a, b)
	require.NoError(t, err)

	pi.Z = s.RandomScalar()
	ok, err := nizk.VerifyDLEQ(s, a, A, b, B, pi)
	require.NoError(t, err)
	require.False(t, ok)
}
