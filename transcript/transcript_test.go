package transcript_test

import (
	"testing"

	"go.dedis.ch/kyber/v3"
	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/transcript"
)

func TestHashIsDeterministicForSameInputs(t *testing.T) {
	s := curve.NewP256()
	p := s.RandomPoint()
	x := s.RandomScalar()

	c1, err := transcript.Hash(s.Group(), transcript.P(p), transcript.S(x))
	require.NoError(t, err)
	c2, err := transcript.Hash(s.Group(), transcript.P(p), transcript.S(x))
	require.NoError(t, err)
	require.True(t, c1.Equal(c2))
}

func TestHashOrderMatters(t *testing.T) {
	s := curve.NewP256()
	p := s.RandomPoint()
	q := s.RandomPoint()

	c1, err := transcript.Hash(s.Group(), transcript.P(p), transcript.P(q))
	require.NoError(t, err)
	c2, err := transcript.Hash(s.Group(), transcript.P(q), transcript.P(p))
	require.NoError(t, err)
	require.False(t, c1.Equal(c2))
}

func TestHashPointsToPolyIsChained(t *testing.T) {
	s := curve.NewP256()
	list := []kyber.Point{s.RandomPoint(), s.RandomPoint()}

	poly, err := transcript.HashPointsToPoly(s.Group(), 3, list)
	require.NoError(t, err)
	require.Len(t, poly, 3)

	recomputed, err := transcript.Hash(s.Group(), transcript.S(poly[0]))
	require.NoError(t, err)
	require.True(t, recomputed.Equal(poly[1]))
}
