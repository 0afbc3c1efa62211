package board_test

import (
	"testing"

	"go.dedis.ch/kyber/v3"
	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/board"
	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/pvss"
	"github.com/brorsson/dhpvss/wire"
)

func TestPutGetDistribution(t *testing.T) {
	s := curve.NewP256()
	const t_, n = 1, 4
	ctx, err := pvss.Setup(s, t_, n)
	require.NoError(t, err)

	dealer := pvss.Keygen(s)
	secretKP := pvss.Keygen(s)
	pks := make([]kyber.Point, n)
	for i := range pks {
		pks[i] = pvss.Keygen(s).Pub
	}
	dist, err := ctx.DistributeProve(dealer, pks, secretKP.Pub)
	require.NoError(t, err)
	w, err := wire.EncodeDistribution(dist)
	require.NoError(t, err)

	b, err := board.Open(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.PutDistribution(1, w))

	got, err := b.GetDistribution(1)
	require.NoError(t, err)
	require.Equal(t, len(w.Shares), len(got.Shares))

	_, err = b.GetDistribution(2)
	require.Error(t, err)
}

func TestPutGetDecryptedSharesAcrossMembers(t *testing.T) {
	s := curve.NewP256()
	dealer := pvss.Keygen(s)

	b, err := board.Open(t.TempDir())
	require.NoError(t, err)
	defer b.Close()

	for i := 1; i <= 3; i++ {
		member := pvss.Keygen(s)
		encShare := s.RandomPoint()
		d, err := pvss.DecryptShareProve(s, dealer.Pub, member, encShare)
		require.NoError(t, err)
		w, err := wire.EncodeDecryptedShare(d)
		require.NoError(t, err)
		require.NoError(t, b.PutDecryptedShare(7, i, w))
	}

	all, err := b.GetDecryptedShares(7)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
