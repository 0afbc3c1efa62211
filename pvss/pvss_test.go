package pvss_test

import (
	"testing"

	"go.dedis.ch/kyber/v3"
	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/pvss"
	"github.com/brorsson/dhpvss/shamir"
)

func setupCommittee(t *testing.T, s *curve.Suite, n int) ([]*pvss.KeyPair, []kyber.Point) {
	t.Helper()
	kps := make([]*pvss.KeyPair, n)
	pks := make([]kyber.Point, n)
	for i := range kps {
		kps[i] = pvss.Keygen(s)
		pks[i] = kps[i].Pub
	}
	return kps, pks
}

func TestSetupRejectsBadParameters(t *testing.T) {
	s := curve.NewP256()
	_, err := pvss.Setup(s, 8, 9)
	require.ErrorIs(t, err, pvss.ErrBadParameters)
}

// TestPVSSRoundTrip exercises distribute -> decrypt -> reconstruct end to
// end, matching spec's PVSS round-trip property.
func TestPVSSRoundTrip(t *testing.T) {
	s := curve.NewP256()
	const t_, n = 3, 7
	ctx, err := pvss.Setup(s, t_, n)
	require.NoError(t, err)

	dealer := pvss.Keygen(s)
	secretKP := pvss.Keygen(s)
	secret := secretKP.Pub

	committee, pks := setupCommittee(t, s, n)

	dist, err := ctx.DistributeProve(dealer, pks, secret)
	require.NoError(t, err)

	ok, err := ctx.DistributeVerify(dealer.Pub, pks, dist)
	require.NoError(t, err)
	require.True(t, ok)

	quorum := t_ + 1
	shares := make([]kyber.Point, quorum)
	indices := make([]int, quorum)
	for i := 0; i < quorum; i++ {
		d, err := pvss.DecryptShareProve(s, dealer.Pub, committee[i], dist.Shares[i])
		require.NoError(t, err)

		okShare, err := pvss.DecryptShareVerify(s, dealer.Pub, committee[i].Pub, dist.Shares[i], d)
		require.NoError(t, err)
		require.True(t, okShare)

		shares[i] = d.Share
		indices[i] = i + 1
	}

	recovered, err := ctx.Reconstruct(shares, indices)
	require.NoError(t, err)
	require.True(t, s.PointCmp(recovered, secret))
}

// TestPVSSScenarioT50N100 matches spec's concrete scenario 5.
func TestPVSSScenarioT50N100(t *testing.T) {
	s := curve.NewP256()
	const t_, n = 50, 100
	ctx, err := pvss.Setup(s, t_, n)
	require.NoError(t, err)

	dealer := pvss.Keygen(s)
	secretKP := pvss.Keygen(s)
	secret := secretKP.Pub

	committee, pks := setupCommittee(t, s, n)

	dist, err := ctx.DistributeProve(dealer, pks, secret)
	require.NoError(t, err)
	require.Len(t, dist.Shares, n)

	ok, err := ctx.DistributeVerify(dealer.Pub, pks, dist)
	require.NoError(t, err)
	require.True(t, ok)

	shares := make([]kyber.Point, n)
	for i := 0; i < n; i++ {
		d, err := pvss.DecryptShareProve(s, dealer.Pub, committee[i], dist.Shares[i])
		require.NoError(t, err)

		okShare, err := pvss.DecryptShareVerify(s, dealer.Pub, committee[i].Pub, dist.Shares[i], d)
		require.NoError(t, err)
		require.True(t, okShare)

		shares[i] = d.Share
	}

	quorum := t_ + 1
	indices := make([]int, quorum)
	for i := range indices {
		indices[i] = i + 1
	}
	recovered, err := ctx.Reconstruct(shares[:quorum], indices)
	require.NoError(t, err)
	require.True(t, s.PointCmp(recovered, secret))
}

func TestDistributeVerifyRejectsTamperedShare(t *testing.T) {
	s := curve.NewP256()
	const t_, n = 2, 5
	ctx, err := pvss.Setup(s, t_, n)
	require.NoError(t, err)

	dealer := pvss.Keygen(s)
	secretKP := pvss.Keygen(s)
	_, pks := setupCommittee(t, s, n)

	dist, err := ctx.DistributeProve(dealer, pks, secretKP.Pub)
	require.NoError(t, err)

	dist.Shares[0] = s.RandomPoint()
	ok, err := ctx.DistributeVerify(dealer.Pub, pks, dist)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestCommitteeDistKeyCalcMatchesDealerKey exercises spec §4.8.6: when
// member public keys are themselves a degree-t Shamir-in-exponent sharing
// of a dealer public key, CommitteeDistKeyCalc recovers that dealer key
// from any t+1 of them, exactly as Reconstruct recovers a secret from
// shares.
func TestCommitteeDistKeyCalcMatchesDealerKey(t *testing.T) {
	s := curve.NewP256()
	const t_, n = 2, 6
	ctx, err := pvss.Setup(s, t_, n)
	require.NoError(t, err)

	nextDealer := pvss.Keygen(s)
	pks := shamir.GenerateShares(s, nextDealer.Pub, t_, n)

	quorum := t_ + 1
	indices := make([]int, quorum)
	for i := range indices {
		indices[i] = i + 1
	}

	got, err := ctx.CommitteeDistKeyCalc(pks[:quorum], indices)
	require.NoError(t, err)
	require.True(t, s.PointCmp(got, nextDealer.Pub))
}
