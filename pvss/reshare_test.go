package pvss_test

import (
	"testing"

	"go.dedis.ch/kyber/v3"
	"github.com/stretchr/testify/require"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/pvss"
)

// TestReshareRoundTrip matches spec's concrete scenario 6: distribute,
// decrypt and reconstruct across a full distribute -> reshare ->
// reconstruct_reshare -> decrypt -> reconstruct pipeline for t=5, n=10 ->
// t'=5, n'=10.
func TestReshareRoundTrip(t *testing.T) {
	s := curve.NewP256()
	const t1, n1 = 5, 10
	const t2, n2 = 5, 10

	cur, err := pvss.Setup(s, t1, n1)
	require.NoError(t, err)
	next, err := pvss.Setup(s, t2, n2)
	require.NoError(t, err)

	dealer := pvss.Keygen(s)
	secretKP := pvss.Keygen(s)
	secret := secretKP.Pub

	committee := make([]*pvss.KeyPair, n1)
	pks := make([]kyber.Point, n1)
	for i := range committee {
		committee[i] = pvss.Keygen(s)
		pks[i] = committee[i].Pub
	}

	dist, err := cur.DistributeProve(dealer, pks, secret)
	require.NoError(t, err)
	ok, err := cur.DistributeVerify(dealer.Pub, pks, dist)
	require.NoError(t, err)
	require.True(t, ok)

	nextCommittee := make([]*pvss.KeyPair, n2)
	nextPks := make([]kyber.Point, n2)
	for i := range nextCommittee {
		nextCommittee[i] = pvss.Keygen(s)
		nextPks[i] = nextCommittee[i].Pub
	}

	nextDealers := make([]*pvss.KeyPair, n1)
	for i := range nextDealers {
		nextDealers[i] = pvss.Keygen(s)
	}

	reshareOut := make([]*pvss.Reshares, n1)
	for i := 0; i < n1; i++ {
		memberIdx := i + 1
		r, err := cur.ReshareProve(next, memberIdx, committee[i], nextDealers[i], dealer.Pub, dist.Shares, nextPks)
		require.NoError(t, err)

		ok, err := cur.ReshareVerify(next, committee[i].Pub, nextDealers[i].Pub, dealer.Pub, dist.Shares, dist.Shares[i], r, nextPks)
		require.NoError(t, err)
		require.True(t, ok)

		reshareOut[i] = r
	}

	producerIdx := make([]int, t1+1)
	for i := range producerIdx {
		producerIdx[i] = i + 1
	}
	contributing := reshareOut[:t1+1]

	nextEncShares := make([]kyber.Point, n2)
	for j := 1; j <= n2; j++ {
		enc, err := cur.ReconstructReshare(contributing, producerIdx, j)
		require.NoError(t, err)
		nextEncShares[j-1] = enc
	}

	// Every producer's reshare output masks its piece under its own
	// next-epoch dealer key D_i. Summing t1+1 producer contributions with
	// the degree-t Lagrange weights used above collapses those masks into
	// a single joint dealer key J = Sum(lambda_i * D_i.priv); any
	// next-committee member can then decrypt its reconstructed share
	// against J.pub exactly as it would against a single dealer's pub,
	// per spec §4.8.6's "dealer pub for the next epoch as seen by the
	// current one".
	nextDealerPks := make([]kyber.Point, t1+1)
	for i := 0; i < t1+1; i++ {
		nextDealerPks[i] = nextDealers[i].Pub
	}
	nextDealerPub, err := cur.CommitteeDistKeyCalc(nextDealerPks, producerIdx)
	require.NoError(t, err)

	quorum := t2 + 1
	shares := make([]kyber.Point, quorum)
	indices := make([]int, quorum)
	for i := 0; i < quorum; i++ {
		d, err := pvss.DecryptShareProve(s, nextDealerPub, nextCommittee[i], nextEncShares[i])
		require.NoError(t, err)
		shares[i] = d.Share
		indices[i] = i + 1
	}

	recovered, err := next.Reconstruct(shares, indices)
	require.NoError(t, err)
	require.True(t, s.PointCmp(recovered, secret))
}
