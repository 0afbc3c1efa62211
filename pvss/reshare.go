package pvss

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/nizk"
	"github.com/brorsson/dhpvss/scrape"
	"github.com/brorsson/dhpvss/shamir"
	"github.com/brorsson/dhpvss/transcript"
)

// Reshares is one committee member's reshare output: n' encrypted reshares
// for the next committee plus the ReshareProof binding them to both the
// member's current-committee key and its next-epoch dealer key, per spec
// §4.8.7.
type Reshares struct {
	Shares []kyber.Point // encrypted_reshares[1..n']
	Proof  *nizk.ReshareProof
}

// ReshareProve runs one current-committee member's side of reshare: it
// decrypts its own current share, re-splits it under a fresh degree-t'
// polynomial for the next committee, masks each piece under the DH key
// shared with the corresponding next-committee member, and proves
// consistency via the aggregate Reshare NIZK.
//
// next is the PvssCtx for the successor committee (t', n'); c is the
// current epoch's PvssCtx, used only for its curve suite. memberIdx is this
// party's 1-based index in the current committee, committeeKP its
// current-committee key pair, dealerKP its key pair as next-epoch dealer,
// prevDealerPub the previous epoch's dealer public key, curEncShares the
// full current-epoch encrypted-share vector C[1..n] (needed to rederive the
// aggregation polynomial), and nextPks the next committee's public keys.
func (c *Ctx) ReshareProve(next *Ctx, memberIdx int, committeeKP, dealerKP *KeyPair, prevDealerPub kyber.Point, curEncShares []kyber.Point, nextPks []kyber.Point) (*Reshares, error) {
	if memberIdx < 1 || memberIdx > len(curEncShares) {
		return nil, xerrors.Errorf("%w: member index %d out of range", ErrBadParameters, memberIdx)
	}
	if len(nextPks) != next.N {
		return nil, xerrors.Errorf("%w: got %d next committee keys, want %d", ErrBadParameters, len(nextPks), next.N)
	}

	myEncShare := curEncShares[memberIdx-1]
	sigma := c.Suite.PointSub(myEncShare, c.Suite.PointMul(committeeKP.Priv, prevDealerPub))

	rho := shamir.GenerateShares(next.Suite, sigma, next.T, next.N)

	reshares := make([]kyber.Point, next.N)
	for k := 0; k < next.N; k++ {
		dh := c.Suite.PointMul(dealerKP.Priv, nextPks[k])
		reshares[k] = c.Suite.PointAdd(dh, rho[k])
	}

	Uprime, Vprime, Wprime, err := c.reshareAggregate(next, prevDealerPub, curEncShares, myEncShare, reshares, nextPks)
	if err != nil {
		return nil, err
	}

	proof, err := nizk.ProveReshare(c.Suite, committeeKP.Priv, dealerKP.Priv,
		c.Suite.Group().Point().Base(), Vprime, Wprime,
		committeeKP.Pub, dealerKP.Pub, Uprime)
	if err != nil {
		return nil, err
	}

	return &Reshares{Shares: reshares, Proof: proof}, nil
}

// reshareAggregate derives the degree n'-t'-1 scrape polynomial (n'-t'
// coefficients) from the
// public transcript (previous dealer pub, current encrypted shares) and
// folds this member's n' reshares into the three aggregate points U', V',
// W' the Reshare NIZK statement is built over, per spec §4.8.7 steps 4-7.
func (c *Ctx) reshareAggregate(next *Ctx, prevDealerPub kyber.Point, curEncShares []kyber.Point, myEncShare kyber.Point, reshares, nextPks []kyber.Point) (U, V, W kyber.Point, err error) {
	m, err := transcript.HashPointsToPoly(c.Suite.Group(), next.N-next.T, []kyber.Point{prevDealerPub}, curEncShares)
	if err != nil {
		return nil, nil, nil, &curve.ErrBackendFailure{Op: "reshareAggregate", Err: err}
	}

	f := scrape.Terms(next.Suite, next.Scrape.VPrime, m)

	deltas := make([]kyber.Point, next.N)
	for j := 0; j < next.N; j++ {
		deltas[j] = next.Suite.PointSub(reshares[j], myEncShare)
	}

	U, err = next.Suite.WeightedSum(f, deltas)
	if err != nil {
		return nil, nil, nil, err
	}
	V, err = next.Suite.WeightedSum(f, nextPks)
	if err != nil {
		return nil, nil, nil, err
	}

	fSum := next.Suite.ZeroScalar()
	for _, term := range f {
		fSum = next.Suite.AddMod(fSum, term)
	}
	W = next.Suite.PointMul(fSum, prevDealerPub)

	return U, V, W, nil
}

// ReshareVerify recomputes U', V', W' from public data alone (the previous
// dealer pub, the current encrypted shares, the claimed reshares and the
// next committee's public keys) and checks the member's Reshare proof
// against the member's current-committee and next-epoch dealer public
// keys, per spec §4.8.8.
func (c *Ctx) ReshareVerify(next *Ctx, committeePub, dealerPub, prevDealerPub kyber.Point, curEncShares []kyber.Point, myEncShare kyber.Point, r *Reshares, nextPks []kyber.Point) (bool, error) {
	if len(r.Shares) != next.N || len(nextPks) != next.N {
		return false, xerrors.Errorf("%w: reshare/committee length mismatch", ErrBadParameters)
	}

	Uprime, Vprime, Wprime, err := c.reshareAggregate(next, prevDealerPub, curEncShares, myEncShare, r.Shares, nextPks)
	if err != nil {
		return false, err
	}

	return nizk.VerifyReshare(c.Suite, c.Suite.Group().Point().Base(), Vprime, Wprime,
		committeePub, dealerPub, Uprime, r.Proof)
}

// ReconstructReshare performs the next-epoch's share recovery: given t+1
// Reshares outputs from distinct current-committee producers (identified by
// their current-committee indices) plus the next-committee member index j
// we are reconstructing for, it interpolates the j-th encrypted reshare
// across those t+1 producers via the same Lagrange-at-zero routine as
// Reconstruct, using the current epoch's threshold c.T since the producers
// are current-committee members, per spec §4.8.9.
func (c *Ctx) ReconstructReshare(perProducerReshares []*Reshares, producerIndices []int, nextMemberIdx int) (kyber.Point, error) {
	shares := make([]kyber.Point, len(perProducerReshares))
	for i, r := range perProducerReshares {
		if nextMemberIdx < 1 || nextMemberIdx > len(r.Shares) {
			return nil, xerrors.Errorf("%w: next member index %d out of range", ErrBadParameters, nextMemberIdx)
		}
		shares[i] = r.Shares[nextMemberIdx-1]
	}
	return shamir.Reconstruct(c.Suite, shares, producerIndices, c.T)
}
