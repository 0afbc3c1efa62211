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

// Distribution is the output of DistributeProve: the n encrypted shares and
// the single aggregate DLEQ proof attesting they were built consistently
// with a degree-t Shamir-in-exponent polynomial, per spec §4.8.2.
type Distribution struct {
	Shares []kyber.Point // encrypted_shares[1..n]
	Proof  *nizk.DLEQProof
}

// DistributeProve runs the dealer side of distribution: it samples a fresh
// degree-t polynomial around the secret S, masks each share under its
// recipient's DH key with the dealer, and produces one aggregate DLEQ proof
// covering all n shares via the SCRAPE collapse.
func (c *Ctx) DistributeProve(dealer *KeyPair, pks []kyber.Point, secret kyber.Point) (*Distribution, error) {
	if len(pks) != c.N {
		return nil, xerrors.Errorf("%w: got %d committee keys, want %d", ErrBadParameters, len(pks), c.N)
	}

	sigma := shamir.GenerateShares(c.Suite, secret, c.T, c.N)

	encShares := make([]kyber.Point, c.N)
	for i := 0; i < c.N; i++ {
		dh := c.Suite.PointMul(dealer.Priv, pks[i])
		encShares[i] = c.Suite.PointAdd(dh, sigma[i])
	}

	// V itself is never placed in the proof; the SCRAPE dual-code
	// orthogonality relation guarantees dealer.Priv*U == V for a validly
	// formed sharing, so the DLEQ proof over (G, U) alone attests to it.
	U, _, err := c.distributeAggregate(dealer.Pub, pks, encShares)
	if err != nil {
		return nil, err
	}

	proof, _, _, err := nizk.ProveDLEQ(c.Suite, dealer.Priv, c.Suite.Group().Point().Base(), U)
	if err != nil {
		return nil, err
	}

	return &Distribution{Shares: encShares, Proof: proof}, nil
}

// distributeAggregate derives the degree n-t-2 scrape polynomial from the
// public transcript (dealer pub, committee pubs, encrypted shares) and folds
// the n shares into the pair of aggregate points U, V used by the DLEQ
// statement, per spec §4.8.2 steps 3-5.
func (c *Ctx) distributeAggregate(dealerPub kyber.Point, pks, encShares []kyber.Point) (U, V kyber.Point, err error) {
	m, err := transcript.HashPointsToPoly(c.Suite.Group(), c.N-c.T-1,
		[]kyber.Point{dealerPub}, pks, encShares)
	if err != nil {
		return nil, nil, &curve.ErrBackendFailure{Op: "distributeAggregate", Err: err}
	}

	e := scrape.Terms(c.Suite, c.Scrape.V, m)

	U, err = c.Suite.WeightedSum(e, pks)
	if err != nil {
		return nil, nil, err
	}
	V, err = c.Suite.WeightedSum(e, encShares)
	if err != nil {
		return nil, nil, err
	}
	return U, V, nil
}

// DistributeVerify recomputes the scrape aggregate from public data alone
// (dealer pub, committee pubs, the claimed encrypted shares) and checks the
// dealer's DLEQ proof against it. Acceptance means: with overwhelming
// probability, every encrypted share lies on a single degree-t polynomial
// masked consistently under the dealer's key, per spec §4.8.3.
func (c *Ctx) DistributeVerify(dealerPub kyber.Point, pks []kyber.Point, d *Distribution) (bool, error) {
	if len(pks) != c.N || len(d.Shares) != c.N {
		return false, xerrors.Errorf("%w: committee/shares length mismatch", ErrBadParameters)
	}

	U, V, err := c.distributeAggregate(dealerPub, pks, d.Shares)
	if err != nil {
		return false, err
	}

	return nizk.VerifyDLEQ(c.Suite, c.Suite.Group().Point().Base(), dealerPub, U, V, d.Proof)
}
