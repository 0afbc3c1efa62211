// Package pvss implements the DH-PVSS engine: distribution with proof,
// public verification, per-share decryption with proof, threshold
// reconstruction, and reshare to a successor committee with proof, per
// spec §4.8. It composes curve, transcript, nizk, shamir and scrape; it
// performs no I/O and holds no mutable shared state, matching spec §5.
package pvss

import (
	"go.dedis.ch/kyber/v3"
	"golang.org/x/xerrors"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/scrape"
)

// Sentinel errors. BadParameters, BadCardinality and BackendFailure are
// programmer-error conditions and are surfaced as fatal per spec §7;
// Verification is a normal, expected outcome carried as a plain bool from
// every Verify* function, never as an error on its own.
var (
	ErrBadParameters = xerrors.New("pvss: bad parameters")
)

// Ctx is a PvssCtx: the immutable public parameters for one epoch's
// committee size and threshold, plus the SCRAPE dual-code coefficients
// derived from them. Ctx is safe to share read-only across concurrent
// Verify calls; nothing here is ever mutated after Setup.
type Ctx struct {
	Suite  *curve.Suite
	T      int
	N      int
	Scrape *scrape.Coeffs
}

// Setup builds a PvssCtx for threshold t out of n committee members.
// Precondition n-t-2 > 0, per spec §4.8.1; violating it is a programmer
// error and returns ErrBadParameters.
func Setup(s *curve.Suite, t, n int) (*Ctx, error) {
	if n-t-2 <= 0 {
		return nil, xerrors.Errorf("%w: need n-t-2>0, got n=%d t=%d", ErrBadParameters, n, t)
	}
	return &Ctx{
		Suite:  s,
		T:      t,
		N:      n,
		Scrape: scrape.Setup(s, n),
	}, nil
}

// KeyPair is the {priv, pub} pair of spec §3, with invariant pub = priv*G.
type KeyPair struct {
	Priv kyber.Scalar
	Pub  kyber.Point
}

// Keygen samples a fresh KeyPair under the given suite.
func Keygen(s *curve.Suite) *KeyPair {
	priv := s.RandomScalar()
	return &KeyPair{Priv: priv, Pub: s.BaseMul(priv)}
}
