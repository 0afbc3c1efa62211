// Package nizk implements the three Schnorr-style Fiat-Shamir NIZK proofs
// the DH-PVSS engine composes: DL (plain discrete-log knowledge), DLEQ
// (equal-exponent across two bases) and Reshare (joint knowledge of two
// discrete logs plus a Pedersen-style linear relation). Every Prove/Verify
// pair follows spec §4.3-§4.5 exactly; transcript order matters because
// the challenge must be bit-reproducible across implementations.
package nizk

import (
	"go.dedis.ch/kyber/v3"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/transcript"
)

// DLProof proves knowledge of x such that X = xG, per spec §4.3.
type DLProof struct {
	U kyber.Point
	Z kyber.Scalar
}

// ProveDL computes a Schnorr proof of knowledge of x, given X = xG is
// implicit (the verifier recomputes X itself from the statement it holds).
func ProveDL(s *curve.Suite, x kyber.Scalar) (*DLProof, error) {
	X := s.BaseMul(x)
	r := s.RandomScalar()
	U := s.BaseMul(r)

	c, err := transcript.Hash(s.Group(), transcript.P(s.Group().Point().Base()), transcript.P(X), transcript.P(U))
	if err != nil {
		return nil, &curve.ErrBackendFailure{Op: "ProveDL", Err: err}
	}

	z := s.AddMod(r, s.MulMod(c, x))
	return &DLProof{U: U, Z: z}, nil
}

// VerifyDL checks a DL proof against the public X = xG. It returns true
// iff the proof is accepted; it never panics on a malformed proof and
// never logs (verification failure is a normal, expected outcome per
// spec §7).
func VerifyDL(s *curve.Suite, X kyber.Point, pi *DLProof) (bool, error) {
	c, err := transcript.Hash(s.Group(), transcript.P(s.Group().Point().Base()), transcript.P(X), transcript.P(pi.U))
	if err != nil {
		return false, &curve.ErrBackendFailure{Op: "VerifyDL", Err: err}
	}

	lhs := s.BaseMul(pi.Z)
	rhs := s.PointAdd(pi.U, s.PointMul(c, X))
	return s.PointCmp(lhs, rhs), nil
}
