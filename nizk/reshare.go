package nizk

import (
	"go.dedis.ch/kyber/v3"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/transcript"
)

// ReshareProof proves joint knowledge of w1, w2 such that, for public
// points ga, gb, gc, Y1, Y2, Y3:
//
//	Y1 = w1*ga
//	Y2 = w2*ga
//	Y3 = w2*gb - w1*gc
//
// per spec §4.5. This is the proof each current-committee member attaches
// to its reshare output: w1 is the member's committee private key, w2 its
// dealer private key for the next epoch, and Y3 is a Pedersen-style
// commitment binding the reshared scrape sum to both.
type ReshareProof struct {
	R1 kyber.Point
	R2 kyber.Point
	R3 kyber.Point
	Z1 kyber.Scalar
	Z2 kyber.Scalar
}

// ProveReshare computes the joint NIZK proof. The reference C source's own
// nizk_reshare_verify is an unfinished stub (always rejects); this
// implementation follows the commented Swift reference embedded in that
// source file, which matches spec §4.5 exactly.
func ProveReshare(s *curve.Suite, w1, w2 kyber.Scalar, ga, gb, gc, Y1, Y2, Y3 kyber.Point) (*ReshareProof, error) {
	r1 := s.RandomScalar()
	r2 := s.RandomScalar()

	R1 := s.PointMul(r1, ga)
	R2 := s.PointMul(r2, ga)
	R3 := s.PointSub(s.PointMul(r2, gb), s.PointMul(r1, gc))

	c, err := transcript.Hash(s.Group(),
		transcript.P(ga), transcript.P(gb), transcript.P(gc),
		transcript.P(Y1), transcript.P(Y2), transcript.P(Y3),
		transcript.P(R1), transcript.P(R2), transcript.P(R3))
	if err != nil {
		return nil, &curve.ErrBackendFailure{Op: "ProveReshare", Err: err}
	}

	z1 := s.AddMod(r1, s.MulMod(c, w1))
	z2 := s.AddMod(r2, s.MulMod(c, w2))
	return &ReshareProof{R1: R1, R2: R2, R3: R3, Z1: z1, Z2: z2}, nil
}

// VerifyReshare checks all three relations of spec §4.5; every one of
// them must hold for acceptance:
//
//	R1 + c*Y1 == z1*ga
//	R2 + c*Y2 == z2*ga
//	R3 + c*Y3 == z2*gb - z1*gc
func VerifyReshare(s *curve.Suite, ga, gb, gc, Y1, Y2, Y3 kyber.Point, pi *ReshareProof) (bool, error) {
	c, err := transcript.Hash(s.Group(),
		transcript.P(ga), transcript.P(gb), transcript.P(gc),
		transcript.P(Y1), transcript.P(Y2), transcript.P(Y3),
		transcript.P(pi.R1), transcript.P(pi.R2), transcript.P(pi.R3))
	if err != nil {
		return false, &curve.ErrBackendFailure{Op: "VerifyReshare", Err: err}
	}

	lhs1 := s.PointAdd(pi.R1, s.PointMul(c, Y1))
	rhs1 := s.PointMul(pi.Z1, ga)
	if !s.PointCmp(lhs1, rhs1) {
		return false, nil
	}

	lhs2 := s.PointAdd(pi.R2, s.PointMul(c, Y2))
	rhs2 := s.PointMul(pi.Z2, ga)
	if !s.PointCmp(lhs2, rhs2) {
		return false, nil
	}

	lhs3 := s.PointAdd(pi.R3, s.PointMul(c, Y3))
	rhs3 := s.PointSub(s.PointMul(pi.Z2, gb), s.PointMul(pi.Z1, gc))
	return s.PointCmp(lhs3, rhs3), nil
}
