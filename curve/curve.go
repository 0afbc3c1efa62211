// Package curve provides the CurveCtx collaborator the DH-PVSS engine is
// built against: a prime-order group with a fixed generator, modular scalar
// arithmetic and point operations, backed by go.dedis.ch/kyber/v3.
//
// The engine packages (transcript, nizk, shamir, scrape, pvss) never touch
// kyber directly; they go through a *Suite so that swapping the backing
// group never requires touching proof or protocol logic.
package curve

import (
	"crypto/cipher"
	"sync"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"go.dedis.ch/kyber/v3/group/nist"
	"go.dedis.ch/kyber/v3/util/random"
	"golang.org/x/xerrors"
)

// Suite is a prime-order group together with the operations the DH-PVSS
// engine needs. It wraps a kyber.Group; every method is a thin,
// allocation-light pass-through, matching spec's "constant-memory, no
// hidden allocation after setup" requirement for the arithmetic façade.
type Suite struct {
	group kyber.Group
	name  string
}

// ErrBackendFailure wraps any error a backend primitive reports. Per spec,
// such failures are fatal: they indicate programmer error or a broken
// backend, never a normal runtime outcome.
type ErrBackendFailure struct {
	Op  string
	Err error
}

func (e *ErrBackendFailure) Error() string {
	return "dhpvss: backend failure in " + e.Op + ": " + e.Err.Error()
}

func (e *ErrBackendFailure) Unwrap() error { return e.Err }

// ErrUnsupportedCurve is returned by FromName for a curve name the package
// does not recognize. FromName checks the name only; it does not inspect
// the group's order.
var ErrUnsupportedCurve = xerrors.New("dhpvss: unsupported curve")

// NewP256 returns the default suite: NIST P-256, the spec's default curve.
func NewP256() *Suite {
	return &Suite{group: nist.NewBlakeSHA256P256(), name: "P256"}
}

// NewEd25519 returns an alternative suite over Curve25519's Edwards form.
func NewEd25519() *Suite {
	return &Suite{group: edwards25519.NewBlakeSHA256Ed25519(), name: "ed25519"}
}

// FromName resolves a suite by name ("P256", "ed25519", "secp256k1").
func FromName(name string) (*Suite, error) {
	switch name {
	case "", "P256":
		return NewP256(), nil
	case "ed25519":
		return NewEd25519(), nil
	case "secp256k1":
		return NewSecp256k1(), nil
	default:
		return nil, xerrors.Errorf("%w: %q", ErrUnsupportedCurve, name)
	}
}

// Name reports the curve this suite was constructed for.
func (s *Suite) Name() string { return s.name }

// Group exposes the underlying kyber.Group for code (wire, scrape setup)
// that needs to allocate bare Points/Scalars directly.
func (s *Suite) Group() kyber.Group { return s.group }

// ScalarLen is the byte length of a scalar's fixed-width encoding.
func (s *Suite) ScalarLen() int { return s.group.ScalarLen() }

// PointLen is the byte length of a point's compressed encoding.
func (s *Suite) PointLen() int { return s.group.PointLen() }

// RandomScalar returns a uniformly random scalar in [0, q) using a
// cryptographically secure source. The deterministic override hook this
// checks is set only from export_test.go, a _test.go file the Go tool
// excludes from every non-test build, so no release binary can pin it.
func (s *Suite) RandomScalar() kyber.Scalar {
	deterministicScalarMu.Lock()
	det := deterministicScalar
	deterministicScalarMu.Unlock()
	if det != nil {
		return s.group.Scalar().SetInt64(*det)
	}
	return s.group.Scalar().Pick(s.stream())
}

func (s *Suite) stream() cipher.Stream { return random.New() }

// ScalarFromInt64 builds a scalar from a small integer, used for
// committee indices (alpha_i = beta_i = i).
func (s *Suite) ScalarFromInt64(v int64) kyber.Scalar {
	return s.group.Scalar().SetInt64(v)
}

// ZeroScalar returns the additive identity.
func (s *Suite) ZeroScalar() kyber.Scalar { return s.group.Scalar().Zero() }

// AddMod returns a+b mod q.
func (s *Suite) AddMod(a, b kyber.Scalar) kyber.Scalar {
	return s.group.Scalar().Add(a, b)
}

// SubMod returns a-b mod q.
func (s *Suite) SubMod(a, b kyber.Scalar) kyber.Scalar {
	return s.group.Scalar().Sub(a, b)
}

// MulMod returns a*b mod q.
func (s *Suite) MulMod(a, b kyber.Scalar) kyber.Scalar {
	return s.group.Scalar().Mul(a, b)
}

// InvMod returns a^-1 mod q.
func (s *Suite) InvMod(a kyber.Scalar) kyber.Scalar {
	return s.group.Scalar().Inv(a)
}

// NegMod returns -a mod q.
func (s *Suite) NegMod(a kyber.Scalar) kyber.Scalar {
	return s.group.Scalar().Neg(a)
}

// ExpMod raises base to a non-negative small exponent mod q. Used by the
// SCRAPE polynomial evaluator and by Shamir share generation, where
// exponents stay below the committee size, so repeated-squaring via
// kyber's own Mul is the idiomatic Go replacement for the source's
// BN_mod_exp.
func (s *Suite) ExpMod(base kyber.Scalar, exp int) kyber.Scalar {
	result := s.group.Scalar().One()
	if exp == 0 {
		return result
	}
	acc := base.Clone()
	e := exp
	first := true
	for e > 0 {
		if e&1 == 1 {
			if first {
				result = acc.Clone()
				first = false
			} else {
				result = s.group.Scalar().Mul(result, acc)
			}
		}
		acc = s.group.Scalar().Mul(acc, acc)
		e >>= 1
	}
	return result
}

// BaseMul returns s*G for the suite's generator.
func (s *Suite) BaseMul(scalar kyber.Scalar) kyber.Point {
	return s.group.Point().Mul(scalar, nil)
}

// PointMul returns scalar*P.
func (s *Suite) PointMul(scalar kyber.Scalar, p kyber.Point) kyber.Point {
	return s.group.Point().Mul(scalar, p)
}

// PointAdd returns a+b.
func (s *Suite) PointAdd(a, b kyber.Point) kyber.Point {
	return s.group.Point().Add(a, b)
}

// PointSub returns a-b.
func (s *Suite) PointSub(a, b kyber.Point) kyber.Point {
	return s.group.Point().Sub(a, b)
}

// PointNeg returns -a.
func (s *Suite) PointNeg(a kyber.Point) kyber.Point {
	return s.group.Point().Neg(a)
}

// PointCmp reports whether two points are equal.
func (s *Suite) PointCmp(a, b kyber.Point) bool {
	return a.Equal(b)
}

// RandomPoint returns a uniformly random group element, used by tests that
// need an arbitrary base distinct from G.
func (s *Suite) RandomPoint() kyber.Point {
	return s.group.Point().Pick(s.stream())
}

// NullPoint returns the group identity.
func (s *Suite) NullPoint() kyber.Point { return s.group.Point().Null() }

// WeightedSum computes sum(weights[i] * points[i]) without building an
// intermediate slice beyond the single running accumulator, matching
// spec's "no hidden allocation beyond a single reusable buffer" note.
func (s *Suite) WeightedSum(weights []kyber.Scalar, points []kyber.Point) (kyber.Point, error) {
	if len(weights) != len(points) {
		return nil, &ErrBackendFailure{Op: "WeightedSum", Err: xerrors.New("mismatched lengths")}
	}
	sum := s.group.Point().Null()
	term := s.group.Point()
	for i := range weights {
		term.Mul(weights[i], points[i])
		sum.Add(sum, term)
	}
	return sum, nil
}

// deterministicScalar is nil in every production code path. The only code
// that ever assigns to it lives in export_test.go, which is a _test.go
// file and therefore absent from non-test compilation entirely.
var (
	deterministicScalar   *int64
	deterministicScalarMu sync.Mutex
)
