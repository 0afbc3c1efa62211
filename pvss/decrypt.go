package pvss

import (
	"go.dedis.ch/kyber/v3"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/nizk"
	"github.com/brorsson/dhpvss/shamir"
)

// DecryptedShare is the output of DecryptShareProve: a member's plain share
// and the DLEQ proof that it was correctly unmasked under the DH key shared
// with the dealer, per spec §4.8.4.
type DecryptedShare struct {
	Share kyber.Point
	Proof *nizk.DLEQProof
}

// DecryptShareProve strips the DH mask member.Priv*dealerPub from the
// encrypted share and proves, via DLEQ, that member.Pub and the recovered
// DH point share the same exponent member.Priv against bases G and
// dealerPub respectively.
func DecryptShareProve(s *curve.Suite, dealerPub kyber.Point, member *KeyPair, encShare kyber.Point) (*DecryptedShare, error) {
	dh := s.PointMul(member.Priv, dealerPub)
	share := s.PointSub(encShare, dh)

	proof, _, _, err := nizk.ProveDLEQ(s, member.Priv, s.Group().Point().Base(), dealerPub)
	if err != nil {
		return nil, err
	}
	return &DecryptedShare{Share: share, Proof: proof}, nil
}

// DecryptShareVerify recomputes diff = encShare - share (the claimed DH
// mask) and checks the member's DLEQ proof that memberPub and diff share
// the exponent member.Priv against bases G and dealerPub.
func DecryptShareVerify(s *curve.Suite, dealerPub, memberPub, encShare kyber.Point, d *DecryptedShare) (bool, error) {
	diff := s.PointSub(encShare, d.Share)
	return nizk.VerifyDLEQ(s, s.Group().Point().Base(), memberPub, dealerPub, diff, d.Proof)
}

// Reconstruct recovers the original point secret from t+1 plain shares at
// their committee indices, per spec §4.8.5.
func (c *Ctx) Reconstruct(shares []kyber.Point, indices []int) (kyber.Point, error) {
	return shamir.Reconstruct(c.Suite, shares, indices, c.T)
}

// CommitteeDistKeyCalc computes the joint distribution public key the
// current committee presents to the next epoch's dealer role: the same
// Lagrange-at-zero routine as Reconstruct, applied to member public keys
// instead of shares, per spec §4.8.6.
func (c *Ctx) CommitteeDistKeyCalc(pks []kyber.Point, indices []int) (kyber.Point, error) {
	return shamir.Reconstruct(c.Suite, pks, indices, c.T)
}
