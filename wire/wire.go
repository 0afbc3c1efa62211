// Package wire provides the on-the-wire encoding for DH-PVSS messages:
// distributions, decrypted shares and reshares, as exchanged between a
// dealer, committee members and the public board. It follows the
// serialization contract of spec §6 (compressed points, fixed-width
// scalars) and uses go.dedis.ch/protobuf for struct-level framing, the way
// drand-drand frames its DKG/beacon packets over the wire.
package wire

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"

	"github.com/brorsson/dhpvss/curve"
	"github.com/brorsson/dhpvss/nizk"
	"github.com/brorsson/dhpvss/pvss"
)

// PointBytes is a point in its fixed-length compressed SEC1 encoding.
type PointBytes []byte

// ScalarBytes is a scalar in its fixed-width big-endian encoding.
type ScalarBytes []byte

// DLEQProof is the wire form of nizk.DLEQProof.
type DLEQProof struct {
	Ra PointBytes
	Rb PointBytes
	Z  ScalarBytes
}

// ReshareProof is the wire form of nizk.ReshareProof.
type ReshareProof struct {
	R1 PointBytes
	R2 PointBytes
	R3 PointBytes
	Z1 ScalarBytes
	Z2 ScalarBytes
}

// Distribution is the wire form of pvss.Distribution.
type Distribution struct {
	Shares []PointBytes
	Proof  DLEQProof
}

// DecryptedShare is the wire form of pvss.DecryptedShare.
type DecryptedShare struct {
	Share PointBytes
	Proof DLEQProof
}

// Reshares is the wire form of pvss.Reshares.
type Reshares struct {
	Shares []PointBytes
	Proof  ReshareProof
}

func encodePoint(p kyber.Point) (PointBytes, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("wire: encode point: %w", err)
	}
	return PointBytes(b), nil
}

func decodePoint(s *curve.Suite, b PointBytes) (kyber.Point, error) {
	p := s.Group().Point()
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, xerrors.Errorf("wire: decode point: %w", err)
	}
	return p, nil
}

func encodeScalar(x kyber.Scalar) (ScalarBytes, error) {
	b, err := x.MarshalBinary()
	if err != nil {
		return nil, xerrors.Errorf("wire: encode scalar: %w", err)
	}
	return ScalarBytes(b), nil
}

func decodeScalar(s *curve.Suite, b ScalarBytes) (kyber.Scalar, error) {
	x := s.Group().Scalar()
	if err := x.UnmarshalBinary(b); err != nil {
		return nil, xerrors.Errorf("wire: decode scalar: %w", err)
	}
	return x, nil
}

func encodeDLEQ(pi *nizk.DLEQProof) (DLEQProof, error) {
	ra, err := encodePoint(pi.Ra)
	if err != nil {
		return DLEQProof{}, err
	}
	rb, err := encodePoint(pi.Rb)
	if err != nil {
		return DLEQProof{}, err
	}
	z, err := encodeScalar(pi.Z)
	if err != nil {
		return DLEQProof{}, err
	}
	return DLEQProof{Ra: ra, Rb: rb, Z: z}, nil
}

func decodeDLEQ(s *curve.Suite, w DLEQProof) (*nizk.DLEQProof, error) {
	ra, err := decodePoint(s, w.Ra)
	if err != nil {
		return nil, err
	}
	rb, err := decodePoint(s, w.Rb)
	if err != nil {
		return nil, err
	}
	z, err := decodeScalar(s, w.Z)
	if err != nil {
		return nil, err
	}
	return &nizk.DLEQProof{Ra: ra, Rb: rb, Z: z}, nil
}

func encodeReshareProof(pi *nizk.ReshareProof) (ReshareProof, error) {
	r1, err := encodePoint(pi.R1)
	if err != nil {
		return ReshareProof{}, err
	}
	r2, err := encodePoint(pi.R2)
	if err != nil {
		return ReshareProof{}, err
	}
	r3, err := encodePoint(pi.R3)
	if err != nil {
		return ReshareProof{}, err
	}
	z1, err := encodeScalar(pi.Z1)
	if err != nil {
		return ReshareProof{}, err
	}
	z2, err := encodeScalar(pi.Z2)
	if err != nil {
		return ReshareProof{}, err
	}
	return ReshareProof{R1: r1, R2: r2, R3: r3, Z1: z1, Z2: z2}, nil
}

func decodeReshareProof(s *curve.Suite, w ReshareProof) (*nizk.ReshareProof, error) {
	r1, err := decodePoint(s, w.R1)
	if err != nil {
		return nil, err
	}
	r2, err := decodePoint(s, w.R2)
	if err != nil {
		return nil, err
	}
	r3, err := decodePoint(s, w.R3)
	if err != nil {
		return nil, err
	}
	z1, err := decodeScalar(s, w.Z1)
	if err != nil {
		return nil, err
	}
	z2, err := decodeScalar(s, w.Z2)
	if err != nil {
		return nil, err
	}
	return &nizk.ReshareProof{R1: r1, R2: r2, R3: r3, Z1: z1, Z2: z2}, nil
}

// EncodeDistribution converts a pvss.Distribution to its wire form.
func EncodeDistribution(d *pvss.Distribution) (*Distribution, error) {
	shares := make([]PointBytes, len(d.Shares))
	for i, p := range d.Shares {
		b, err := encodePoint(p)
		if err != nil {
			return nil, err
		}
		shares[i] = b
	}
	proof, err := encodeDLEQ(d.Proof)
	if err != nil {
		return nil, err
	}
	return &Distribution{Shares: shares, Proof: proof}, nil
}

// DecodeDistribution converts a wire Distribution back under the given
// suite.
func DecodeDistribution(s *curve.Suite, w *Distribution) (*pvss.Distribution, error) {
	shares := make([]kyber.Point, len(w.Shares))
	for i, b := range w.Shares {
		p, err := decodePoint(s, b)
		if err != nil {
			return nil, err
		}
		shares[i] = p
	}
	proof, err := decodeDLEQ(s, w.Proof)
	if err != nil {
		return nil, err
	}
	return &pvss.Distribution{Shares: shares, Proof: proof}, nil
}

// EncodeDecryptedShare converts a pvss.DecryptedShare to its wire form.
func EncodeDecryptedShare(d *pvss.DecryptedShare) (*DecryptedShare, error) {
	share, err := encodePoint(d.Share)
	if err != nil {
		return nil, err
	}
	proof, err := encodeDLEQ(d.Proof)
	if err != nil {
		return nil, err
	}
	return &DecryptedShare{Share: share, Proof: proof}, nil
}

// DecodeDecryptedShare converts a wire DecryptedShare back under the given
// suite.
func DecodeDecryptedShare(s *curve.Suite, w *DecryptedShare) (*pvss.DecryptedShare, error) {
	share, err := decodePoint(s, w.Share)
	if err != nil {
		return nil, err
	}
	proof, err := decodeDLEQ(s, w.Proof)
	if err != nil {
		return nil, err
	}
	return &pvss.DecryptedShare{Share: share, Proof: proof}, nil
}

// EncodeReshares converts a pvss.Reshares to its wire form.
func EncodeReshares(r *pvss.Reshares) (*Reshares, error) {
	shares := make([]PointBytes, len(r.Shares))
	for i, p := range r.Shares {
		b, err := encodePoint(p)
		if err != nil {
			return nil, err
		}
		shares[i] = b
	}
	proof, err := encodeReshareProof(r.Proof)
	if err != nil {
		return nil, err
	}
	return &Reshares{Shares: shares, Proof: proof}, nil
}

// DecodeReshares converts a wire Reshares back under the given suite.
func DecodeReshares(s *curve.Suite, w *Reshares) (*pvss.Reshares, error) {
	shares := make([]kyber.Point, len(w.Shares))
	for i, b := range w.Shares {
		p, err := decodePoint(s, b)
		if err != nil {
			return nil, err
		}
		shares[i] = p
	}
	proof, err := decodeReshareProof(s, w.Proof)
	if err != nil {
		return nil, err
	}
	return &pvss.Reshares{Shares: shares, Proof: proof}, nil
}

// Marshal frames any of the wire structs above (or a slice/composite of
// them) using protobuf, the same framing drand-drand uses for its DKG and
// beacon packets.
func Marshal(v interface{}) ([]byte, error) {
	b, err := protobuf.Encode(v)
	if err != nil {
		return nil, xerrors.Errorf("wire: marshal: %w", err)
	}
	return b, nil
}

// Unmarshal decodes bytes framed by Marshal into v, which must be a pointer
// to one of the wire structs above.
func Unmarshal(b []byte, v interface{}) error {
	if err := protobuf.Decode(b, v); err != nil {
		return xerrors.Errorf("wire: unmarshal: %w", err)
	}
	return nil
}
