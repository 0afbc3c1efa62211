// Package transcript implements the Fiat-Shamir transcript hasher shared by
// every NIZK proof in this module. Its contract is bit-exact by design: two
// independent implementations that serialize points and scalars the same
// way must derive the same challenge from the same public transcript.
package transcript

import (
	"crypto/sha256"
	"math/big"

	"go.dedis.ch/kyber/v3"
)

// Item is anything that can be appended to a transcript: a Point or a
// Scalar. Appending order must match the order the spec gives each
// producer's argument list.
type Item interface {
	appendTo(t *Transcript)
}

type pointItem struct{ p kyber.Point }
type scalarItem struct{ s kyber.Scalar }

// P wraps a point for inclusion in a transcript.
func P(p kyber.Point) Item { return pointItem{p} }

// S wraps a scalar for inclusion in a transcript.
func S(s kyber.Scalar) Item { return scalarItem{s} }

func (p pointItem) appendTo(t *Transcript) {
	b, err := p.p.MarshalBinary() // compressed SEC1, per spec §4.2
	if err != nil {
		t.err = err
		return
	}
	t.h.Write(b)
}

func (s scalarItem) appendTo(t *Transcript) {
	t.h.Write(minimalBytes(s.s))
}

// minimalBytes returns the scalar's minimal big-endian unsigned byte
// representation: no leading zero byte, no length prefix. A zero scalar
// serializes to a single zero byte, matching math/big.Int.Bytes semantics
// extended with that one edge case.
func minimalBytes(s kyber.Scalar) []byte {
	raw, err := s.MarshalBinary()
	if err != nil {
		return nil
	}
	bi := new(big.Int).SetBytes(raw)
	b := bi.Bytes()
	if len(b) == 0 {
		return []byte{0}
	}
	return b
}

// Transcript accumulates an ordered sequence of points/scalars into a
// SHA-256 hash chain and reduces the result modulo the group order q.
type Transcript struct {
	h   hashWriter
	err error
}

// hashWriter is the minimal surface of hash.Hash this package touches;
// kept narrow so tests can substitute a recording writer.
type hashWriter interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
}

// New starts a fresh transcript.
func New() *Transcript {
	return &Transcript{h: sha256.New()}
}

// Append adds items to the transcript in order.
func (t *Transcript) Append(items ...Item) *Transcript {
	for _, it := range items {
		it.appendTo(t)
	}
	return t
}

// Challenge finalizes the transcript into a scalar challenge reduced
// modulo the given group's order: the 32-byte SHA-256 digest is
// interpreted as a big-endian unsigned integer and reduced to a
// non-negative residue, then loaded into a fresh scalar via SetBytes
// (kyber's Scalar.SetBytes already reduces mod q for every backend used
// here).
func (t *Transcript) Challenge(group kyber.Group) (kyber.Scalar, error) {
	if t.err != nil {
		return nil, t.err
	}
	digest := t.h.Sum(nil)
	return group.Scalar().SetBytes(digest), nil
}

// Hash hashes the given items into a single scalar in one call, used by
// HashPointsToPoly to first collapse each input list into one scalar.
func Hash(group kyber.Group, items ...Item) (kyber.Scalar, error) {
	return New().Append(items...).Challenge(group)
}

// HashPointsToPoly implements the derived helper of spec §4.2: given a set
// of point lists (e.g. [dealer pub], committee pubs, encrypted shares), it
// derives numCoeffs pseudorandom scalar coefficients from their transcript.
//
//  1. h_list_k = hash(all points of list k)
//  2. poly[0]  = hash(h_list_1 || ... || h_list_k)     (scalars, as above)
//  3. poly[i]  = hash(poly[i-1])                        for i = 1..numCoeffs-1
//
// Every poly[i] is already reduced mod q by Challenge.
func HashPointsToPoly(group kyber.Group, numCoeffs int, lists ...[]kyber.Point) ([]kyber.Scalar, error) {
	listHashes := make([]Item, len(lists))
	for i, list := range lists {
		items := make([]Item, len(list))
		for j, p := range list {
			items[j] = P(p)
		}
		h, err := Hash(group, items...)
		if err != nil {
			return nil, err
		}
		listHashes[i] = S(h)
	}

	poly := make([]kyber.Scalar, numCoeffs)
	if numCoeffs == 0 {
		return poly, nil
	}
	first, err := Hash(group, listHashes...)
	if err != nil {
		return nil, err
	}
	poly[0] = first
	for i := 1; i < numCoeffs; i++ {
		next, err := Hash(group, S(poly[i-1]))
		if err != nil {
			return nil, err
		}
		poly[i] = next
	}
	return poly, nil
}
