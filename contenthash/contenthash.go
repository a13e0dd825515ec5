// Package contenthash converts between the self-describing external content
// identifier (a multihash: function code, digest length, digest bytes) and
// the fixed-width triple the registry stores.
package contenthash

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// DigestSize is the fixed internal storage width for digests.
const DigestSize = 32

var (
	// ErrZeroLength rejects a zero digest length, which is reserved as the
	// entry-absent sentinel and must never be storable.
	ErrZeroLength = errors.New("contenthash: zero digest length")

	// ErrOversizeDigest rejects digests wider than the storage slot.
	ErrOversizeDigest = errors.New("contenthash: digest exceeds storage width")

	// ErrMalformed rejects identifiers whose declared length disagrees with
	// the bytes present, or that cannot be parsed at all.
	ErrMalformed = errors.New("contenthash: malformed identifier")
)

// Triple is the stored form of a content identifier: a fixed-width digest
// slot, the hash function code, and the digest's semantic byte length.
// Only the first Length bytes of Digest are meaningful.
type Triple struct {
	Digest [DigestSize]byte
	Code   uint64
	Length uint8
}

// Validate checks the triple's length invariants.
func (t Triple) Validate() error {
	if t.Length == 0 {
		return ErrZeroLength
	}
	if int(t.Length) > DigestSize {
		return ErrOversizeDigest
	}
	return nil
}

// Decode parses a self-describing identifier into a Triple. It fails when
// the declared length does not match the remaining bytes or exceeds the
// storage width, and rejects zero-length digests outright.
func Decode(buf []byte) (Triple, error) {
	dec, err := multihash.Decode(buf)
	if err != nil {
		return Triple{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.Length == 0 {
		return Triple{}, ErrZeroLength
	}
	if dec.Length > DigestSize {
		return Triple{}, ErrOversizeDigest
	}
	if len(dec.Digest) != dec.Length {
		return Triple{}, ErrMalformed
	}
	var t Triple
	t.Code = dec.Code
	t.Length = uint8(dec.Length)
	copy(t.Digest[:], dec.Digest)
	return t, nil
}

// Encode serializes a Triple back into the self-describing identifier form.
// Encode is the exact inverse of Decode for any triple Decode produced.
func Encode(t Triple) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	buf, err := multihash.Encode(t.Digest[:t.Length], t.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return buf, nil
}

// DecodeB58 parses the base58 textual form of an identifier.
func DecodeB58(s string) (Triple, error) {
	mh, err := multihash.FromB58String(s)
	if err != nil {
		return Triple{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Decode(mh)
}

// B58String returns the base58 textual form of the identifier.
func (t Triple) B58String() (string, error) {
	buf, err := Encode(t)
	if err != nil {
		return "", err
	}
	return multihash.Multihash(buf).B58String(), nil
}

// CID bridges a stored sha2-256 triple to an IPFS-compatible CIDv1 with the
// raw multicodec, for external indexers that key on CIDs.
func (t Triple) CID() (cid.Cid, error) {
	buf, err := Encode(t)
	if err != nil {
		return cid.Undef, err
	}
	if t.Code != multihash.SHA2_256 || t.Length != DigestSize {
		return cid.Undef, fmt.Errorf("contenthash: cid form requires a sha2-256/%d identifier", DigestSize)
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(buf)), nil
}

// Sum hashes data with sha2-256 and returns the resulting triple. It is the
// canonical way to produce an identifier for new content.
func Sum(data []byte) (Triple, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return Triple{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Decode(mh)
}
