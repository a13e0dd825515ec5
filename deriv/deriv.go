// Package deriv recomputes deterministic contract addresses from first
// principles, for both the sequential-nonce scheme and the salted-digest
// scheme. Both derivations are pure; identical inputs always produce
// identical addresses.
package deriv

import (
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/sha3"

	"xdao.co/anchor/addr"
)

// MaxNonce is the largest supported sequence number. Wider nonces are a
// documented limitation of the derivation format, not of this implementation.
const MaxNonce = 1<<32 - 1

// ErrNonceRange is returned for sequence numbers above MaxNonce.
var ErrNonceRange = errors.New("deriv: nonce out of range")

// saltedPrefix is the one-byte domain tag of the salted-digest scheme.
const saltedPrefix = 0xff

// Keccak256 hashes the concatenation of its arguments with legacy
// Keccak-256, the primitive every derived address in this module depends on.
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// ContractAddress derives the address produced by origin deploying a
// contract as its nonce-th transaction: the low 20 bytes of
// keccak256(rlp([origin, nonce])).
func ContractAddress(origin addr.Address, nonce uint64) (addr.Address, error) {
	payload, err := createPayload(origin, nonce)
	if err != nil {
		return addr.Address{}, err
	}
	sum := Keccak256(payload)
	a, _ := addr.AddressFromBytes(sum[12:])
	return a, nil
}

// SaltedAddress derives the address produced by the salted-digest scheme:
// the low 20 bytes of keccak256(0xff || origin || salt || initDigest), where
// initDigest is the keccak256 digest of the initialization code.
func SaltedAddress(origin addr.Address, salt, initDigest [32]byte) addr.Address {
	sum := Keccak256([]byte{saltedPrefix}, origin[:], salt[:], initDigest[:])
	a, _ := addr.AddressFromBytes(sum[12:])
	return a
}

// createPayload builds rlp([origin, nonce]). The list payload is the 21-byte
// address item followed by the nonce item, and stays well under the 56-byte
// long-form threshold, so the list header is always a single byte.
func createPayload(origin addr.Address, nonce uint64) ([]byte, error) {
	n, err := nonceItem(nonce)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 2+addr.Size+len(n))
	out = append(out, byte(0xc0+1+addr.Size+len(n)))
	out = append(out, 0x80+addr.Size)
	out = append(out, origin[:]...)
	out = append(out, n...)
	return out, nil
}

// nonceItem encodes a sequence number as an RLP item. The layout is an
// explicit branch table over the nonce's magnitude; every branch is pinned
// by golden vectors in the tests.
func nonceItem(nonce uint64) ([]byte, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)
	switch {
	case nonce == 0:
		// Zero is the empty byte string.
		return []byte{0x80}, nil
	case nonce <= 0x7f:
		return []byte{byte(nonce)}, nil
	case nonce <= 0xff:
		return []byte{0x81, buf[7]}, nil
	case nonce <= 0xffff:
		return append([]byte{0x82}, buf[6:]...), nil
	case nonce <= 0xffffff:
		return append([]byte{0x83}, buf[5:]...), nil
	case nonce <= MaxNonce:
		return append([]byte{0x84}, buf[4:]...), nil
	default:
		return nil, ErrNonceRange
	}
}
