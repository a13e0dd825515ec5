// Package keys derives deterministic caller identities for the anchor CLI
// harness: an ed25519 keypair from a seed, and the 20-byte registry address
// bound to its public key.
package keys

import (
	"crypto/ed25519"
	"fmt"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/deriv"
)

// AddressFromPublicKey binds a registry address to an ed25519 public key:
// the low 20 bytes of the key's keccak-256 digest.
func AddressFromPublicKey(pub ed25519.PublicKey) addr.Address {
	sum := deriv.Keccak256(pub)
	a, _ := addr.AddressFromBytes(sum[12:])
	return a
}

// AddressFromSeed derives the registry address for an ed25519 seed.
func AddressFromSeed(seed []byte) (addr.Address, error) {
	if len(seed) != ed25519.SeedSize {
		return addr.Address{}, fmt.Errorf("keys: seed must be %d bytes", ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return AddressFromPublicKey(priv.Public().(ed25519.PublicKey)), nil
}

// DeriveAccountSeed deterministically derives an account-specific seed from
// a root seed, so one root can drive several harness identities.
func DeriveAccountSeed(rootSeed []byte, account string) ([]byte, error) {
	if len(rootSeed) != ed25519.SeedSize {
		return nil, fmt.Errorf("keys: root seed must be %d bytes", ed25519.SeedSize)
	}
	if account == "" {
		return nil, fmt.Errorf("keys: account name is required")
	}
	sum := deriv.Keccak256(rootSeed, []byte{0}, []byte("xdao-anchor-ident-v1"), []byte{0}, []byte(account))
	out := make([]byte, ed25519.SeedSize)
	copy(out, sum[:ed25519.SeedSize])
	return out, nil
}
