package registry

import (
	"xdao.co/anchor/addr"
	"xdao.co/anchor/deriv"
)

// Proof demonstrates that the caller originally deployed the subject. The
// registry accepts the two deterministic derivation schemes; a proof is
// never required when the caller is the subject itself.
type Proof interface {
	// derive recomputes the address the caller's claimed deployment would
	// have produced.
	derive(caller addr.Address) (addr.Address, error)
}

// NonceProof claims the subject was deployed as the caller's nonce-th
// transaction (sequential-nonce scheme).
type NonceProof uint64

func (p NonceProof) derive(caller addr.Address) (addr.Address, error) {
	return deriv.ContractAddress(caller, uint64(p))
}

// SaltProof claims the subject was deployed through the salted-digest scheme
// with the given salt and initialization-code digest.
type SaltProof struct {
	Salt       [32]byte
	InitDigest [32]byte
}

func (p SaltProof) derive(caller addr.Address) (addr.Address, error) {
	return deriv.SaltedAddress(caller, p.Salt, p.InitDigest), nil
}
