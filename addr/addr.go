// Package addr defines the identity and namespace value types shared by the
// anchor registry: 20-byte account addresses, the delegate authorization
// states, and category identifiers.
package addr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Size is the width of an account address in bytes.
const Size = 20

// Address is a 20-byte account or contract address.
type Address [Size]byte

// ZeroAddress is the all-zero address. It is a valid value, not a sentinel;
// sentinel delegation states are carried by Delegate.
var ZeroAddress Address

// AddressFromHex parses an address from hex, with or without a 0x prefix.
func AddressFromHex(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("addr: invalid hex address: %w", err)
	}
	return AddressFromBytes(b)
}

// AddressFromBytes converts a 20-byte slice into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != Size {
		return Address{}, fmt.Errorf("addr: address must be %d bytes, got %d", Size, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Hex returns the 0x-prefixed lowercase hex form.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string { return a.Hex() }

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool { return a == ZeroAddress }

type delegateKind uint8

const (
	delegateNone delegateKind = iota
	delegatePublic
	delegateAddr
)

// Delegate is the authorization state of a registry entry: unset, the public
// "anyone may write" sentinel, or a concrete address. Modeling the sentinels
// as tags keeps them out of the address value space.
type Delegate struct {
	kind delegateKind
	addr Address
}

// NoDelegate returns the unset delegate. An entry whose delegate is unset is
// absent.
func NoDelegate() Delegate { return Delegate{} }

// PublicDelegate returns the sentinel authorizing every caller.
func PublicDelegate() Delegate { return Delegate{kind: delegatePublic} }

// DelegateOf returns a delegate bound to a concrete address.
func DelegateOf(a Address) Delegate { return Delegate{kind: delegateAddr, addr: a} }

// IsNone reports whether d is the unset sentinel.
func (d Delegate) IsNone() bool { return d.kind == delegateNone }

// IsPublic reports whether d is the public sentinel.
func (d Delegate) IsPublic() bool { return d.kind == delegatePublic }

// Addr returns the concrete address and true when d is address-bound.
func (d Delegate) Addr() (Address, bool) {
	if d.kind != delegateAddr {
		return Address{}, false
	}
	return d.addr, true
}

// Authorizes reports whether caller holds the delegate role d.
func (d Delegate) Authorizes(caller Address) bool {
	switch d.kind {
	case delegatePublic:
		return true
	case delegateAddr:
		return d.addr == caller
	default:
		return false
	}
}

func (d Delegate) String() string {
	switch d.kind {
	case delegatePublic:
		return "public"
	case delegateAddr:
		return d.addr.Hex()
	default:
		return "none"
	}
}

// ParseDelegate parses the textual forms produced by String: "public" or a
// hex address. The unset sentinel has no external form.
func ParseDelegate(s string) (Delegate, error) {
	if s == "public" {
		return PublicDelegate(), nil
	}
	a, err := AddressFromHex(s)
	if err != nil {
		return Delegate{}, errors.New("addr: delegate must be \"public\" or a hex address")
	}
	return DelegateOf(a), nil
}
