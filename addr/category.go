package addr

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// CategorySize is the width of a labeled category identifier in bytes.
const CategorySize = 32

// Category partitions a subject's entries. The reserved default category is a
// distinct variant rather than a well-known hash value, so a user-chosen
// label can never collide with it.
type Category struct {
	labeled bool
	id      [CategorySize]byte
}

// DefaultCategory returns the reserved category for deployer-originated
// metadata.
func DefaultCategory() Category { return Category{} }

// CategoryFromLabel derives a labeled category from a human-readable label
// using the same keccak-256 primitive as address derivation.
func CategoryFromLabel(label string) Category {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(label))
	var c Category
	c.labeled = true
	copy(c.id[:], h.Sum(nil))
	return c
}

// CategoryFromBytes wraps a raw 32-byte category identifier.
func CategoryFromBytes(b []byte) (Category, error) {
	if len(b) != CategorySize {
		return Category{}, fmt.Errorf("addr: category must be %d bytes, got %d", CategorySize, len(b))
	}
	var c Category
	c.labeled = true
	copy(c.id[:], b)
	return c, nil
}

// ParseCategory parses the textual forms produced by String: "default" or a
// hex identifier.
func ParseCategory(s string) (Category, error) {
	if s == "default" {
		return DefaultCategory(), nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return Category{}, fmt.Errorf("addr: invalid hex category: %w", err)
	}
	return CategoryFromBytes(b)
}

// IsDefault reports whether c is the reserved default category.
func (c Category) IsDefault() bool { return !c.labeled }

// IsZero reports whether c is a labeled category with the all-zero
// identifier, the invalid zero sentinel.
func (c Category) IsZero() bool {
	if !c.labeled {
		return false
	}
	return c.id == [CategorySize]byte{}
}

// Bytes returns the 32-byte identifier of a labeled category. The result is
// meaningless for the default category; callers should branch on IsDefault
// first.
func (c Category) Bytes() []byte {
	b := make([]byte, CategorySize)
	copy(b, c.id[:])
	return b
}

func (c Category) String() string {
	if !c.labeled {
		return "default"
	}
	return "0x" + hex.EncodeToString(c.id[:])
}
