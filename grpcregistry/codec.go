package grpcregistry

import (
	"encoding/hex"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
	"xdao.co/anchor/registry"
)

// Wire layout. Every request and response is a protobuf Struct with these
// fields:
//
//	caller, subject, deployer  hex address
//	category                   "default" or 32-byte hex
//	hash                       base58 multihash string
//	delegate                   "public", "none", or hex address
//	nonce                      number (sequential-nonce proof)
//	salt, initDigest           32-byte hex (salted-digest proof)
//	version                    number
//	present, approved,
//	selfAttested               bool

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("grpcregistry: encode response: %w", err)
	}
	return s, nil
}

func stringField(s *structpb.Struct, name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.GetFields()[name]
	if !ok {
		return "", false
	}
	if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
		return "", false
	}
	return v.GetStringValue(), true
}

func numberField(s *structpb.Struct, name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, false
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, false
	}
	return v.GetNumberValue(), true
}

func addressField(s *structpb.Struct, name string) (addr.Address, error) {
	raw, ok := stringField(s, name)
	if !ok {
		return addr.Address{}, fmt.Errorf("grpcregistry: missing %s field", name)
	}
	a, err := addr.AddressFromHex(raw)
	if err != nil {
		return addr.Address{}, fmt.Errorf("grpcregistry: %s: %w", name, err)
	}
	return a, nil
}

func categoryField(s *structpb.Struct) (addr.Category, error) {
	raw, ok := stringField(s, "category")
	if !ok {
		return addr.DefaultCategory(), nil
	}
	c, err := addr.ParseCategory(raw)
	if err != nil {
		return addr.Category{}, fmt.Errorf("grpcregistry: category: %w", err)
	}
	return c, nil
}

func hashField(s *structpb.Struct) (contenthash.Triple, error) {
	raw, ok := stringField(s, "hash")
	if !ok {
		return contenthash.Triple{}, fmt.Errorf("grpcregistry: missing hash field")
	}
	t, err := contenthash.DecodeB58(raw)
	if err != nil {
		return contenthash.Triple{}, fmt.Errorf("grpcregistry: hash: %w", err)
	}
	return t, nil
}

func delegateField(s *structpb.Struct) (addr.Delegate, error) {
	raw, ok := stringField(s, "delegate")
	if !ok {
		return addr.Delegate{}, fmt.Errorf("grpcregistry: missing delegate field")
	}
	d, err := addr.ParseDelegate(raw)
	if err != nil {
		return addr.Delegate{}, fmt.Errorf("grpcregistry: %w", err)
	}
	return d, nil
}

func word32Field(s *structpb.Struct, name string) ([32]byte, error) {
	var out [32]byte
	raw, ok := stringField(s, name)
	if !ok {
		return out, fmt.Errorf("grpcregistry: missing %s field", name)
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X"))
	if err != nil || len(b) != 32 {
		return out, fmt.Errorf("grpcregistry: %s must be 32 bytes of hex", name)
	}
	copy(out[:], b)
	return out, nil
}

// proofField assembles an optional deployment proof from the request. The
// nonce form and the salt form are mutually exclusive.
func proofField(s *structpb.Struct) (registry.Proof, error) {
	nonce, hasNonce := numberField(s, "nonce")
	_, hasSalt := stringField(s, "salt")
	switch {
	case hasNonce && hasSalt:
		return nil, fmt.Errorf("grpcregistry: nonce and salt proofs are mutually exclusive")
	case hasNonce:
		if nonce < 0 || nonce != float64(uint64(nonce)) {
			return nil, fmt.Errorf("grpcregistry: nonce must be a non-negative integer")
		}
		return registry.NonceProof(uint64(nonce)), nil
	case hasSalt:
		salt, err := word32Field(s, "salt")
		if err != nil {
			return nil, err
		}
		initDigest, err := word32Field(s, "initDigest")
		if err != nil {
			return nil, err
		}
		return registry.SaltProof{Salt: salt, InitDigest: initDigest}, nil
	default:
		return nil, nil
	}
}

func entryResponse(e registry.Entry, present bool, version uint64) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"present": present,
		"version": float64(version),
	}
	if present {
		b58, err := e.Hash.B58String()
		if err != nil {
			return nil, err
		}
		fields["hash"] = b58
		fields["delegate"] = e.Delegate.String()
		fields["selfAttested"] = e.SelfAttested
	}
	return newStruct(fields)
}
