package deriv

import (
	"bytes"
	"encoding/hex"
	"testing"

	"xdao.co/anchor/addr"
)

func mustAddr(t *testing.T, s string) addr.Address {
	t.Helper()
	a, err := addr.AddressFromHex(s)
	if err != nil {
		t.Fatalf("AddressFromHex(%q): %v", s, err)
	}
	return a
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString(%q): %v", s, err)
	}
	return b
}

func TestNonceItemGoldenVectors(t *testing.T) {
	cases := []struct {
		nonce uint64
		want  string
	}{
		{0, "80"},
		{1, "01"},
		{127, "7f"},
		{128, "8180"},
		{255, "81ff"},
		{256, "820100"},
		{65535, "82ffff"},
		{65536, "83010000"},
		{16777215, "83ffffff"},
		{16777216, "8401000000"},
		{4294967295, "84ffffffff"},
	}
	for _, tc := range cases {
		got, err := nonceItem(tc.nonce)
		if err != nil {
			t.Fatalf("nonceItem(%d): %v", tc.nonce, err)
		}
		if !bytes.Equal(got, mustHex(t, tc.want)) {
			t.Fatalf("nonceItem(%d) = %x, want %s", tc.nonce, got, tc.want)
		}
	}
}

func TestCreatePayloadGoldenVectors(t *testing.T) {
	origin := mustAddr(t, "970e8128ab834e8eac17ab8e3812f010678cf791")
	cases := []struct {
		nonce uint64
		want  string
	}{
		{0, "d694970e8128ab834e8eac17ab8e3812f010678cf79180"},
		{1, "d694970e8128ab834e8eac17ab8e3812f010678cf79101"},
		{127, "d694970e8128ab834e8eac17ab8e3812f010678cf7917f"},
		{128, "d794970e8128ab834e8eac17ab8e3812f010678cf7918180"},
		{65535, "d894970e8128ab834e8eac17ab8e3812f010678cf79182ffff"},
		{16777215, "d994970e8128ab834e8eac17ab8e3812f010678cf79183ffffff"},
		{16777216, "da94970e8128ab834e8eac17ab8e3812f010678cf7918401000000"},
	}
	for _, tc := range cases {
		got, err := createPayload(origin, tc.nonce)
		if err != nil {
			t.Fatalf("createPayload(nonce=%d): %v", tc.nonce, err)
		}
		if !bytes.Equal(got, mustHex(t, tc.want)) {
			t.Fatalf("createPayload(nonce=%d) = %x, want %s", tc.nonce, got, tc.want)
		}
	}
}

func TestContractAddressReferenceVectors(t *testing.T) {
	origin := mustAddr(t, "970e8128ab834e8eac17ab8e3812f010678cf791")
	cases := []struct {
		nonce uint64
		want  string
	}{
		{0, "0x333c3310824b7c685133f2bedb2ca4b8b4df633d"},
		{1, "0x8bda78331c916a08481428e4b07c96d3e916d165"},
		{2, "0xc9ddedf451bc62ce88bf9292afb13df35b670699"},
	}
	for _, tc := range cases {
		got, err := ContractAddress(origin, tc.nonce)
		if err != nil {
			t.Fatalf("ContractAddress(nonce=%d): %v", tc.nonce, err)
		}
		if got.Hex() != tc.want {
			t.Fatalf("ContractAddress(nonce=%d) = %s, want %s", tc.nonce, got.Hex(), tc.want)
		}
	}
}

func TestContractAddressDeterministicAndDistinct(t *testing.T) {
	origin := mustAddr(t, "970e8128ab834e8eac17ab8e3812f010678cf791")
	nonces := []uint64{0, 1, 127, 128, 65535, 16777215}
	seen := map[addr.Address]uint64{}
	for _, n := range nonces {
		a, err := ContractAddress(origin, n)
		if err != nil {
			t.Fatalf("ContractAddress(nonce=%d): %v", n, err)
		}
		b, err := ContractAddress(origin, n)
		if err != nil {
			t.Fatalf("ContractAddress(nonce=%d) second call: %v", n, err)
		}
		if a != b {
			t.Fatalf("nonce %d: expected deterministic derivation", n)
		}
		if prev, dup := seen[a]; dup {
			t.Fatalf("nonces %d and %d derived the same address", prev, n)
		}
		seen[a] = n
	}
}

func TestContractAddressNonceRange(t *testing.T) {
	origin := mustAddr(t, "970e8128ab834e8eac17ab8e3812f010678cf791")
	if _, err := ContractAddress(origin, MaxNonce); err != nil {
		t.Fatalf("ContractAddress(MaxNonce): %v", err)
	}
	if _, err := ContractAddress(origin, MaxNonce+1); err != ErrNonceRange {
		t.Fatalf("ContractAddress(MaxNonce+1): got %v, want ErrNonceRange", err)
	}
}

func TestSaltedAddressReferenceVectors(t *testing.T) {
	zeroByteDigest := Keccak256([]byte{0x00})
	emptyDigest := Keccak256(nil)
	var zeroSalt [32]byte
	var feedSalt [32]byte
	copy(feedSalt[12:], mustHex(t, "feed"))

	cases := []struct {
		origin addr.Address
		salt   [32]byte
		digest [32]byte
		want   string
	}{
		{
			origin: addr.ZeroAddress,
			salt:   zeroSalt,
			digest: zeroByteDigest,
			want:   "0x4d1a2e2bb4f88f0250f26ffff098b0b30b26bf38",
		},
		{
			origin: mustAddr(t, "deadbeef00000000000000000000000000000000"),
			salt:   zeroSalt,
			digest: zeroByteDigest,
			want:   "0xb928f69bb1d91cd65274e3c79d8986362984fda3",
		},
		{
			origin: mustAddr(t, "deadbeef00000000000000000000000000000000"),
			salt:   feedSalt,
			digest: zeroByteDigest,
			want:   "0xd04116cdd17bebe565eb2422f2497e06cc1c9833",
		},
		{
			origin: addr.ZeroAddress,
			salt:   zeroSalt,
			digest: emptyDigest,
			want:   "0xe33c0c7f7df4809055c3eba6c09cfe4baf1bd9e0",
		},
	}
	for i, tc := range cases {
		got := SaltedAddress(tc.origin, tc.salt, tc.digest)
		if got.Hex() != tc.want {
			t.Fatalf("case %d: SaltedAddress = %s, want %s", i, got.Hex(), tc.want)
		}
	}
}

func TestKeccak256KnownDigests(t *testing.T) {
	empty := Keccak256(nil)
	if hex.EncodeToString(empty[:]) != "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470" {
		t.Fatalf("keccak256 of empty input mismatch: %x", empty)
	}
	split := Keccak256([]byte("anchor "), []byte("registry"))
	whole := Keccak256([]byte("anchor registry"))
	if split != whole {
		t.Fatalf("expected concatenating writes to match a single write")
	}
}
