package registry

import (
	"testing"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
	"xdao.co/anchor/deriv"
)

func testAddr(t *testing.T, fill byte) addr.Address {
	t.Helper()
	var a addr.Address
	for i := range a {
		a[i] = fill
	}
	return a
}

func testHash(t *testing.T, seed string) contenthash.Triple {
	t.Helper()
	h, err := contenthash.Sum([]byte(seed))
	if err != nil {
		t.Fatalf("contenthash.Sum: %v", err)
	}
	return h
}

// deployedSubject derives the subject address the deployer's nonce-th
// transaction would have produced, so NonceProof(nonce) verifies.
func deployedSubject(t *testing.T, deployer addr.Address, nonce uint64) addr.Address {
	t.Helper()
	s, err := deriv.ContractAddress(deployer, nonce)
	if err != nil {
		t.Fatalf("ContractAddress: %v", err)
	}
	return s
}

func TestCreateFirstWriterWins(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 3)

	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(3)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d := r.DelegateOf(subject, addr.DefaultCategory()); !d.Authorizes(deployer) {
		t.Fatalf("expected deployer to hold the delegate role, got %s", d)
	}
	if got, ok := r.Deployer(subject); !ok || got != deployer {
		t.Fatalf("expected deployer record %s, got %s (ok=%v)", deployer, got, ok)
	}

	// A second create fails even with a syntactically valid proof.
	other := testAddr(t, 0x22)
	err := r.Create(other, subject, testHash(t, "v2"), NonceProof(3))
	if !IsKind(err, KindAuthorization) {
		t.Fatalf("second create: got %v, want Authorization", err)
	}
}

func TestCreateProofMustDeriveToSubject(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)

	// Plausible proof, wrong nonce.
	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(1)); !IsKind(err, KindAuthorization) {
		t.Fatalf("wrong nonce: got %v, want Authorization", err)
	}
	// Right nonce, wrong caller.
	other := testAddr(t, 0x22)
	if err := r.Create(other, subject, testHash(t, "v1"), NonceProof(0)); !IsKind(err, KindAuthorization) {
		t.Fatalf("wrong caller: got %v, want Authorization", err)
	}
	// Missing proof.
	if err := r.Create(deployer, subject, testHash(t, "v1"), nil); !IsKind(err, KindAuthorization) {
		t.Fatalf("missing proof: got %v, want Authorization", err)
	}
	if _, ok := r.Entry(subject, addr.DefaultCategory()); ok {
		t.Fatalf("failed creates must not leave partial state")
	}
}

func TestCreateSaltProof(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	var salt [32]byte
	salt[0] = 0xab
	initDigest := deriv.Keccak256([]byte{0x60, 0x80})
	subject := deriv.SaltedAddress(deployer, salt, initDigest)

	if err := r.Create(deployer, subject, testHash(t, "v1"), SaltProof{Salt: salt, InitDigest: initDigest}); err != nil {
		t.Fatalf("Create with salt proof: %v", err)
	}
	e, ok := r.Entry(subject, addr.DefaultCategory())
	if !ok || e.SelfAttested {
		t.Fatalf("expected a live, non-self-attested entry, got %+v (ok=%v)", e, ok)
	}
}

func TestCreateSelfAttested(t *testing.T) {
	r := New(Options{})
	subject := testAddr(t, 0x33)

	if err := r.Create(subject, subject, testHash(t, "self"), nil); err != nil {
		t.Fatalf("self-attested create: %v", err)
	}
	e, ok := r.Entry(subject, addr.DefaultCategory())
	if !ok || !e.SelfAttested {
		t.Fatalf("expected self-attested entry, got %+v (ok=%v)", e, ok)
	}
	if _, recorded := r.Deployer(subject); recorded {
		t.Fatalf("self-attested create must not record a deployer")
	}
}

func TestCreateValidation(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)

	bad := testHash(t, "v1")
	bad.Length = 0
	if err := r.Create(deployer, subject, bad, NonceProof(0)); !IsKind(err, KindValidation) {
		t.Fatalf("zero length: got %v, want Validation", err)
	}
	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(deriv.MaxNonce+1)); !IsKind(err, KindValidation) {
		t.Fatalf("nonce out of range: got %v, want Validation", err)
	}
}

func TestVersionAccounting(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.DefaultCategory()

	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := r.Version(subject, cat); got != 1 {
		t.Fatalf("version after create = %d, want 1", got)
	}
	if err := r.Update(deployer, subject, cat, testHash(t, "v2")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := r.Version(subject, cat); got != 2 {
		t.Fatalf("version after first update = %d, want 2", got)
	}
	if err := r.Update(deployer, subject, cat, testHash(t, "v3")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := r.Version(subject, cat); got != 3 {
		t.Fatalf("version after two updates = %d, want 3", got)
	}
	if err := r.Clear(deployer, subject, cat); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := r.Version(subject, cat); got != 2 {
		t.Fatalf("version after clear = %d, want 2", got)
	}
	if _, ok := r.Entry(subject, cat); ok {
		t.Fatalf("entry must be absent after clear")
	}
	// A cleared subject can be registered again; the counter keeps history.
	if err := r.Create(deployer, subject, testHash(t, "v4"), NonceProof(0)); err != nil {
		t.Fatalf("re-create after clear: %v", err)
	}
	if got := r.Version(subject, cat); got != 3 {
		t.Fatalf("version after re-create = %d, want 3", got)
	}
}

func TestDelegateTransferAndSentinelLock(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.DefaultCategory()
	next := testAddr(t, 0x22)

	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.TransferDelegate(deployer, subject, cat, addr.DelegateOf(next)); err != nil {
		t.Fatalf("TransferDelegate: %v", err)
	}
	// The old delegate lost its role.
	if err := r.Update(deployer, subject, cat, testHash(t, "v2")); !IsKind(err, KindAuthorization) {
		t.Fatalf("old delegate update: got %v, want Authorization", err)
	}
	if err := r.TransferDelegate(next, subject, cat, addr.PublicDelegate()); err != nil {
		t.Fatalf("transfer to public: %v", err)
	}
	// Public is a one-way ratchet for transfers...
	if err := r.TransferDelegate(next, subject, cat, addr.DelegateOf(next)); !IsKind(err, KindSentinelLock) {
		t.Fatalf("narrowing from public: got %v, want SentinelLock", err)
	}
	// ...but any caller may still write.
	stranger := testAddr(t, 0x99)
	if err := r.Update(stranger, subject, cat, testHash(t, "v3")); err != nil {
		t.Fatalf("public update: %v", err)
	}
	if d := r.DelegateOf(subject, cat); !d.Authorizes(stranger) {
		t.Fatalf("update must reset the delegate to the caller, got %s", d)
	}
}

func TestTransferDelegateValidation(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.DefaultCategory()

	if err := r.TransferDelegate(deployer, subject, cat, addr.DelegateOf(deployer)); !IsKind(err, KindNotFound) {
		t.Fatalf("transfer on absent entry: got %v, want NotFound", err)
	}
	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.TransferDelegate(deployer, subject, cat, addr.NoDelegate()); !IsKind(err, KindValidation) {
		t.Fatalf("transfer to none: got %v, want Validation", err)
	}
	stranger := testAddr(t, 0x99)
	if err := r.TransferDelegate(stranger, subject, cat, addr.DelegateOf(stranger)); !IsKind(err, KindAuthorization) {
		t.Fatalf("unauthorized transfer: got %v, want Authorization", err)
	}
}

func TestCategoryGating(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.CategoryFromLabel("build-info")

	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Update(deployer, subject, cat, testHash(t, "c1")); !IsKind(err, KindPermission) {
		t.Fatalf("update before approval: got %v, want Permission", err)
	}
	if err := r.AddCategory(deployer, subject, cat); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if !r.CategoryApproved(subject, cat) {
		t.Fatalf("expected category approved")
	}
	// First write into the approved category is authorized by the
	// default-category delegate.
	if err := r.Update(deployer, subject, cat, testHash(t, "c1")); err != nil {
		t.Fatalf("update after approval: %v", err)
	}
	if got := r.Version(subject, cat); got != 1 {
		t.Fatalf("category version = %d, want 1", got)
	}
	// Revoking the category clears its entry and closes writes again.
	if err := r.RemoveCategory(deployer, subject, cat); err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if _, ok := r.Entry(subject, cat); ok {
		t.Fatalf("entry must be cleared when its category is removed")
	}
	if err := r.Update(deployer, subject, cat, testHash(t, "c2")); !IsKind(err, KindPermission) {
		t.Fatalf("update after removal: got %v, want Permission", err)
	}
}

func TestCategoryPublicDelegateWrites(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.CategoryFromLabel("audit")

	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.AddCategory(deployer, subject, cat); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if err := r.TransferDelegate(deployer, subject, addr.DefaultCategory(), addr.PublicDelegate()); err != nil {
		t.Fatalf("TransferDelegate: %v", err)
	}
	stranger := testAddr(t, 0x99)
	if err := r.Update(stranger, subject, cat, testHash(t, "c1")); err != nil {
		t.Fatalf("public first write into category: %v", err)
	}
}

func TestCategoryManagementStanding(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.CategoryFromLabel("build-info")

	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stranger := testAddr(t, 0x99)
	if err := r.AddCategory(stranger, subject, cat); !IsKind(err, KindPermission) {
		t.Fatalf("stranger add: got %v, want Permission", err)
	}
	if err := r.AddCategory(deployer, subject, addr.DefaultCategory()); !IsKind(err, KindValidation) {
		t.Fatalf("default category add: got %v, want Validation", err)
	}
	zero, err := addr.CategoryFromBytes(make([]byte, addr.CategorySize))
	if err != nil {
		t.Fatalf("CategoryFromBytes: %v", err)
	}
	if err := r.AddCategory(deployer, subject, zero); !IsKind(err, KindValidation) {
		t.Fatalf("zero category add: got %v, want Validation", err)
	}
	if err := r.AddCategory(deployer, subject, cat); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if err := r.AddCategory(deployer, subject, cat); !IsKind(err, KindValidation) {
		t.Fatalf("double add: got %v, want Validation", err)
	}
	if err := r.RemoveCategory(stranger, subject, cat); !IsKind(err, KindPermission) {
		t.Fatalf("stranger remove: got %v, want Permission", err)
	}
	if err := r.RemoveCategory(deployer, subject, cat); err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if err := r.RemoveCategory(deployer, subject, cat); !IsKind(err, KindValidation) {
		t.Fatalf("double remove: got %v, want Validation", err)
	}
	// The subject manages its own categories without a deployer record.
	self := testAddr(t, 0x33)
	if err := r.Create(self, self, testHash(t, "self"), nil); err != nil {
		t.Fatalf("self create: %v", err)
	}
	if err := r.AddCategory(self, self, cat); err != nil {
		t.Fatalf("subject add: %v", err)
	}
}

func TestClearChecks(t *testing.T) {
	r := New(Options{})
	deployer := testAddr(t, 0x11)
	subject := deployedSubject(t, deployer, 0)
	cat := addr.DefaultCategory()

	if err := r.Clear(deployer, subject, cat); !IsKind(err, KindNotFound) {
		t.Fatalf("clear absent: got %v, want NotFound", err)
	}
	if err := r.Create(deployer, subject, testHash(t, "v1"), NonceProof(0)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	stranger := testAddr(t, 0x99)
	if err := r.Clear(stranger, subject, cat); !IsKind(err, KindAuthorization) {
		t.Fatalf("unauthorized clear: got %v, want Authorization", err)
	}
	// The subject may always clear metadata about itself.
	if err := r.Clear(subject, subject, cat); err != nil {
		t.Fatalf("subject clear: %v", err)
	}
}
