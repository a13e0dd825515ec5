// Package registry implements the authorization core: per (subject,
// category) content-hash entries, delegate-based write authorization with
// deployment-proof verification on first write, category approvals, and
// version accounting.
package registry

import (
	"sync"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
)

// Entry is one live registration for a (subject, category) pair.
type Entry struct {
	Hash         contenthash.Triple
	Delegate     addr.Delegate
	SelfAttested bool
}

type key struct {
	subject  addr.Address
	category addr.Category
}

// Options configures a Registry. The zero value installs a no-op notifier.
type Options struct {
	Notifier Notifier
}

// Registry is the mutable authorization store plus its operation surface.
// All operations execute under one global serialization order; every
// mutation is all-or-nothing.
type Registry struct {
	mu sync.Mutex

	notifier  Notifier
	entries   map[key]Entry
	versions  map[key]uint64
	approvals map[key]bool
	deployers map[addr.Address]addr.Address
}

// New returns an empty registry.
func New(opts Options) *Registry {
	n := opts.Notifier
	if n == nil {
		n = nopNotifier{}
	}
	return &Registry{
		notifier:  n,
		entries:   make(map[key]Entry),
		versions:  make(map[key]uint64),
		approvals: make(map[key]bool),
		deployers: make(map[addr.Address]addr.Address),
	}
}

// Create registers the first entry for subject in the default category.
//
// When caller is the subject itself the write is self-attested and proof is
// ignored. Otherwise proof must derive, from the caller, to the subject's
// own address; on success the caller is recorded as the subject's deployer.
func (r *Registry) Create(caller, subject addr.Address, hash contenthash.Triple, proof Proof) error {
	if err := hash.Validate(); err != nil {
		return wrapError(KindValidation, "invalid content hash", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{subject: subject, category: addr.DefaultCategory()}
	if _, exists := r.entries[k]; exists {
		return newError(KindAuthorization, "subject already registered")
	}

	selfAttested := caller == subject
	if !selfAttested {
		if proof == nil {
			return newError(KindAuthorization, "deployment proof required")
		}
		derived, err := proof.derive(caller)
		if err != nil {
			return wrapError(KindValidation, "invalid deployment proof", err)
		}
		if derived != subject {
			return newError(KindAuthorization, "proof does not derive to subject")
		}
	}

	r.entries[k] = Entry{Hash: hash, Delegate: addr.DelegateOf(caller), SelfAttested: selfAttested}
	r.versions[k]++
	if !selfAttested {
		if _, recorded := r.deployers[subject]; !recorded {
			r.deployers[subject] = caller
		}
	}
	r.notifier.EntrySet(subject, k.category, addr.DelegateOf(caller), hash)
	return nil
}

// Update overwrites the entry for (subject, category). The caller must hold
// the delegate role or be the subject itself; non-default categories must be
// approved first. The delegate is reset to the caller.
//
// For an approved non-default category with no entry yet, the first
// authorized update brings the entry into existence; authorization then
// falls back to the subject's default-category delegate.
func (r *Registry) Update(caller, subject addr.Address, category addr.Category, hash contenthash.Triple) error {
	if err := hash.Validate(); err != nil {
		return wrapError(KindValidation, "invalid content hash", err)
	}
	if category.IsZero() {
		return newError(KindValidation, "zero category sentinel")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !category.IsDefault() && !r.approvals[key{subject: subject, category: category}] {
		return newError(KindPermission, "category not approved")
	}
	k := key{subject: subject, category: category}
	if !r.writable(k, caller) {
		return newError(KindAuthorization, "caller is not the delegate or subject")
	}

	r.entries[k] = Entry{Hash: hash, Delegate: addr.DelegateOf(caller), SelfAttested: caller == subject}
	r.versions[k]++
	r.notifier.EntrySet(subject, category, addr.DelegateOf(caller), hash)
	return nil
}

// Clear removes the entry for (subject, category) and decrements its version
// counter. Only legal from the active state, so the counter can never
// underflow.
func (r *Registry) Clear(caller, subject addr.Address, category addr.Category) error {
	if category.IsZero() {
		return newError(KindValidation, "zero category sentinel")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{subject: subject, category: category}
	e, exists := r.entries[k]
	if !exists {
		return newError(KindNotFound, "no entry for subject and category")
	}
	if !e.Delegate.Authorizes(caller) && caller != subject {
		return newError(KindAuthorization, "caller is not the delegate or subject")
	}

	delete(r.entries, k)
	r.versions[k]--
	r.notifier.EntryDeleted(subject, category, r.versions[k])
	return nil
}

// TransferDelegate hands the entry's write authorization to newDelegate.
// Once the delegate is the public sentinel the delegation is locked: it can
// no longer be narrowed through this operation.
func (r *Registry) TransferDelegate(caller, subject addr.Address, category addr.Category, newDelegate addr.Delegate) error {
	if category.IsZero() {
		return newError(KindValidation, "zero category sentinel")
	}
	if newDelegate.IsNone() {
		return newError(KindValidation, "delegate must be public or a concrete address")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{subject: subject, category: category}
	e, exists := r.entries[k]
	if !exists {
		return newError(KindNotFound, "no entry for subject and category")
	}
	if e.Delegate.IsPublic() {
		return newError(KindSentinelLock, "delegation is locked public")
	}
	if !e.Delegate.Authorizes(caller) && caller != subject {
		return newError(KindAuthorization, "caller is not the delegate or subject")
	}

	e.Delegate = newDelegate
	r.entries[k] = e
	r.notifier.DelegateChanged(subject, category, newDelegate)
	return nil
}

// AddCategory approves writes into a non-default category. Only the
// recorded deployer of subject, or the subject itself, has standing.
func (r *Registry) AddCategory(caller, subject addr.Address, category addr.Category) error {
	if err := checkCategoryArg(category); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.categoryStanding(caller, subject); err != nil {
		return err
	}
	k := key{subject: subject, category: category}
	if r.approvals[k] {
		return newError(KindValidation, "category already approved")
	}

	r.approvals[k] = true
	r.notifier.CategoryAdded(subject, category)
	return nil
}

// RemoveCategory revokes a category approval. If an entry exists in the
// category it is cleared first, with its own notification.
func (r *Registry) RemoveCategory(caller, subject addr.Address, category addr.Category) error {
	if err := checkCategoryArg(category); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.categoryStanding(caller, subject); err != nil {
		return err
	}
	k := key{subject: subject, category: category}
	if !r.approvals[k] {
		return newError(KindValidation, "category not approved")
	}

	if _, exists := r.entries[k]; exists {
		delete(r.entries, k)
		r.versions[k]--
		r.notifier.EntryDeleted(subject, category, r.versions[k])
	}
	delete(r.approvals, k)
	r.notifier.CategoryDeleted(subject, category)
	return nil
}

// Entry returns the live entry for (subject, category), if any.
func (r *Registry) Entry(subject addr.Address, category addr.Category) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key{subject: subject, category: category}]
	return e, ok
}

// DelegateOf returns the current delegate for (subject, category), or the
// unset sentinel when the entry is absent.
func (r *Registry) DelegateOf(subject addr.Address, category addr.Category) addr.Delegate {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key{subject: subject, category: category}]
	if !ok {
		return addr.NoDelegate()
	}
	return e.Delegate
}

// Version returns the write counter for (subject, category). The counter
// survives clears; it tracks live writes minus deletions.
func (r *Registry) Version(subject addr.Address, category addr.Category) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[key{subject: subject, category: category}]
}

// CategoryApproved reports whether writes into category are approved for
// subject. The default category is always approved.
func (r *Registry) CategoryApproved(subject addr.Address, category addr.Category) bool {
	if category.IsDefault() {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.approvals[key{subject: subject, category: category}]
}

// Deployer returns the recorded deployer for subject, if one was recorded.
func (r *Registry) Deployer(subject addr.Address) (addr.Address, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deployers[subject]
	return d, ok
}

// writable reports whether caller may write to k right now. The entry's own
// delegate governs when it exists; otherwise authority falls back to the
// subject's default-category delegate (which is how the first write into an
// approved category is authorized). The subject is always authorized over
// its own entries.
func (r *Registry) writable(k key, caller addr.Address) bool {
	if caller == k.subject {
		return true
	}
	if e, ok := r.entries[k]; ok {
		return e.Delegate.Authorizes(caller)
	}
	if k.category.IsDefault() {
		return false
	}
	root, ok := r.entries[key{subject: k.subject, category: addr.DefaultCategory()}]
	return ok && root.Delegate.Authorizes(caller)
}

// categoryStanding enforces deployer-or-subject standing for category
// management.
func (r *Registry) categoryStanding(caller, subject addr.Address) error {
	if caller == subject {
		return nil
	}
	if d, ok := r.deployers[subject]; ok && d == caller {
		return nil
	}
	return newError(KindPermission, "caller is neither the recorded deployer nor the subject")
}

func checkCategoryArg(category addr.Category) error {
	if category.IsDefault() {
		return newError(KindValidation, "default category is reserved")
	}
	if category.IsZero() {
		return newError(KindValidation, "zero category sentinel")
	}
	return nil
}
