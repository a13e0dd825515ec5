package registry

import (
	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
)

// Notifier receives change notifications, exactly one per successful
// mutating operation, carrying post-state values in operation-completion
// order. Notifications are never retracted.
//
// Implementations are called with the registry lock held and must not call
// back into the registry.
type Notifier interface {
	EntrySet(subject addr.Address, category addr.Category, delegate addr.Delegate, hash contenthash.Triple)
	EntryDeleted(subject addr.Address, category addr.Category, remainingVersion uint64)
	DelegateChanged(subject addr.Address, category addr.Category, delegate addr.Delegate)
	CategoryAdded(subject addr.Address, category addr.Category)
	CategoryDeleted(subject addr.Address, category addr.Category)
}

type nopNotifier struct{}

func (nopNotifier) EntrySet(addr.Address, addr.Category, addr.Delegate, contenthash.Triple) {}
func (nopNotifier) EntryDeleted(addr.Address, addr.Category, uint64)                        {}
func (nopNotifier) DelegateChanged(addr.Address, addr.Category, addr.Delegate)              {}
func (nopNotifier) CategoryAdded(addr.Address, addr.Category)                               {}
func (nopNotifier) CategoryDeleted(addr.Address, addr.Category)                             {}
