// Package regtest provides a recording Notifier for tests and harnesses.
package regtest

import (
	"sync"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/contenthash"
)

// EventKind names a recorded notification.
type EventKind string

const (
	EntrySet        EventKind = "EntrySet"
	EntryDeleted    EventKind = "EntryDeleted"
	DelegateChanged EventKind = "DelegateChanged"
	CategoryAdded   EventKind = "CategoryAdded"
	CategoryDeleted EventKind = "CategoryDeleted"
)

// Event is one recorded notification with its post-state payload.
type Event struct {
	Kind     EventKind
	Subject  addr.Address
	Category addr.Category
	Delegate addr.Delegate
	Hash     contenthash.Triple
	Version  uint64
}

// Recorder accumulates notifications in completion order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *Recorder) append(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) EntrySet(subject addr.Address, category addr.Category, delegate addr.Delegate, hash contenthash.Triple) {
	r.append(Event{Kind: EntrySet, Subject: subject, Category: category, Delegate: delegate, Hash: hash})
}

func (r *Recorder) EntryDeleted(subject addr.Address, category addr.Category, remainingVersion uint64) {
	r.append(Event{Kind: EntryDeleted, Subject: subject, Category: category, Version: remainingVersion})
}

func (r *Recorder) DelegateChanged(subject addr.Address, category addr.Category, delegate addr.Delegate) {
	r.append(Event{Kind: DelegateChanged, Subject: subject, Category: category, Delegate: delegate})
}

func (r *Recorder) CategoryAdded(subject addr.Address, category addr.Category) {
	r.append(Event{Kind: CategoryAdded, Subject: subject, Category: category})
}

func (r *Recorder) CategoryDeleted(subject addr.Address, category addr.Category) {
	r.append(Event{Kind: CategoryDeleted, Subject: subject, Category: category})
}
