package menu

import (
	"errors"
	"fmt"
	"sync"
)

// Item is a single submenu entry: either a labelled action or a separator.
type Item struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label,omitempty"`
	Separator bool   `json:"separator,omitempty"`
}

// Submenu is a named group of items under one top-level menu bar entry.
type Submenu struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Event carries the action identifier of an activated menu item. It is
// created when the user clicks an item and consumed synchronously by the
// registered listeners.
type Event struct {
	ID string
}

// Listener receives activation events for the whole menu bar, not just a
// single submenu.
type Listener func(Event)

// Bar models the application's top-level menu bar. Submenus keep their
// insertion order; listeners persist until the bar itself is discarded.
type Bar struct {
	mu        sync.Mutex
	submenus  []*Submenu
	listeners []Listener

	// dispatchMu serializes event delivery so each activation is handled to
	// completion before the next one starts.
	dispatchMu sync.Mutex
}

// NewBar constructs an empty menu bar.
func NewBar() *Bar {
	return &Bar{}
}

// Get returns the submenu with the given identifier, or nil when absent.
func (b *Bar) Get(id string) *Submenu {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.submenus {
		if sub.ID == id {
			return sub
		}
	}
	return nil
}

// Remove deletes the submenu with the given identifier and reports whether a
// submenu was removed. Removing an absent submenu is a no-op.
func (b *Bar) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.submenus {
		if sub.ID == id {
			b.submenus = append(b.submenus[:i], b.submenus[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds a submenu at the end of the bar.
func (b *Bar) Append(sub *Submenu) error {
	if sub == nil {
		return errors.New("nil submenu")
	}
	if sub.ID == "" {
		return errors.New("submenu requires an identifier")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.submenus {
		if existing.ID == sub.ID {
			return fmt.Errorf("submenu %q already present", sub.ID)
		}
	}
	b.submenus = append(b.submenus, sub)
	return nil
}

// Submenus returns a snapshot of the bar's submenus in display order.
func (b *Bar) Submenus() []Submenu {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Submenu, 0, len(b.submenus))
	for _, sub := range b.submenus {
		items := make([]Item, len(sub.Items))
		copy(items, sub.Items)
		out = append(out, Submenu{ID: sub.ID, Title: sub.Title, Items: items})
	}
	return out
}

// OnEvent registers a listener for menu activation events. Listeners cannot
// be unregistered; they live as long as the bar.
func (b *Bar) OnEvent(l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// Activate delivers an event for the given action identifier to every
// registered listener, in registration order.
func (b *Bar) Activate(id string) {
	b.mu.Lock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	ev := Event{ID: id}
	for _, l := range listeners {
		l(ev)
	}
}
