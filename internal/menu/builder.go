package menu

import (
	"errors"
	"fmt"
)

// SubmenuBuilder assembles a submenu with ordered item insertion. Validation
// happens in Build so callers can chain insertions without error checks.
type SubmenuBuilder struct {
	id    string
	title string
	items []Item
}

// NewSubmenu starts a builder for a submenu with the given identifier and
// display title.
func NewSubmenu(id, title string) *SubmenuBuilder {
	return &SubmenuBuilder{id: id, title: title}
}

// Text appends a labelled action item.
func (sb *SubmenuBuilder) Text(id, label string) *SubmenuBuilder {
	sb.items = append(sb.items, Item{ID: id, Label: label})
	return sb
}

// Separator appends a visual divider.
func (sb *SubmenuBuilder) Separator() *SubmenuBuilder {
	sb.items = append(sb.items, Item{Separator: true})
	return sb
}

// Build validates the assembled structure and returns the submenu. Empty or
// duplicate action identifiers reject the whole structure.
func (sb *SubmenuBuilder) Build() (*Submenu, error) {
	if sb.id == "" {
		return nil, errors.New("submenu requires an identifier")
	}
	if sb.title == "" {
		return nil, errors.New("submenu requires a title")
	}

	seen := make(map[string]struct{}, len(sb.items))
	for _, item := range sb.items {
		if item.Separator {
			continue
		}
		if item.ID == "" {
			return nil, fmt.Errorf("item %q requires an identifier", item.Label)
		}
		if item.Label == "" {
			return nil, fmt.Errorf("item %q requires a label", item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item identifier %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	items := make([]Item, len(sb.items))
	copy(items, sb.items)
	return &Submenu{ID: sb.id, Title: sb.title, Items: items}, nil
}
