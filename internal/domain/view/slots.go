package view

import (
	"sort"

	"github.com/yanqian/outfit-assistant/internal/domain/outfit"
)

// ErrorSlots indexes the per-field error regions by field identifier.
type ErrorSlots struct {
	slots map[string]*Element
}

// NewErrorSlots registers one empty slot per field.
func NewErrorSlots(fields ...string) *ErrorSlots {
	s := &ErrorSlots{slots: make(map[string]*Element, len(fields))}
	for _, f := range fields {
		s.slots[f] = &Element{}
	}
	return s
}

// Slot returns the slot registered for field, or nil.
func (s *ErrorSlots) Slot(field string) *Element {
	return s.slots[field]
}

// Fields lists registered field identifiers in sorted order.
func (s *ErrorSlots) Fields() []string {
	out := make([]string, 0, len(s.slots))
	for f := range s.slots {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Distribute writes each message into its field slot. The general key goes to
// the placeholder message area; keys without a slot are dropped.
func (s *ErrorSlots) Distribute(errs map[string]string, placeholder *Element) {
	for key, message := range errs {
		if key == outfit.GeneralErrorKey {
			if placeholder != nil {
				placeholder.Text = message
			}
			continue
		}
		if slot, ok := s.slots[key]; ok {
			slot.Text = message
		}
	}
}

// Clear empties every slot without hiding it.
func (s *ErrorSlots) Clear() {
	for _, slot := range s.slots {
		slot.Text = ""
	}
}
