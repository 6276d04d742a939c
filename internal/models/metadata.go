package models

import (
	apierrors "github.com/dmateus/gemweb/internal/errors"
)

// Metadata slot indices.
const (
	slotCID = iota
	slotRID
	slotRCID
	metadataSlots
)

// ChatMetadata is the ordered triple of conversation identifiers
// [cid, rid, rcid] threaded through consecutive turns. Each slot is
// independently settable and reads back as explicitly unset until assigned.
//
// The zero value is an empty tuple, ready for use.
type ChatMetadata struct {
	values  [metadataSlots]string
	present [metadataSlots]bool
}

// NewChatMetadata builds a tuple from up to 3 leading values. More than 3
// values fail with ErrInvalidMetadata.
func NewChatMetadata(values ...string) (ChatMetadata, error) {
	var m ChatMetadata
	if err := m.Set(values); err != nil {
		return ChatMetadata{}, err
	}
	return m, nil
}

// Set overwrites the leading len(values) slots, leaving trailing slots
// untouched. Fails with ErrInvalidMetadata when more than 3 values are given;
// the tuple is unchanged on failure.
func (m *ChatMetadata) Set(values []string) error {
	if len(values) > metadataSlots {
		return apierrors.ErrInvalidMetadata
	}
	for i, v := range values {
		m.values[i] = v
		m.present[i] = true
	}
	return nil
}

// SetCID sets the conversation id slot.
func (m *ChatMetadata) SetCID(v string) {
	m.values[slotCID] = v
	m.present[slotCID] = true
}

// SetRID sets the reply id slot.
func (m *ChatMetadata) SetRID(v string) {
	m.values[slotRID] = v
	m.present[slotRID] = true
}

// SetRCID sets the reply candidate id slot.
func (m *ChatMetadata) SetRCID(v string) {
	m.values[slotRCID] = v
	m.present[slotRCID] = true
}

// CID returns the conversation id and whether it has been set.
func (m ChatMetadata) CID() (string, bool) {
	return m.values[slotCID], m.present[slotCID]
}

// RID returns the reply id and whether it has been set.
func (m ChatMetadata) RID() (string, bool) {
	return m.values[slotRID], m.present[slotRID]
}

// RCID returns the reply candidate id and whether it has been set.
func (m ChatMetadata) RCID() (string, bool) {
	return m.values[slotRCID], m.present[slotRCID]
}

// IsZero reports whether no slot has been set.
func (m ChatMetadata) IsZero() bool {
	return !m.present[slotCID] && !m.present[slotRID] && !m.present[slotRCID]
}

// Wire returns the tuple in the shape the generate payload expects: a
// 3-element array with nulls for unset slots, or nil when the tuple is empty
// (a fresh conversation).
func (m ChatMetadata) Wire() []interface{} {
	if m.IsZero() {
		return nil
	}
	wire := make([]interface{}, metadataSlots)
	for i := range m.values {
		if m.present[i] {
			wire[i] = m.values[i]
		}
	}
	return wire
}

// Slice returns set slots as strings up to the last set slot, with empty
// strings for unset interior slots. Intended for persistence and display.
func (m ChatMetadata) Slice() []string {
	last := -1
	for i := range m.present {
		if m.present[i] {
			last = i
		}
	}
	out := make([]string, 0, last+1)
	for i := 0; i <= last; i++ {
		out = append(out, m.values[i])
	}
	return out
}
