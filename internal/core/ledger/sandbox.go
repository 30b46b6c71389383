package ledger

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/LeJamon/goTaxLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goTaxLedger/internal/core/ledger/keylet"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

// String returns the metadata node name for the action
func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "CreatedNode"
	case ActionModify:
		return "ModifiedNode"
	case ActionErase:
		return "DeletedNode"
	default:
		return "Cached"
	}
}

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Keylet   keylet.Keylet
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state (state before deletion for erases)
}

// AffectedNode describes one committed change.
type AffectedNode struct {
	Action    Action
	EntryType entry.Type
	Key       [32]byte
}

// Metadata lists the entries a committed sandbox changed, in key order.
type Metadata struct {
	AffectedNodes []AffectedNode
}

// Sandbox wraps a View and stages all modifications. Nothing reaches the
// base until Apply; dropping the sandbox discards every change.
type Sandbox struct {
	base  View
	items map[[32]byte]*TrackedEntry
}

// NewSandbox creates a new Sandbox wrapping the given base view
func NewSandbox(base View) *Sandbox {
	return &Sandbox{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (s *Sandbox) Read(k keylet.Keylet) ([]byte, error) {
	if e, ok := s.items[k.Key]; ok {
		if e.Action == ActionErase {
			return nil, nil
		}
		return e.Current, nil
	}

	data, err := s.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		s.items[k.Key] = &TrackedEntry{
			Keylet:   k,
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}
	return data, nil
}

// Exists checks if an entry exists
func (s *Sandbox) Exists(k keylet.Keylet) (bool, error) {
	if e, ok := s.items[k.Key]; ok {
		return e.Action != ActionErase, nil
	}
	return s.base.Exists(k)
}

// Insert adds a new entry
func (s *Sandbox) Insert(k keylet.Keylet, data []byte) error {
	if e, ok := s.items[k.Key]; ok {
		if e.Action != ActionErase {
			return ErrEntryExists
		}
		// Re-inserting a deleted entry becomes a modify
		e.Action = ActionModify
		e.Current = data
		return nil
	}

	exists, err := s.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}

	s.items[k.Key] = &TrackedEntry{
		Keylet:  k,
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (s *Sandbox) Update(k keylet.Keylet, data []byte) error {
	if e, ok := s.items[k.Key]; ok {
		if e.Action == ActionErase {
			return fmt.Errorf("%w (deleted)", ErrEntryNotFound)
		}
		if e.Action == ActionCache {
			e.Action = ActionModify
		}
		// An insert stays an insert with new data
		e.Current = data
		return nil
	}

	original, err := s.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}

	s.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (s *Sandbox) Erase(k keylet.Keylet) error {
	if e, ok := s.items[k.Key]; ok {
		switch e.Action {
		case ActionErase:
			return fmt.Errorf("%w (already deleted)", ErrEntryNotFound)
		case ActionInsert:
			// Inserting then deleting = no change
			delete(s.items, k.Key)
			return nil
		}
		e.Action = ActionErase
		return nil
	}

	original, err := s.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}

	s.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// ForEach iterates over the base merged with staged changes. Base entries
// come first in key order, then staged inserts in key order.
func (s *Sandbox) ForEach(fn func(k keylet.Keylet, data []byte) bool) error {
	stop := false
	err := s.base.ForEach(func(k keylet.Keylet, data []byte) bool {
		if e, ok := s.items[k.Key]; ok {
			if e.Action == ActionErase {
				return true
			}
			data = e.Current
		}
		if !fn(k, data) {
			stop = true
			return false
		}
		return true
	})
	if err != nil || stop {
		return err
	}

	// Inserts are not in the base yet
	for _, e := range s.sorted() {
		if e.Action != ActionInsert {
			continue
		}
		if !fn(e.Keylet, e.Current) {
			return nil
		}
	}
	return nil
}

// Changes calls fn for every entry whose content differs from the base,
// in key order. Cached reads and no-op updates are skipped.
func (s *Sandbox) Changes(fn func(e TrackedEntry) error) error {
	for _, e := range s.sorted() {
		if !e.changed() {
			continue
		}
		if err := fn(*e); err != nil {
			return err
		}
	}
	return nil
}

// Apply commits all changes to the base view and returns the metadata.
func (s *Sandbox) Apply() (*Metadata, error) {
	meta := &Metadata{AffectedNodes: make([]AffectedNode, 0, len(s.items))}

	for _, e := range s.sorted() {
		if !e.changed() {
			continue
		}

		var err error
		switch e.Action {
		case ActionInsert:
			err = s.base.Insert(e.Keylet, e.Current)
		case ActionModify:
			err = s.base.Update(e.Keylet, e.Current)
		case ActionErase:
			err = s.base.Erase(e.Keylet)
		}
		if err != nil {
			return nil, fmt.Errorf("apply %s %x: %w", e.Keylet.Type, e.Keylet.Key[:4], err)
		}

		meta.AffectedNodes = append(meta.AffectedNodes, AffectedNode{
			Action:    e.Action,
			EntryType: e.Keylet.Type,
			Key:       e.Keylet.Key,
		})
	}

	s.items = make(map[[32]byte]*TrackedEntry)
	return meta, nil
}

// Discard drops every staged change.
func (s *Sandbox) Discard() {
	s.items = make(map[[32]byte]*TrackedEntry)
}

func (e *TrackedEntry) changed() bool {
	switch e.Action {
	case ActionCache:
		return false
	case ActionModify:
		return !bytes.Equal(e.Original, e.Current)
	default:
		return true
	}
}

func (s *Sandbox) sorted() []*TrackedEntry {
	out := make([]*TrackedEntry, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *TrackedEntry) int {
		return bytes.Compare(a.Keylet.Key[:], b.Keylet.Key[:])
	})
	return out
}
