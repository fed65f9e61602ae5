package knowledge

import (
	"iter"
	"slices"
	"sync"

	"github.com/poiesic/gitkb/core"
)

// Set is an ordered, validated, read-only collection of knowledge entries.
// A Set never changes after construction and is safe for concurrent use.
type Set struct {
	entries []core.KnowledgeEntry
	index   map[core.ID]int
	digest  core.ID
}

// NewSet validates entries and returns a Set holding a private copy of them.
// Insertion order is preserved; it is the tie-break order for equal scores.
func NewSet(entries []core.KnowledgeEntry) (*Set, error) {
	if err := core.ValidateEntries(entries); err != nil {
		return nil, err
	}

	owned := slices.Clone(entries)
	index := make(map[core.ID]int, len(owned))
	for i, e := range owned {
		index[e.Id] = i
	}

	return &Set{
		entries: owned,
		index:   index,
		digest:  core.DigestEntries(owned),
	}, nil
}

// MustNewSet is like NewSet but panics on invalid input.
func MustNewSet(entries []core.KnowledgeEntry) *Set {
	s, err := NewSet(entries)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the built-in Git knowledge base.
var Default = sync.OnceValue(func() *Set {
	return MustNewSet(gitEntries)
})

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in insertion order.
func (s *Set) Entries() []core.KnowledgeEntry {
	return slices.Clone(s.entries)
}

// All iterates the entries in insertion order, yielding each position and entry.
func (s *Set) All() iter.Seq2[int, core.KnowledgeEntry] {
	return func(yield func(int, core.KnowledgeEntry) bool) {
		for i, e := range s.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Get looks up an entry by id.
func (s *Set) Get(id core.ID) (core.KnowledgeEntry, bool) {
	i, ok := s.index[id]
	if !ok {
		return core.KnowledgeEntry{}, false
	}
	return s.entries[i], true
}

// Topics returns every topic in insertion order.
func (s *Set) Topics() []string {
	topics := make([]string, len(s.entries))
	for i, e := range s.entries {
		topics[i] = e.Topic
	}
	return topics
}

// Digest returns the fingerprint of the set's contents and order.
func (s *Set) Digest() core.ID {
	return s.digest
}
