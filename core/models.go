package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for knowledge entries, assigned by the knowledge source.
type ID uint64

// Hex returns the id as 16 lowercase hex digits.
func (id ID) Hex() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// KnowledgeEntry is a single passage of the knowledge base.
// Entries are immutable once loaded into a set.
type KnowledgeEntry struct {
	Id      ID
	Topic   string // Short title, e.g. "Git Commit"
	Content string // Explanatory passage returned to callers
}

// Text returns the string scored against queries: topic and content joined by a space.
func (e KnowledgeEntry) Text() string {
	return e.Topic + " " + e.Content
}

// ScoredEntry pairs an entry with its similarity to a single query.
type ScoredEntry struct {
	Entry KnowledgeEntry
	Score float64
}

// ContextItem is the projection of a scored entry handed to the responder.
type ContextItem struct {
	Topic   string
	Content string
	Score   float64
}

// RetrievalResult is what the retriever hands to the responder for one query.
// Items is empty when HasContext is false and otherwise ordered by Score descending.
type RetrievalResult struct {
	HasContext bool
	Items      []ContextItem
}

// DigestEntries computes an order-sensitive BLAKE2b fingerprint of a sequence of entries.
// Two sets with the same entries in the same order share a digest.
func DigestEntries(entries []KnowledgeEntry) ID {
	h, _ := blake2b.New(8, nil)
	var buf [8]byte
	for _, e := range entries {
		binary.LittleEndian.PutUint64(buf[:], uint64(e.Id))
		h.Write(buf[:])
		writeField(h, e.Topic)
		writeField(h, e.Content)
	}
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// writeField writes a length-prefixed string so field boundaries cannot collide.
func writeField(w io.Writer, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	w.Write(buf[:])
	w.Write([]byte(s))
}
