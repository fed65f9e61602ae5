package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	knowledgeEntryPrefix = "kbent"
	knowledgeDigestKey   = "kbmeta:digest"
	knowledgeCountKey    = "kbmeta:count"
)

// makeEntryKey generates a key for the entry at position pos of a snapshot.
// Format: prefix:position
func makeEntryKey(pos uint64) []byte {
	prefix := knowledgeEntryPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches insertion order
	binary.BigEndian.PutUint64(buf[offset:], pos)
	return buf
}

// entryKeyPrefix returns the iteration prefix covering every entry key.
func entryKeyPrefix() []byte {
	return []byte(knowledgeEntryPrefix + ":")
}
