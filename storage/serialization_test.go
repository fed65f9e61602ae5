package storage

import (
	"testing"

	"github.com/poiesic/gitkb/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"multi-byte varint ID", core.ID(1 << 35)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalKnowledgeEntry(t *testing.T) {
	entry := &core.KnowledgeEntry{
		Id:      3,
		Topic:   "Git Commit",
		Content: "A commit is like taking a snapshot of your project at a specific moment.",
	}

	data := MarshalKnowledgeEntry(entry)
	decoded, err := UnmarshalKnowledgeEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestUnmarshalKnowledgeEntry_Invalid(t *testing.T) {
	entry := &core.KnowledgeEntry{Id: 1, Topic: "Git Status", Content: "Shows the working tree status."}
	data := MarshalKnowledgeEntry(entry)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", data[:len(data)-4]},
		{"trailing bytes", append(append([]byte{}, data...), 0x01, 0x02)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalKnowledgeEntry(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
