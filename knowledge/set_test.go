package knowledge

import (
	"testing"

	"github.com/poiesic/gitkb/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	set := Default()
	require.NotNil(t, set)

	assert.Equal(t, 15, set.Len())
	assert.Same(t, set, Default(), "Default should build the set once")

	topics := set.Topics()
	assert.Equal(t, "What is Git", topics[0])
	assert.Equal(t, "Git Commit", topics[2])
	assert.Equal(t, "Git Ignore", topics[14])

	for i, e := range set.All() {
		assert.Equal(t, core.ID(i+1), e.Id, "built-in ids are 1..15 in order")
	}
}

func TestNewSet(t *testing.T) {
	entries := []core.KnowledgeEntry{
		{Id: 7, Topic: "Git Tag", Content: "A tag marks a specific commit."},
		{Id: 3, Topic: "Git Blame", Content: "Blame shows who last changed each line."},
	}

	t.Run("preserves order", func(t *testing.T) {
		set, err := NewSet(entries)
		require.NoError(t, err)
		assert.Equal(t, []string{"Git Tag", "Git Blame"}, set.Topics())
	})

	t.Run("copies input", func(t *testing.T) {
		input := append([]core.KnowledgeEntry(nil), entries...)
		set, err := NewSet(input)
		require.NoError(t, err)

		input[0].Topic = "mutated"
		assert.Equal(t, "Git Tag", set.Entries()[0].Topic)
	})

	t.Run("entries returns a copy", func(t *testing.T) {
		set := MustNewSet(entries)
		out := set.Entries()
		out[1].Content = "mutated"
		got, ok := set.Get(3)
		require.True(t, ok)
		assert.Equal(t, "Blame shows who last changed each line.", got.Content)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := NewSet(append(entries, core.KnowledgeEntry{Id: 7, Topic: "Dup", Content: "dup"}))
		assert.ErrorIs(t, err, core.ErrDuplicateID)
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		_, err := NewSet([]core.KnowledgeEntry{{Id: 1, Topic: "No content"}})
		assert.ErrorIs(t, err, core.ErrEmptyContent)
	})

	t.Run("empty set is allowed", func(t *testing.T) {
		set, err := NewSet(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
		assert.Empty(t, set.Topics())
	})

	t.Run("must panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewSet([]core.KnowledgeEntry{{Id: 0, Topic: "x", Content: "y"}})
		})
	})
}

func TestSetGet(t *testing.T) {
	set := Default()

	e, ok := set.Get(13)
	require.True(t, ok)
	assert.Equal(t, "Git Reset", e.Topic)

	_, ok = set.Get(99)
	assert.False(t, ok)
}

func TestSetAllStopsEarly(t *testing.T) {
	set := Default()
	count := 0
	for range set.All() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestSetDigest(t *testing.T) {
	a := MustNewSet(Default().Entries())
	assert.Equal(t, Default().Digest(), a.Digest())

	reordered := Default().Entries()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	b := MustNewSet(reordered)
	assert.NotEqual(t, a.Digest(), b.Digest())
}
