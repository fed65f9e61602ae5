package core

import (
	"testing"
)

func TestIDHex(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{id: 0, want: "0000000000000000"},
		{id: 255, want: "00000000000000ff"},
		{id: ID(^uint64(0)), want: "ffffffffffffffff"},
	}
	for _, tt := range tests {
		if got := tt.id.Hex(); got != tt.want {
			t.Errorf("ID(%d).Hex() = %q, want %q", uint64(tt.id), got, tt.want)
		}
	}
}

func TestKnowledgeEntryText(t *testing.T) {
	e := KnowledgeEntry{Id: 1, Topic: "Git Stash", Content: "Temporarily shelves changes."}
	if got, want := e.Text(), "Git Stash Temporarily shelves changes."; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDigestEntries(t *testing.T) {
	a := KnowledgeEntry{Id: 1, Topic: "Git Branch", Content: "A movable pointer."}
	b := KnowledgeEntry{Id: 2, Topic: "Git Merge", Content: "Joins histories."}

	t.Run("deterministic", func(t *testing.T) {
		if DigestEntries([]KnowledgeEntry{a, b}) != DigestEntries([]KnowledgeEntry{a, b}) {
			t.Error("DigestEntries() is not deterministic")
		}
	})

	t.Run("order sensitive", func(t *testing.T) {
		if DigestEntries([]KnowledgeEntry{a, b}) == DigestEntries([]KnowledgeEntry{b, a}) {
			t.Error("DigestEntries() ignored entry order")
		}
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		x := []KnowledgeEntry{{Id: 1, Topic: "ab", Content: "c"}}
		y := []KnowledgeEntry{{Id: 1, Topic: "a", Content: "bc"}}
		if DigestEntries(x) == DigestEntries(y) {
			t.Error("DigestEntries() collided across field boundaries")
		}
	})

	t.Run("content change", func(t *testing.T) {
		changed := b
		changed.Content = "Combines histories."
		if DigestEntries([]KnowledgeEntry{a, b}) == DigestEntries([]KnowledgeEntry{a, changed}) {
			t.Error("DigestEntries() ignored a content change")
		}
	})
}

func TestKnowledgeEntryMUS(t *testing.T) {
	entry := KnowledgeEntry{Id: 42, Topic: "Git Log", Content: "Shows the commit history."}

	buf := make([]byte, KnowledgeEntryMUS.Size(entry))
	n := KnowledgeEntryMUS.Marshal(entry, buf)
	if n != len(buf) {
		t.Fatalf("Marshal() wrote %d bytes, Size() reported %d", n, len(buf))
	}

	got, read, err := KnowledgeEntryMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if read != n {
		t.Errorf("Unmarshal() read %d bytes, want %d", read, n)
	}
	if got != entry {
		t.Errorf("Unmarshal() = %+v, want %+v", got, entry)
	}

	if _, _, err := KnowledgeEntryMUS.Unmarshal(buf[:n-3]); err == nil {
		t.Error("Unmarshal() of truncated data should fail")
	}
}

func TestKnowledgeEntryMUS_Skip(t *testing.T) {
	first := KnowledgeEntry{Id: 7, Topic: "Git Tag", Content: "Names a commit."}
	second := KnowledgeEntry{Id: 8, Topic: "Git Fetch", Content: "Downloads remote history."}

	buf := make([]byte, KnowledgeEntryMUS.Size(first)+KnowledgeEntryMUS.Size(second))
	n := KnowledgeEntryMUS.Marshal(first, buf)
	KnowledgeEntryMUS.Marshal(second, buf[n:])

	skipped, err := KnowledgeEntryMUS.Skip(buf)
	if err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	if skipped != n {
		t.Fatalf("Skip() = %d, want %d", skipped, n)
	}

	got, _, err := KnowledgeEntryMUS.Unmarshal(buf[skipped:])
	if err != nil {
		t.Fatalf("Unmarshal() after Skip() error = %v", err)
	}
	if got != second {
		t.Errorf("Unmarshal() after Skip() = %+v, want %+v", got, second)
	}
}
