package knowledge

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/gitkb/core"
	"gopkg.in/yaml.v3"
)

// yamlEntry is the on-disk shape of one entry.
type yamlEntry struct {
	Id      uint64 `yaml:"id"`
	Topic   string `yaml:"topic"`
	Content string `yaml:"content"`
}

// Decode reads a YAML sequence of {id, topic, content} mappings and builds a Set.
// Unknown keys are rejected. Entry order in the document is preserved.
func Decode(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc []yamlEntry
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(doc) == 0 {
		return nil, ErrEmptyDocument
	}

	entries := make([]core.KnowledgeEntry, len(doc))
	for i, e := range doc {
		entries[i] = core.KnowledgeEntry{
			Id:      core.ID(e.Id),
			Topic:   e.Topic,
			Content: e.Content,
		}
	}
	return NewSet(entries)
}

// LoadFile decodes the knowledge file at path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Encode writes the set in the format Decode reads.
func Encode(w io.Writer, set *Set) error {
	doc := make([]yamlEntry, 0, set.Len())
	for _, e := range set.All() {
		doc = append(doc, yamlEntry{
			Id:      uint64(e.Id),
			Topic:   e.Topic,
			Content: e.Content,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
