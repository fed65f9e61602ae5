package search

import (
	"context"

	"github.com/tmc/langchaingo/schema"
)

// Metadata keys set on documents returned by DocumentRetriever.
const (
	MetadataID    = "id"
	MetadataTopic = "topic"
)

// DocumentRetriever exposes a Retriever through the langchaingo schema.Retriever interface.
type DocumentRetriever struct {
	retriever *Retriever
	topK      int
}

var _ schema.Retriever = (*DocumentRetriever)(nil)

// NewDocumentRetriever wraps r. Documents are ranked with r's configured top-K.
func NewDocumentRetriever(r *Retriever) (*DocumentRetriever, error) {
	if r == nil {
		return nil, ErrRetrieverRequired
	}
	return &DocumentRetriever{retriever: r, topK: r.TopK()}, nil
}

// GetRelevantDocuments returns the ranked entries for query as documents,
// highest score first. Entry content becomes the page content.
func (d *DocumentRetriever) GetRelevantDocuments(ctx context.Context, query string) ([]schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := d.retriever.Rank(query, d.topK)
	docs := make([]schema.Document, len(ranked))
	for i, s := range ranked {
		docs[i] = schema.Document{
			PageContent: s.Entry.Content,
			Metadata: map[string]any{
				MetadataID:    uint64(s.Entry.Id),
				MetadataTopic: s.Entry.Topic,
			},
			Score: float32(s.Score),
		}
	}
	return docs, nil
}
