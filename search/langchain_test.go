package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentRetriever_Nil(t *testing.T) {
	_, err := NewDocumentRetriever(nil)
	assert.ErrorIs(t, err, ErrRetrieverRequired)
}

func TestDocumentRetriever_GetRelevantDocuments(t *testing.T) {
	r := newDefaultRetriever(t)
	d, err := NewDocumentRetriever(r)
	require.NoError(t, err)

	docs, err := d.GetRelevantDocuments(context.Background(), "What is a commit?")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "Git Commit", docs[0].Metadata[MetadataTopic])
	assert.Equal(t, uint64(3), docs[0].Metadata[MetadataID])
	assert.Contains(t, docs[0].PageContent, "A commit is like taking a snapshot")
	assert.Greater(t, docs[0].Score, docs[1].Score)
}

func TestDocumentRetriever_NoMatch(t *testing.T) {
	d, err := NewDocumentRetriever(newDefaultRetriever(t))
	require.NoError(t, err)

	docs, err := d.GetRelevantDocuments(context.Background(), "xyzzy plugh")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentRetriever_Canceled(t *testing.T) {
	d, err := NewDocumentRetriever(newDefaultRetriever(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.GetRelevantDocuments(ctx, "git")
	assert.ErrorIs(t, err, context.Canceled)
}
