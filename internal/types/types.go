package types

import (
	"context"

	"github.com/tradedesk/htsagent/internal/models"
)

// Core interfaces
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Index is a nearest-neighbor search over an embedded corpus. Search
// returns up to k passages ordered by decreasing similarity; an empty
// slice means nothing was found, not an error.
type Index interface {
	Search(ctx context.Context, query string, k int) ([]models.SearchResult, error)
	Close() error
}

// IndexWriter is implemented by index backends that can be (re)built.
type IndexWriter interface {
	Add(ctx context.Context, passages []models.Passage, vectors [][]float32) error
	Flush() error
}

// DocumentFinder is the keyword fallback over the document store.
type DocumentFinder interface {
	Find(ctx context.Context, query string) (models.Document, bool, error)
}

// TariffSource resolves a classification code to its schedule rows.
type TariffSource interface {
	Lookup(code string) ([]models.TariffRow, error)
}
