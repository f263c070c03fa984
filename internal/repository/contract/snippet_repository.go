package contract

import (
	"context"

	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/repository/specification"
)

// ScoredSnippet wraps a snippet with its raw cosine similarity against
// the query vector, before any source weighting.
type ScoredSnippet struct {
	Snippet    *entity.Snippet
	Similarity float64
}

type SnippetRepository interface {
	Create(ctx context.Context, snippet *entity.Snippet) error
	CreateBulk(ctx context.Context, snippets []*entity.Snippet) error
	// DeleteBySource removes every snippet ingested under one source
	// label, so re-seeding a source replaces its rows.
	DeleteBySource(ctx context.Context, source string) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar compares the query vector against the embedding
	// column the dimension selects. Candidates are cut by
	// source-weighted score so a boosted row can never fall outside the
	// limit, but the returned similarities stay raw.
	SearchSimilar(ctx context.Context, vector []float32, dimension, intent string, limit int) ([]*ScoredSnippet, error)
}
