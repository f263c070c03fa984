package embedding

import (
	"context"

	"cv-chatbot-be/internal/apperr"
)

// EmbeddingProvider generates a fixed-size vector for a piece of text.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Registry maps an embedding-dimension selector ("768", "1024") to the
// provider bound to that dimension. The snippet store keeps one
// precomputed vector column per registered dimension.
type Registry struct {
	providers map[string]EmbeddingProvider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]EmbeddingProvider)}
}

func (r *Registry) Register(dimension string, provider EmbeddingProvider) {
	r.providers[dimension] = provider
}

// ForDimension resolves the provider for a selector. Any selector
// outside the registered set is an unsupported configuration.
func (r *Registry) ForDimension(dimension string) (EmbeddingProvider, error) {
	p, ok := r.providers[dimension]
	if !ok {
		return nil, &apperr.UnsupportedConfigError{Field: "embedding_dimension", Value: dimension}
	}
	return p, nil
}

func (r *Registry) Dimensions() []string {
	dims := make([]string, 0, len(r.providers))
	for d := range r.providers {
		dims = append(dims, d)
	}
	return dims
}
