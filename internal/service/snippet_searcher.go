package service

import (
	"context"

	"cv-chatbot-be/internal/repository/unitofwork"
	"cv-chatbot-be/pkg/rag/search"
)

// snippetSearcher adapts the repository layer to the retriever's
// vector-search contract.
type snippetSearcher struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSnippetSearcher(uowFactory unitofwork.RepositoryFactory) search.SnippetSearcher {
	return &snippetSearcher{uowFactory: uowFactory}
}

func (s *snippetSearcher) SearchByVector(ctx context.Context, vector []float32, dimension, intent string, limit int) ([]search.Candidate, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.SnippetRepository().SearchSimilar(ctx, vector, dimension, intent, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]search.Candidate, len(scored))
	for i, item := range scored {
		candidates[i] = search.Candidate{
			Content:    item.Snippet.InputText,
			Source:     item.Snippet.Source,
			SourceDesc: item.Snippet.SourceDesc,
			Score:      item.Similarity,
		}
	}
	return candidates, nil
}
