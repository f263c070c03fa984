package mapper

import (
	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type SnippetMapper struct{}

func NewSnippetMapper() *SnippetMapper {
	return &SnippetMapper{}
}

func (m *SnippetMapper) ToEntity(s *model.Snippet) *entity.Snippet {
	if s == nil {
		return nil
	}

	return &entity.Snippet{
		Id:            s.Id,
		InputText:     s.InputText,
		Source:        s.Source,
		SourceDesc:    s.SourceDesc,
		Embedding768:  s.ChunkEmbedding.Slice(),
		Embedding1024: s.ChunkEmbedding1024.Slice(),
		CreatedAt:     s.CreatedAt,
	}
}

func (m *SnippetMapper) ToModel(s *entity.Snippet) *model.Snippet {
	if s == nil {
		return nil
	}

	return &model.Snippet{
		Id:                 s.Id,
		InputText:          s.InputText,
		Source:             s.Source,
		SourceDesc:         s.SourceDesc,
		ChunkEmbedding:     pgvector.NewVector(s.Embedding768),
		ChunkEmbedding1024: pgvector.NewVector(s.Embedding1024),
		CreatedAt:          s.CreatedAt,
	}
}

func (m *SnippetMapper) ToEntities(snippets []*model.Snippet) []*entity.Snippet {
	entities := make([]*entity.Snippet, len(snippets))
	for i, s := range snippets {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
