package implementation

import (
	"context"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/mapper"
	"cv-chatbot-be/internal/model"
	"cv-chatbot-be/internal/repository/contract"
	"cv-chatbot-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnippetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SnippetMapper
}

func NewSnippetRepository(db *gorm.DB) contract.SnippetRepository {
	return &SnippetRepositoryImpl{
		db:     db,
		mapper: mapper.NewSnippetMapper(),
	}
}

func (r *SnippetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SnippetRepositoryImpl) Create(ctx context.Context, snippet *entity.Snippet) error {
	m := r.mapper.ToModel(snippet)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snippet = *r.mapper.ToEntity(m)
	return nil
}

func (r *SnippetRepositoryImpl) CreateBulk(ctx context.Context, snippets []*entity.Snippet) error {
	models := make([]*model.Snippet, len(snippets))
	for i, s := range snippets {
		models[i] = r.mapper.ToModel(s)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*snippets[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SnippetRepositoryImpl) DeleteBySource(ctx context.Context, source string) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.BySource{Source: source})
	return query.Delete(&model.Snippet{}).Error
}

func (r *SnippetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Snippet{}).Count(&count).Error
	return count, err
}

// embeddingColumn maps a dimension selector to its vector column. The
// column name is taken from a fixed table, never from user input.
func embeddingColumn(dimension string) (string, error) {
	switch dimension {
	case constant.EmbeddingDim768:
		return "chunk_embedding", nil
	case constant.EmbeddingDim1024:
		return "chunk_embedding_1024", nil
	default:
		return "", &apperr.UnsupportedConfigError{Field: "embedding_size", Value: dimension}
	}
}

// weightedOrder orders candidates by source-weighted similarity so the
// limit is cut after weighting, not before. A boosted row with a lower
// raw similarity therefore still makes the candidate set.
func weightedOrder(column, intent string, queryVector pgvector.Vector) clause.Expr {
	return clause.Expr{
		SQL: "(1 - (" + column + " <=> ?)) * " +
			"CASE WHEN source_desc = ? THEN ? WHEN source = ? THEN ? ELSE 1 END DESC",
		Vars: []interface{}{
			queryVector,
			constant.LanguageFluencySource,
			constant.LanguageFluencyPenalty,
			intent,
			constant.IntentMatchBoost,
		},
	}
}

func (r *SnippetRepositoryImpl) SearchSimilar(ctx context.Context, vector []float32, dimension, intent string, limit int) ([]*contract.ScoredSnippet, error) {
	if limit <= 0 {
		limit = constant.SearchCandidateLimit
	}

	column, err := embeddingColumn(dimension)
	if err != nil {
		return nil, err
	}

	// Cosine distance in pgvector is 1 - cosine_similarity.
	type result struct {
		model.Snippet
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err = r.db.WithContext(ctx).
		Table("vector_store").
		Select("vector_store.*, 1 - ("+column+" <=> ?) as similarity", queryVector).
		Order(weightedOrder(column, intent, queryVector)).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSnippet, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSnippet{
			Snippet:    r.mapper.ToEntity(&res.Snippet),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
