package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/embedding"
	"cv-chatbot-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
	prompt   string
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

type stubEmbedder struct {
	vector []float32
	err    error
	dim    int
}

func (s *stubEmbedder) Generate(_ context.Context, _ string) ([]float32, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) Dimension() int { return s.dim }

type stubSearcher struct {
	candidates []Candidate
	err        error
	gotLimit   int
	gotDim     string
	gotIntent  string
}

func (s *stubSearcher) SearchByVector(_ context.Context, _ []float32, dimension, intent string, limit int) ([]Candidate, error) {
	s.gotDim = dimension
	s.gotIntent = intent
	s.gotLimit = limit
	return s.candidates, s.err
}

func registryWith(dim string, p embedding.EmbeddingProvider) *embedding.Registry {
	registry := embedding.NewRegistry()
	registry.Register(dim, p)
	return registry
}

func TestRankBoostsIntentMatches(t *testing.T) {
	candidates := []Candidate{
		{Content: "certs", Source: constant.IntentCertifications, Score: 0.70},
		{Content: "experience", Source: constant.IntentExperience, Score: 0.60},
		{Content: "background", Source: constant.IntentGeneralBackground, Score: 0.75},
	}

	top := Rank(candidates, constant.IntentExperience, 3)

	// 0.60 * 1.5 = 0.90 outranks the raw 0.75 and 0.70.
	require.Len(t, top, 3)
	assert.Equal(t, "experience", top[0].Content)
	assert.Equal(t, "background", top[1].Content)
	assert.Equal(t, "certs", top[2].Content)
}

func TestRankPenalizesLanguageFluency(t *testing.T) {
	candidates := []Candidate{
		{Content: "greek and english", SourceDesc: constant.LanguageFluencySource, Score: 0.95},
		{Content: "airflow pipelines", Source: constant.IntentSkillsOrTools, Score: 0.50},
	}

	top := Rank(candidates, constant.IntentGeneralBackground, 1)

	// 0.95 * 0.3 = 0.285 loses to the unweighted 0.50.
	require.Len(t, top, 1)
	assert.Equal(t, "airflow pipelines", top[0].Content)
}

func TestRankTruncatesToK(t *testing.T) {
	candidates := []Candidate{
		{Content: "a", Score: 0.9},
		{Content: "b", Score: 0.8},
		{Content: "c", Score: 0.7},
		{Content: "d", Score: 0.6},
	}

	top := Rank(candidates, constant.IntentUnknown, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "a", top[0].Content)
}

func TestRetrieveJoinsTopSnippets(t *testing.T) {
	searcher := &stubSearcher{candidates: []Candidate{
		{Content: "first", Score: 0.9},
		{Content: "second", Score: 0.8},
	}}
	retriever := NewRetriever(
		&stubLLM{response: "rewritten query"},
		registryWith(constant.EmbeddingDim1024, &stubEmbedder{vector: []float32{0.1, 0.2}, dim: 1024}),
		searcher,
	)

	block, err := retriever.Retrieve(context.Background(), "what do you use?", constant.IntentSkillsOrTools, "", constant.DefaultModel, constant.EmbeddingDim1024)
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond", block)
	assert.Equal(t, constant.SearchCandidateLimit, searcher.gotLimit)
	assert.Equal(t, constant.EmbeddingDim1024, searcher.gotDim)
	assert.Equal(t, constant.IntentSkillsOrTools, searcher.gotIntent)
}

func TestRetrieveUnsupportedDimension(t *testing.T) {
	retriever := NewRetriever(
		&stubLLM{response: "rewritten"},
		embedding.NewRegistry(),
		&stubSearcher{},
	)

	_, err := retriever.Retrieve(context.Background(), "hi", constant.IntentUnknown, "", constant.DefaultModel, "512")
	require.Error(t, err)

	var cfgErr *apperr.UnsupportedConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRetrieveRewriteFailure(t *testing.T) {
	retriever := NewRetriever(
		&stubLLM{err: errors.New("timeout")},
		registryWith(constant.EmbeddingDim1024, &stubEmbedder{vector: []float32{0.1}, dim: 1024}),
		&stubSearcher{},
	)

	_, err := retriever.Retrieve(context.Background(), "hi", constant.IntentUnknown, "", constant.DefaultModel, constant.EmbeddingDim1024)
	require.Error(t, err)

	var extErr *apperr.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "query rewrite", extErr.Service)
}

func TestRewriteQueryIncludesHistoryOnlyWhenPresent(t *testing.T) {
	stub := &stubLLM{response: "query"}
	retriever := NewRetriever(stub, embedding.NewRegistry(), &stubSearcher{})

	_, err := retriever.RewriteQuery(context.Background(), "and after that?", constant.IntentFollowUp, "User: where did you intern?", constant.DefaultModel)
	require.NoError(t, err)
	assert.Contains(t, stub.prompt, "Chat history: User: where did you intern?")

	_, err = retriever.RewriteQuery(context.Background(), "what tools?", constant.IntentSkillsOrTools, "", constant.DefaultModel)
	require.NoError(t, err)
	assert.NotContains(t, stub.prompt, "Chat history:")
}
