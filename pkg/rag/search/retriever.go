package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/embedding"
	"cv-chatbot-be/pkg/llm"
)

// Candidate is one snippet returned by the vector store together with
// its raw cosine similarity and source labels.
type Candidate struct {
	Content    string
	Source     string
	SourceDesc string
	Score      float64
}

// SnippetSearcher abstracts the vector store. The dimension selects
// which embedding column the query vector is compared against; the
// intent drives the store's weighted candidate cut so a boosted row
// ranked below the raw top candidates still comes back.
type SnippetSearcher interface {
	SearchByVector(ctx context.Context, vector []float32, dimension, intent string, limit int) ([]Candidate, error)
}

const rewritePromptTemplate = `
You are a helpful assistant creating a precise search query for a data engineer CV chatbot's document retrieval system.
The user's intent is: %s
User's latest question: "%s"

%s

Rewrite or expand the question into a clear, specific search query that would best retrieve relevant information from a CV, skills, projects, and experience database.
Return only the rewritten search query (1-2 sentences), no extra text.
`

// Retriever runs the full retrieval leg: rewrite the question into a
// search query, embed it, fetch candidates and re-rank them by source.
type Retriever struct {
	provider   llm.LLMProvider
	embeddings *embedding.Registry
	searcher   SnippetSearcher
}

func NewRetriever(provider llm.LLMProvider, embeddings *embedding.Registry, searcher SnippetSearcher) *Retriever {
	return &Retriever{
		provider:   provider,
		embeddings: embeddings,
		searcher:   searcher,
	}
}

// RewriteQuery turns the raw user message into a retrieval query using
// the completion model. The chat history block is omitted when empty.
func (r *Retriever) RewriteQuery(ctx context.Context, userMessage, intent, chatHistory, model string) (string, error) {
	historyBlock := ""
	if strings.TrimSpace(chatHistory) != "" {
		historyBlock = "Chat history: " + chatHistory
	}

	prompt := fmt.Sprintf(rewritePromptTemplate, intent, userMessage, historyBlock)

	rewritten, err := r.provider.Generate(ctx, prompt, llm.WithModel(model), llm.WithTemperature(constant.TemperatureDefault))
	if err != nil {
		return "", apperr.External("query rewrite", err)
	}
	return strings.TrimSpace(rewritten), nil
}

// Retrieve returns the context block for the prompt: the top snippets
// after source weighting, joined by blank lines. An empty store yields
// an empty block, which is not an error.
func (r *Retriever) Retrieve(ctx context.Context, userMessage, intent, chatHistory, model, dimension string) (string, error) {
	query, err := r.RewriteQuery(ctx, userMessage, intent, chatHistory, model)
	if err != nil {
		return "", err
	}

	provider, err := r.embeddings.ForDimension(dimension)
	if err != nil {
		return "", err
	}

	vector, err := provider.Generate(ctx, query)
	if err != nil {
		return "", apperr.External("embedding", err)
	}

	candidates, err := r.searcher.SearchByVector(ctx, vector, dimension, intent, constant.SearchCandidateLimit)
	if err != nil {
		return "", apperr.External("retrieval", err)
	}

	top := Rank(candidates, intent, constant.SnippetTopK)

	snippets := make([]string, 0, len(top))
	for _, candidate := range top {
		snippets = append(snippets, candidate.Content)
	}
	return strings.Join(snippets, "\n\n"), nil
}

// Rank applies the source weighting to raw similarities and returns the
// best k candidates. Language-fluency rows are down-weighted so they do
// not crowd out substantive snippets; rows whose source matches the
// question's intent get boosted.
func Rank(candidates []Candidate, intent string, k int) []Candidate {
	weighted := make([]Candidate, len(candidates))
	copy(weighted, candidates)

	for i := range weighted {
		weighted[i].Score *= weightFor(weighted[i], intent)
	}

	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].Score > weighted[j].Score
	})

	if k < len(weighted) {
		weighted = weighted[:k]
	}
	return weighted
}

func weightFor(c Candidate, intent string) float64 {
	if c.SourceDesc == constant.LanguageFluencySource {
		return constant.LanguageFluencyPenalty
	}
	if c.Source == intent {
		return constant.IntentMatchBoost
	}
	return 1.0
}
