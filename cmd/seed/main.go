package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"cv-chatbot-be/internal/config"
	"cv-chatbot-be/internal/entity"
	"cv-chatbot-be/internal/model"
	"cv-chatbot-be/internal/repository/unitofwork"
	"cv-chatbot-be/pkg/database"
	"cv-chatbot-be/pkg/embedding"

	"github.com/google/uuid"
)

// seedDocument is the ingest format: one retrievable snippet per row.
type seedDocument struct {
	InputText  string `json:"input_text"`
	Source     string `json:"source"`
	SourceDesc string `json:"source_desc"`
}

func main() {
	seedPath := flag.String("file", "docs/snippets.json", "path to the snippets to ingest")
	migrate := flag.Bool("migrate", false, "run schema migration before seeding")
	replace := flag.Bool("replace", false, "delete existing rows for the seeded sources before inserting")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	if *migrate {
		log.Println("Running schema migration...")
		if err := gormDB.AutoMigrate(&model.Snippet{}, &model.ChatLog{}); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var docs []seedDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}
	log.Printf("Loaded %d snippets from %s", len(docs), *seedPath)

	provider768 := embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.Embedding768Model)
	provider1024 := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.Embedding1024Model)

	ctx := context.Background()
	snippets := make([]*entity.Snippet, 0, len(docs))
	for i, doc := range docs {
		vec768, err := provider768.Generate(ctx, doc.InputText)
		if err != nil {
			log.Fatalf("768-dim embedding failed for snippet %d: %v", i, err)
		}
		vec1024, err := provider1024.Generate(ctx, doc.InputText)
		if err != nil {
			log.Fatalf("1024-dim embedding failed for snippet %d: %v", i, err)
		}

		snippets = append(snippets, &entity.Snippet{
			Id:            uuid.New(),
			InputText:     doc.InputText,
			Source:        doc.Source,
			SourceDesc:    doc.SourceDesc,
			Embedding768:  vec768,
			Embedding1024: vec1024,
		})
		log.Printf("Embedded snippet %d/%d (%s)", i+1, len(docs), doc.SourceDesc)
	}

	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer uow.Rollback()

	if *replace {
		for _, source := range distinctSources(docs) {
			if err := uow.SnippetRepository().DeleteBySource(ctx, source); err != nil {
				log.Fatalf("Failed to delete existing %q snippets: %v", source, err)
			}
			log.Printf("Cleared existing snippets for source %q", source)
		}
	}

	if err := uow.SnippetRepository().CreateBulk(ctx, snippets); err != nil {
		log.Fatalf("Failed to insert snippets: %v", err)
	}
	if err := uow.Commit(); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	total, err := uow.SnippetRepository().Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count snippets: %v", err)
	}
	log.Printf("✅ Seeded %d snippets (%d total in store)", len(snippets), total)
}

// distinctSources preserves first-seen order so deletion logs read in
// seed-file order.
func distinctSources(docs []seedDocument) []string {
	seen := make(map[string]bool, len(docs))
	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		if seen[doc.Source] {
			continue
		}
		seen[doc.Source] = true
		sources = append(sources, doc.Source)
	}
	return sources
}
