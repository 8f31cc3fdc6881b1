package main

import (
	"context"
	"log"

	"smartresume/resume-analyzer/internal/config"
	"smartresume/resume-analyzer/internal/repositories"
	"smartresume/resume-analyzer/internal/services"
)

// Re-embeds every stored analysis into the Qdrant collection. Useful
// after switching embedding models or recreating the collection.
func main() {
	log.Println("🚀 Starting index backfill...")

	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required for embeddings")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	repo := repositories.NewAnalysisRepository(db)

	gemini, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	index, err := services.NewVectorIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		gemini,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := index.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	analyses, err := repo.FindRecent(1000)
	if err != nil {
		log.Fatalf("❌ Failed to load analyses: %v", err)
	}
	log.Printf("📋 Found %d analyses", len(analyses))

	successCount := 0
	failCount := 0

	for _, analysis := range analyses {
		log.Printf("📄 Indexing analysis %s...", analysis.ID)

		if err := index.IndexAnalysis(ctx, &analysis); err != nil {
			log.Printf("   ❌ Failed to index: %v", err)
			failCount++
			continue
		}

		if err := repo.MarkIndexed(analysis.ID); err != nil {
			log.Printf("   ⚠️  Indexed but failed to mark: %v", err)
		}

		successCount++
	}

	log.Printf("📊 Backfill summary: %d indexed, %d failed", successCount, failCount)

	if failCount > 0 {
		log.Println("⚠️  Some analyses failed to index. Please check the logs above.")
	}
}
