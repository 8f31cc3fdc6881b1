package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"smartresume/resume-analyzer/internal/config"
	"smartresume/resume-analyzer/internal/handlers"
	"smartresume/resume-analyzer/internal/repositories"
	"smartresume/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repository initialized successfully")

	// Core pipeline services. The language model availability and the
	// Gemini credential are decided once here; the pipeline never
	// re-checks them per request.
	extractor := services.NewTextExtractor()

	var model services.LanguageModel
	if cfg.NLP.ModelEnabled {
		model = services.NewProseModel()
		log.Println("✅ Language model enabled (prose)")
	} else {
		log.Println("ℹ️  Language model disabled, using pattern extraction")
	}
	entities := services.NewEntityExtractor(nil, model)

	scorer := services.NewSimilarityScorer()

	var gemini services.GeminiService
	suggester := services.NewRuleSuggester()
	if cfg.Gemini.APIKey != "" {
		gemini, err = services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		suggester = services.NewLLMSuggester(gemini, suggester, cfg.Analyzer.SuggestionTimeout)
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("ℹ️  No Gemini API key, using rule-based suggestions")
	}

	analyzer := services.NewAnalyzerService(extractor, entities, scorer, suggester)
	log.Println("✅ Analyzer service initialized")

	// Vector index + background worker; optional, requires Gemini for
	// embeddings.
	var index services.VectorIndex
	var worker services.IndexWorker
	if gemini != nil && cfg.Qdrant.URL != "" {
		index, err = services.NewVectorIndex(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			gemini,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := index.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		worker = services.NewIndexWorker(
			analysisRepo,
			index,
			cfg.Worker.Concurrency,
			cfg.Worker.PollInterval,
		)
		worker.Start(context.Background())
		log.Println("✅ Index worker started successfully")
	} else {
		log.Println("ℹ️  Vector index disabled")
	}

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		analyzer,
		analysisRepo,
		worker,
		cfg.Analyzer.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(analysisRepo, index)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Smart Resume Analyzer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Analyzer.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/analyses", resultHandler.HandleListAnalyses)
	api.Get("/analyses/:id", resultHandler.HandleGetAnalysis)
	api.Get("/analyses/:id/similar", resultHandler.HandleGetSimilar)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Smart Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/analyses",
				"GET /api/v1/analyses/:id",
				"GET /api/v1/analyses/:id/similar",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
