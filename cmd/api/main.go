package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/handlers"
	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/repositories"
	"alfredoptarigan/talent-ats/internal/services"
)

const (
	resumeChunkSize    = 1000
	resumeChunkOverlap = 150
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	companyRepo := repositories.NewCompanyRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	fitRepo := repositories.NewFitAnalysisRepository(db)
	runRepo := repositories.NewAnalysisRunRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("❌ Failed to create upload directory", zap.Error(err))
	}
	pdfParser := services.NewPDFParserService()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	log.Info("✅ Gemini AI initialized successfully", zap.String("model", geminiService.Model()))

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(cfg.Qdrant, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatal("❌ Failed to initialize Qdrant collection", zap.Error(err))
	}
	log.Info("✅ Qdrant initialized successfully", zap.String("collection", cfg.Qdrant.Collection))

	// Initialize fit analysis pipeline
	cache := services.NewAnalysisCache(fitRepo, cfg.Scoring.CacheTTL, log)
	fitAnalyzer := services.NewFitAnalyzer(geminiService, cache, cfg.Gemini, cfg.Scoring, log)
	indexer := services.NewResumeIndexer(geminiService, qdrantService, services.NewTextChunker(resumeChunkSize, resumeChunkOverlap), log)
	matchService := services.NewMatchService(geminiService, qdrantService, candidateRepo, log)
	log.Info("✅ Fit analysis pipeline initialized")

	// Initialize worker
	processor := services.NewRunProcessor(runRepo, candidateRepo, jobRepo, companyRepo, fitAnalyzer, log)
	worker := services.NewWorker(runRepo, processor, cfg.Worker, log)
	worker.Start(ctx)
	log.Info("✅ Worker started successfully")

	// Initialize handlers
	companyHandler := handlers.NewCompanyHandler(companyRepo)
	jobHandler := handlers.NewJobHandler(jobRepo, candidateRepo, fitRepo)
	applicationHandler := handlers.NewApplicationHandler(
		jobRepo,
		candidateRepo,
		docRepo,
		storageService,
		pdfParser,
		indexer,
		cfg.Storage.MaxFileSize,
		log,
	)
	fitAnalysisHandler := handlers.NewFitAnalysisHandler(candidateRepo, jobRepo, fitAnalyzer, log)
	runHandler := handlers.NewAnalysisRunHandler(jobRepo, candidateRepo, runRepo, fitRepo, worker, log)
	matchHandler := handlers.NewMatchHandler(jobRepo, matchService, log)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Talent ATS API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.CompanyHeader,
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Post("/companies", companyHandler.HandleCreate)

	// Everything below belongs to the company in X-Company-ID
	tenant := api.Group("", middleware.Tenant(companyRepo))
	tenant.Post("/jobs", jobHandler.HandleCreate)
	tenant.Get("/jobs", jobHandler.HandleList)
	tenant.Get("/jobs/:id", jobHandler.HandleGet)
	tenant.Get("/jobs/:id/candidates", jobHandler.HandleListCandidates)
	tenant.Get("/jobs/:id/fit-analyses", jobHandler.HandleListFitAnalyses)
	tenant.Get("/jobs/:id/matches", matchHandler.HandleMatch)
	tenant.Post("/jobs/:id/applications", applicationHandler.HandleApply)
	tenant.Post("/jobs/:id/analysis-runs", runHandler.HandleCreate)
	tenant.Get("/candidates/:id", applicationHandler.HandleGetCandidate)
	tenant.Get("/candidates/:id/jobs/:jobId/fit-analysis", fitAnalysisHandler.HandleGet)
	tenant.Get("/analysis-runs/:id", runHandler.HandleGet)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Talent ATS API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/companies",
				"POST /api/v1/jobs",
				"POST /api/v1/jobs/:id/applications",
				"POST /api/v1/jobs/:id/analysis-runs",
				"GET /api/v1/jobs/:id/matches",
				"GET /api/v1/candidates/:id/jobs/:jobId/fit-analysis",
				"GET /api/v1/analysis-runs/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
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
