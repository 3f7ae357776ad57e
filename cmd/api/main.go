package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/config"
	"recruitops/pipeline-api/internal/handlers"
	"recruitops/pipeline-api/internal/logger"
	"recruitops/pipeline-api/internal/repositories"
	"recruitops/pipeline-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db, cfg.Store.Timeout)
	interviewRepo := repositories.NewInterviewRepository(db, cfg.Store.Timeout)
	dictionaryRepo := repositories.NewDictionaryRepository(db, cfg.Store.Timeout)
	assessmentRepo := repositories.NewAssessmentRepository(db, cfg.Store.Timeout)
	backgroundRepo := repositories.NewBackgroundRepository(db, cfg.Store.Timeout)
	offerRepo := repositories.NewOfferRepository(db, cfg.Store.Timeout)
	jobRepo := repositories.NewJobRepository(db, cfg.Store.Timeout)
	zlog.Info("repositories initialized")

	// Initialize services
	resolver := services.NewDictionaryResolver(dictionaryRepo, zlog)
	pipeline := services.NewPipelineService(candidateRepo, interviewRepo, offerRepo, resolver, zlog)
	interviews := services.NewInterviewService(interviewRepo, candidateRepo, resolver, pipeline, zlog)
	aggregate := services.NewAggregateService(candidateRepo, interviewRepo, assessmentRepo, backgroundRepo, offerRepo, jobRepo)
	zlog.Info("services initialized")

	// Initialize handlers
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, pipeline, aggregate, resolver, zlog)
	interviewHandler := handlers.NewInterviewHandler(interviews, zlog)
	dictionaryHandler := handlers.NewDictionaryHandler(dictionaryRepo, resolver, zlog)
	subRecordHandler := handlers.NewSubRecordHandler(candidateRepo, assessmentRepo, backgroundRepo, offerRepo, resolver, zlog)
	jobHandler := handlers.NewJobHandler(jobRepo, candidateRepo, zlog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Recruiting Pipeline API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
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

	// Candidates
	api.Post("/candidates", candidateHandler.HandleCreate)
	api.Get("/candidates", candidateHandler.HandleList)
	api.Get("/candidates/:id", candidateHandler.HandleGet)
	api.Put("/candidates/:id", candidateHandler.HandleUpdate)
	api.Delete("/candidates/:id", candidateHandler.HandleDelete)
	api.Post("/candidates/:id/eliminate", candidateHandler.HandleEliminate)

	// Interviews
	api.Get("/candidates/:id/interviews", interviewHandler.HandleList)
	api.Post("/candidates/:id/interviews", interviewHandler.HandlePost)
	api.Put("/candidates/:id/interviews/:interviewId", interviewHandler.HandlePut)
	api.Delete("/candidates/:id/interviews/:interviewId", interviewHandler.HandleDelete)

	// Sub-records
	api.Post("/candidates/:id/assessments", subRecordHandler.HandleCreateAssessment)
	api.Put("/candidates/:id/assessments/:recordId", subRecordHandler.HandleUpdateAssessment)
	api.Post("/candidates/:id/backgrounds", subRecordHandler.HandleCreateBackground)
	api.Put("/candidates/:id/backgrounds/:recordId", subRecordHandler.HandleUpdateBackground)
	api.Post("/candidates/:id/offers", subRecordHandler.HandleCreateOffer)
	api.Put("/candidates/:id/offers/:recordId", subRecordHandler.HandleUpdateOffer)

	// Dictionaries
	api.Get("/dictionaries/:category", dictionaryHandler.HandleList)
	api.Post("/dictionaries", dictionaryHandler.HandleCreate)
	api.Put("/dictionaries/:id", dictionaryHandler.HandleUpdate)
	api.Delete("/dictionaries/:id", dictionaryHandler.HandleDelete)

	// Job postings
	api.Get("/jobs", jobHandler.HandleList)
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Post("/candidates/:id/jobs/:jobId", jobHandler.HandleLink)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
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
