package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/mediquiz/internal/api"
	"github.com/vytor/mediquiz/internal/config"
	"github.com/vytor/mediquiz/internal/db"
	"github.com/vytor/mediquiz/internal/generator"
	"github.com/vytor/mediquiz/internal/logger"
	"github.com/vytor/mediquiz/internal/repository/jsonfile"
	"github.com/vytor/mediquiz/internal/repository/sqlite"
	"github.com/vytor/mediquiz/internal/services"
	"github.com/vytor/mediquiz/internal/session"
)

// sessionTTL is how long an idle browser session keeps its review state.
const sessionTTL = 12 * time.Hour

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MEDI-Quiz Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("cards_path=%s", cfg.CardsPath)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("gemini_model=%s", cfg.GeminiModel)
	log.Debug("quiz_count=%d", cfg.QuizCount)
	log.Debug("char_limits notes=%d exam=%d lecture=%d", cfg.NoteCharLimit, cfg.ExamCharLimit, cfg.LectureLimit)
	log.Debug("max_upload_mb=%d", cfg.MaxUploadMB)
	log.Debug("generate_timeout=%s", cfg.GenerateTimeout)
	log.Debug("templates_dir=%s", cfg.TemplatesDir)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var provider generator.Provider
	if cfg.AIEnabled() {
		provider, err = generator.NewGeminiProvider(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("failed to create AI provider: %v", err)
			os.Exit(1)
		}
		log.Info("AI provider ready: model=%s", cfg.GeminiModel)
	} else {
		log.Warn("GOOGLE_API_KEY is not set, question and summary generation are disabled")
	}
	gen := generator.New(provider,
		generator.WithLimits(generator.Limits{
			Notes:   cfg.NoteCharLimit,
			Exam:    cfg.ExamCharLimit,
			Lecture: cfg.LectureLimit,
		}),
		generator.WithQuestionCount(cfg.QuizCount),
		generator.WithTimeout(cfg.GenerateTimeout),
	)

	cardRepo := jsonfile.NewCardRepository(cfg.CardsPath)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	log.Info("card store: %s (%d cards)", cfg.CardsPath, len(cardRepo.LoadAll(ctx)))

	srv := &api.Server{
		CardService:    services.NewCardService(cardRepo),
		QuizService:    services.NewQuizService(cardRepo, gen),
		SummaryService: services.NewSummaryService(gen),
		StatsService:   services.NewStatsService(reviewRepo, cardRepo),
		Controller:     session.NewController(cardRepo, reviewRepo),
		Sessions:       session.NewRegistry(sessionTTL),
		Templates:      tmpl,
		DB:             database.DB,
		AIEnabled:      gen.Available(),
		QuestionCount:  gen.QuestionCount(),
		MaxUploadMB:    cfg.MaxUploadMB,
	}

	// Generation requests wait on the model, so writes get the model timeout
	// plus headroom.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.GenerateTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	cancel()

	log.Info("===========================================")
	log.Info("MEDI-Quiz Server Stopped")
	log.Info("===========================================")
}
