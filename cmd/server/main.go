package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mellow/internal/agent"
	"mellow/internal/assistant"
	"mellow/internal/config"
	"mellow/internal/dailylog"
	"mellow/internal/database"
	"mellow/internal/guide"
	"mellow/internal/healthqa"
	"mellow/internal/logger"
	"mellow/internal/platform/web"
	"mellow/internal/profile"
	"mellow/internal/reminder"
	"mellow/internal/report"
	"mellow/internal/symptom"
)

const serviceName = "mellow"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Infrastructure
	db, err := database.Open(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DatabaseDriver); err != nil {
		return err
	}
	zl.Info("Migrations applied")

	// 2. Catalogs
	catalog, err := loadSymptomCatalog(cfg.SymptomCatalogPath)
	if err != nil {
		return err
	}
	entries, err := loadHealthQA(cfg.HealthQACatalogPath)
	if err != nil {
		return err
	}
	library, err := guide.DefaultLibrary()
	if err != nil {
		return err
	}
	index := healthqa.NewIndex(entries)
	zl.Info("Catalogs loaded",
		zap.Int("symptoms", len(catalog.Symptoms())),
		zap.Int("health_qa_entries", index.Len()),
		zap.Int("articles", len(library.Articles)),
	)

	// 3. Services
	profileSvc := profile.NewService(profile.NewRepository(db), profile.NewContactRepository(db), zl, time.Now)
	logSvc := dailylog.NewService(dailylog.NewRepository(db), zl, time.Now)
	knowledgeAgent := agent.NewKnowledgeAgent(index, zl)
	assistantSvc := assistant.NewService(assistant.NewRepository(db), knowledgeAgent, assistant.RealClock(), cfg.AssistantReplyDelay, zl)
	reportSvc := report.NewService(cfg.ReportFontPath, cfg.ReportOutputDir, zl)

	if cfg.ReminderEnabled {
		scheduler := reminder.NewScheduler(profileSvc, logSvc, reminder.NewLogNotifier(zl), cfg.Location, zl)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer func() { <-scheduler.Stop().Done() }()
	}

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(web.RequestLogger(zl))
	r.Use(middleware.Recoverer)
	r.Use(web.CORS)

	r.Route("/api", func(r chi.Router) {
		profile.RegisterRoutes(r, profile.NewHandler(profileSvc, zl))
		dailylog.RegisterRoutes(r, dailylog.NewHandler(logSvc, zl))
		symptom.RegisterRoutes(r, symptom.NewHandler(symptom.NewClassifier(catalog), logSvc, profileSvc, zl))
		healthqa.RegisterRoutes(r, healthqa.NewHandler(index))
		assistant.RegisterRoutes(r, assistant.NewHandler(assistantSvc, zl))
		guide.RegisterRoutes(r, guide.NewHandler(library))
		report.RegisterRoutes(r, report.NewHandler(reportSvc, profileSvc, logSvc, time.Now, zl))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Port), zap.String("database", cfg.DatabaseDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadSymptomCatalog(path string) (*symptom.Catalog, error) {
	if path == "" {
		return symptom.DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symptom catalog: %w", err)
	}
	defer f.Close()
	return symptom.LoadCatalog(f)
}

func loadHealthQA(path string) ([]healthqa.Entry, error) {
	if path == "" {
		return healthqa.DefaultEntries()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open health Q&A catalog: %w", err)
	}
	defer f.Close()
	return healthqa.LoadEntries(f)
}
