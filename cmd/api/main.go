package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/prospekta/lead-tracker/internal/config"
	"github.com/prospekta/lead-tracker/internal/entity"
	"github.com/prospekta/lead-tracker/internal/infra/auth"
	"github.com/prospekta/lead-tracker/internal/infra/database"
	"github.com/prospekta/lead-tracker/internal/infra/http/handlers"
	"github.com/prospekta/lead-tracker/internal/infra/http/middleware"
	"github.com/prospekta/lead-tracker/internal/infra/logger"
	"github.com/prospekta/lead-tracker/internal/infra/mail"
	"github.com/prospekta/lead-tracker/internal/infra/queue"
	"github.com/prospekta/lead-tracker/internal/infra/worker"
	"github.com/prospekta/lead-tracker/internal/usecase"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Server.Env, cfg.ServiceName); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		zap.L().Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer rabbitMQ.Close()

	// Repositories
	submissionRepo := database.NewSubmissionRepository(db)
	userRepo := database.NewUserRepository(db)
	projectRepo := database.NewProjectInterestRepository(db)
	overrideLogRepo := database.NewOverrideLogRepository(db)

	// Event producer and hot-lead alert worker
	producer := queue.NewProducer(rabbitMQ.Ch)

	var alerts queue.AlertSender
	if cfg.Mail.Host != "" && cfg.Mail.AlertTo != "" {
		alerts = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.AlertTo)
	}
	eventWorker := queue.NewWorker(rabbitMQ.Ch, alerts)
	go func() {
		if err := eventWorker.Start(queue.QueueName); err != nil {
			zap.L().Error("lead event worker stopped", zap.Error(err))
		}
	}()

	// Ownership expiry
	expiryWorker := worker.NewOwnershipExpirationWorker(db)
	go expiryWorker.Start(ctx)

	// Use cases
	createUC := usecase.NewCreateSubmissionUseCase(submissionRepo, projectRepo, producer, cfg.HotLeadThreshold, cfg.OwnershipTTL)
	listUC := usecase.NewListSubmissionsUseCase(submissionRepo)
	chainUC := usecase.NewResolveChainUseCase(submissionRepo)
	followUpUC := usecase.NewUpdateFollowUpUseCase(submissionRepo)
	statsUC := usecase.NewStatsUseCase(submissionRepo, userRepo)
	overrideUC := usecase.NewOverrideOwnershipUseCase(submissionRepo, userRepo, producer, cfg.OwnershipTTL)

	// Handlers
	jwtUtil := auth.NewJWTUtil(cfg.JWTSecret)
	submissionHandler := handlers.NewSubmissionHandler(createUC, listUC, chainUC, followUpUC, statsUC)
	adminHandler := handlers.NewAdminHandler(listUC, overrideUC, statsUC, overrideLogRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/submissions", func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtUtil))
		r.Get("/", submissionHandler.List)
		r.Get("/hot-leads", submissionHandler.HotLeads)
		r.Get("/stats", submissionHandler.Stats)
		r.Get("/{id}/chain", submissionHandler.Chain)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleMarketer))
			r.Post("/", submissionHandler.Create)
			r.Put("/{id}", submissionHandler.UpdateFollowUp)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtUtil))
		r.Use(middleware.RequireRole(entity.RoleAdmin))
		r.Get("/submissions", adminHandler.ListSubmissions)
		r.Post("/override-ownership", adminHandler.OverrideOwnership)
		r.Get("/override-logs", adminHandler.ListOverrideLogs)
		r.Get("/stats", adminHandler.Stats)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("lead tracker listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
}
