package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fitforge_backend/database"
	"fitforge_backend/internal/auth"
	"fitforge_backend/internal/config"
	"fitforge_backend/internal/email"
	"fitforge_backend/internal/events"
	"fitforge_backend/internal/handlers"
	"fitforge_backend/internal/logger"
	"fitforge_backend/internal/middleware"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/routes"
	"fitforge_backend/internal/services"
	"fitforge_backend/internal/validator"
	"fitforge_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	shutdownTimeout = 10 * time.Second
	jobQueueSize    = 256
	jobTimeout      = 15 * time.Second
)

// Dependencies are the collaborators the router is built from. Tests
// supply their own database, mailer and job runner.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Mailer    email.Provider
	Publisher events.Publisher
	Jobs      services.JobRunner
}

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...")
	gormDB, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(gormDB); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		return err
	}
	if err := database.SeedFirstAdmin(gormDB, cfg.FirstAdminEmail); err != nil {
		return err
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	mailer := newMailer(cfg)
	defer mailer.Close()

	dispatcher := workers.NewDispatcher(jobQueueSize, jobTimeout)
	dispatcher.Start(context.Background())

	router := SetupRouter(Dependencies{
		Config:    cfg,
		DB:        gormDB,
		Mailer:    mailer,
		Publisher: publisher,
		Jobs:      dispatcher,
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	dispatcher.Stop()
	logger.Info("Server stopped")
	return nil
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
func SetupRouter(deps Dependencies) *gin.Engine {
	userRepo := repositories.NewUserRepository()
	serviceContainer := initializeServices(deps, userRepo)
	appHandlers := initializeHandlers(serviceContainer)

	tokens := auth.NewTokenManager(deps.Config.JWT.Secret, deps.Config.TokenTTL())
	guards := routes.Guards{
		Authenticated: middleware.Authenticated(tokens),
		AdminRole:     middleware.AdminRole(userRepo),
		TrainerRole:   middleware.TrainerRole(userRepo),
		SelfOnly:      middleware.SelfOnly(),
	}

	ginRouter := initializeGinRouter(deps)
	routes.RegisterRoutes(ginRouter, appHandlers, guards)
	return ginRouter
}

func initializeServices(deps Dependencies, userRepo repositories.UserRepository) *services.ServiceContainer {
	trainerRepo := repositories.NewTrainerRepository()
	slotRepo := repositories.NewSlotRepository()
	classRepo := repositories.NewClassRepository()
	applicationRepo := repositories.NewApplicationRepository()
	paymentRepo := repositories.NewPaymentRepository()
	subscriberRepo := repositories.NewSubscriberRepository()

	return &services.ServiceContainer{
		UserService:        services.NewUserService(userRepo, subscriberRepo),
		ClassService:       services.NewClassService(classRepo),
		ApplicationService: services.NewApplicationService(userRepo, trainerRepo, applicationRepo, deps.Mailer, deps.Publisher, deps.Jobs),
		SlotService:        services.NewSlotService(userRepo, trainerRepo, slotRepo, classRepo, paymentRepo, deps.Publisher, deps.Jobs),
		EmailService:       deps.Mailer,
		Publisher:          deps.Publisher,
	}
}

func initializeHandlers(svc *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		UserHandler:        handlers.NewUserHandler(baseHandler, svc.UserService),
		ClassHandler:       handlers.NewClassHandler(baseHandler, svc.ClassService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, svc.ApplicationService),
		SlotHandler:        handlers.NewSlotHandler(baseHandler, svc.SlotService),
		HealthHandler:      handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(deps.Config.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(deps.DB))
	return router
}

func newMailer(cfg *config.Config) email.Provider {
	templates := email.NewDefaultTemplates()
	if !cfg.MailEnabled() {
		logger.Warn("SMTP is not configured, applicant emails are kept in memory")
		return email.NewMockProvider(templates)
	}
	return email.NewGomailProvider(email.ConfigFrom(cfg), templates)
}

func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.Broker.URL == "" {
		logger.Warn("Broker URL is not configured, domain events are dropped")
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
	if err != nil {
		logger.Error("Failed to connect to broker, domain events are dropped", "error", err)
		return events.NopPublisher{}
	}
	logger.Info("Broker connected", "exchange", cfg.Broker.Exchange)
	return publisher
}
