package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HaxHorizon/AutoHack/internal/config"
	"github.com/HaxHorizon/AutoHack/internal/delivery/httpd"
	"github.com/HaxHorizon/AutoHack/internal/middleware"
	"github.com/HaxHorizon/AutoHack/internal/repository"
	"github.com/HaxHorizon/AutoHack/internal/service"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	mongo  *mongo.Client
}

func New(cfg *config.Config, log zerolog.Logger, mongoClient *mongo.Client) (*App, error) {
	// Репозиторий объектного хранилища
	blobRepo, err := repository.NewMinIORepository(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.BucketName,
		cfg.Storage.Region,
		cfg.Storage.PublicBaseURL,
		cfg.Storage.UseSSL,
		cfg.Storage.Timeout,
		log,
	)
	if err != nil {
		return nil, err
	}

	// Репозиторий записей об оценках
	evaluationRepo := repository.NewEvaluationRepository(
		mongoClient,
		cfg.Mongo.Database,
		cfg.Mongo.Collection,
		log,
	)

	// Сервисы конвейера
	extractor := service.NewPDFExtractor(log)
	scorer := service.NewOpenRouterScorer(cfg.OpenRouter, log)
	renderer := service.NewPieChartRenderer(log)
	mailSender := service.NewSMTPSender(cfg.SMTP)
	notifier := service.NewEmailNotifier(mailSender, evaluationRepo, log)

	pipeline := service.NewPipeline(
		blobRepo,
		extractor,
		scorer,
		renderer,
		notifier,
		cfg.Storage.Folder,
		log,
	)

	handler := httpd.NewHandler(pipeline, evaluationRepo, cfg.Server.MaxUploadSize, log)

	// Роутер и middleware
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(log))
	router.Use(chimiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		mongo:  mongoClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting evaluation service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down evaluation service...")

	if a.mongo != nil {
		disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.mongo.Disconnect(disconnectCtx); err != nil {
			a.logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}

	return a.server.Shutdown(ctx)
}
