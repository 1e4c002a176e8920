package httpd

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/HaxHorizon/AutoHack/internal/repository"
	"github.com/HaxHorizon/AutoHack/internal/service"
)

type Handler struct {
	pipeline      service.Pipeline
	evaluations   repository.EvaluationRepository
	maxUploadSize int64
	logger        zerolog.Logger
}

func NewHandler(pipeline service.Pipeline, evaluations repository.EvaluationRepository, maxUploadSize int64, logger zerolog.Logger) *Handler {
	return &Handler{
		pipeline:      pipeline,
		evaluations:   evaluations,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	// Health check
	router.Get("/health", h.HealthCheck)
	router.Get("/ready", h.ReadyCheck)

	router.Post("/api/submit-pdf", h.SubmitPDF)
}
