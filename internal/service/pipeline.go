package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/HaxHorizon/AutoHack/internal/models"
	"github.com/HaxHorizon/AutoHack/internal/repository"
)

type Pipeline interface {
	Process(ctx context.Context, submission *models.Submission) (*models.EvaluationResult, error)
}

type pipeline struct {
	blobs     repository.BlobRepository
	extractor TextExtractor
	scorer    Scorer
	renderer  ChartRenderer
	notifier  Notifier
	folder    string
	logger    zerolog.Logger
}

func NewPipeline(
	blobs repository.BlobRepository,
	extractor TextExtractor,
	scorer Scorer,
	renderer ChartRenderer,
	notifier Notifier,
	folder string,
	logger zerolog.Logger,
) Pipeline {
	return &pipeline{
		blobs:     blobs,
		extractor: extractor,
		scorer:    scorer,
		renderer:  renderer,
		notifier:  notifier,
		folder:    folder,
		logger:    logger,
	}
}

// Process прогоняет заявку через весь конвейер: валидация, загрузка в
// хранилище, извлечение текста, оценка с ретраями, разбор оценок,
// диаграмма, письмо и сохранение записи. Каждый шаг жёстко зависит от
// предыдущего; валидация выполняется до любых внешних вызовов.
func (p *pipeline) Process(ctx context.Context, submission *models.Submission) (*models.EvaluationResult, error) {
	if err := validate(submission); err != nil {
		return nil, err
	}

	log := p.logger.With().
		Str("evaluation_id", uuid.New().String()).
		Str("team", submission.TeamName).
		Logger()

	// Ключ в хранилище детерминированный: имя команды с подчёркиваниями
	key := fmt.Sprintf("%s/%s.pdf", p.folder, strings.ReplaceAll(submission.TeamName, " ", "_"))

	stored, err := p.blobs.Upload(ctx, key, bytes.NewReader(submission.File), int64(len(submission.File)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.Info().Str("url", stored.URL).Msg("Document uploaded to storage")

	// Текст извлекается из исходных байтов заявки, не из сохранённой копии
	text, err := p.extractor.Extract(submission.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	reply, err := p.scorer.Score(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
	}
	log.Info().Int("reply_chars", len(reply)).Msg("Received analysis from scoring API")

	// Частичный или пустой набор оценок — валидный результат
	scores := ParseScores(reply)
	log.Info().Int("parsed", len(scores)).Msg("Parsed category scores")

	chartImage, err := p.renderer.Render(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to render score chart: %w", err)
	}

	if err := p.notifier.Notify(ctx, Notification{
		To:       submission.Email,
		TeamName: submission.TeamName,
		Scores:   scores,
		Chart:    chartImage,
		PdfURL:   stored.URL,
		Analysis: reply,
	}); err != nil {
		return nil, err
	}

	return &models.EvaluationResult{
		PdfURL:   stored.URL,
		Analysis: reply,
		Scores:   scores,
		Storage:  stored,
	}, nil
}

func validate(submission *models.Submission) error {
	if submission.TeamName == "" || submission.Email == "" || len(submission.File) == 0 {
		return fmt.Errorf("%w: missing team name, email, or PDF file", ErrValidation)
	}
	if !strings.HasSuffix(strings.ToLower(submission.FileName), ".pdf") {
		return fmt.Errorf("%w: only PDF files are allowed", ErrValidation)
	}
	return nil
}
