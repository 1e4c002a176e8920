package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaxHorizon/AutoHack/internal/config"
)

// noAnalysisPlaceholder возвращается, когда ответ API не содержит текста анализа.
const noAnalysisPlaceholder = "No analysis result found"

const systemPrompt = "You are an AI assistant that evaluates documents. " +
	"Score the following parameters (0-10): Clarity, Structure, Originality, Grammar, and Relevance. " +
	"Also provide a short suggestion per category."

type Scorer interface {
	Score(ctx context.Context, text string) (string, error)
}

type openRouterScorer struct {
	apiURL         string
	apiKey         string
	model          string
	temperature    float64
	maxTokens      int
	retryCount     int
	retryDelay     time.Duration
	maxPromptChars int
	client         *http.Client
	logger         zerolog.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenRouterScorer(cfg config.OpenRouterConfig, logger zerolog.Logger) Scorer {
	if cfg.RetryCount < 1 {
		cfg.RetryCount = 1
	}
	return &openRouterScorer{
		apiURL:         cfg.APIURL,
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		temperature:    cfg.Temperature,
		maxTokens:      cfg.MaxTokens,
		retryCount:     cfg.RetryCount,
		retryDelay:     cfg.RetryDelay,
		maxPromptChars: cfg.MaxPromptChars,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// Score отправляет извлечённый текст на оценку. Ретраятся только транспортные
// сбои (reset, refused, обрыв тела ответа); ответ с не-2xx статусом — жёсткая
// ошибка без повторов. Линейный backoff: delay * номер неудачной попытки.
func (s *openRouterScorer) Score(ctx context.Context, text string) (string, error) {
	if len(text) > s.maxPromptChars {
		text = text[:s.maxPromptChars]
	}

	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Analyze this document and provide scores and suggestions:\n\n" + text},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.retryCount; attempt++ {
		reply, transient, err := s.doRequest(ctx, body)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if !transient || attempt == s.retryCount {
			return "", lastErr
		}

		wait := s.retryDelay * time.Duration(attempt)
		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Scoring request failed, retrying")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

func (s *openRouterScorer) doRequest(ctx context.Context, body []byte) (reply string, transient bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		// Сбой транспортного уровня — кандидат на повтор
		return "", true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		// Оборванное тело ответа тоже считаем транзиентным
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false, fmt.Errorf("scoring API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return noAnalysisPlaceholder, false, nil
	}

	return parsed.Choices[0].Message.Content, false, nil
}
