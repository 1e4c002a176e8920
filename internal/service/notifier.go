package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaxHorizon/AutoHack/internal/models"
	"github.com/HaxHorizon/AutoHack/internal/repository"
)

const attachmentName = "evaluation_chart.png"

// Notification — всё, что нужно для письма и итоговой записи.
type Notification struct {
	To       string
	TeamName string
	Scores   models.ScoreSet
	Chart    []byte
	PdfURL   string
	Analysis string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type emailNotifier struct {
	sender      MailSender
	evaluations repository.EvaluationRepository
	logger      zerolog.Logger
}

func NewEmailNotifier(sender MailSender, evaluations repository.EvaluationRepository, logger zerolog.Logger) Notifier {
	return &emailNotifier{
		sender:      sender,
		evaluations: evaluations,
		logger:      logger,
	}
}

// Notify отправляет письмо с отчётом и затем сохраняет EvaluationRecord.
// Запись создаётся только после подтверждённой отправки. Письмо отозвать
// нельзя, поэтому сбой сохранения после отправки — внутренняя ошибка,
// а не ErrNotification.
func (n *emailNotifier) Notify(ctx context.Context, notification Notification) error {
	email := Email{
		To:             notification.To,
		Subject:        fmt.Sprintf("Presentation Evaluation Report – Team %s", notification.TeamName),
		Body:           composeBody(notification.TeamName, notification.Scores),
		Attachment:     notification.Chart,
		AttachmentName: attachmentName,
	}

	if err := n.sender.Send(email); err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}

	n.logger.Info().
		Str("to", notification.To).
		Str("team", notification.TeamName).
		Msg("Evaluation email sent")

	record := &models.EvaluationRecord{
		TeamName:        notification.TeamName,
		Email:           notification.To,
		PdfURL:          notification.PdfURL,
		Scores:          notification.Scores,
		AnalysisSummary: notification.Analysis,
		SubmittedAt:     time.Now().UTC(),
	}

	if err := n.evaluations.Insert(ctx, record); err != nil {
		// Письмо уже доставлено; фиксируем рассинхрон в логах
		n.logger.Error().Err(err).
			Str("team", notification.TeamName).
			Msg("Email delivered but record persistence failed")
		return fmt.Errorf("failed to persist evaluation record: %w", err)
	}

	return nil
}

func composeBody(teamName string, scores models.ScoreSet) string {
	var lines []string
	for _, category := range models.Categories {
		if score, ok := scores[category]; ok {
			lines = append(lines, fmt.Sprintf("- %s: %d/10", category, score))
		}
	}

	return fmt.Sprintf(`Dear %s,

Thank you for submitting your presentation for evaluation. Based on our automated analysis, here are your scores across various parameters:

%s

Attached to this email, you will find a visual chart summarizing these scores.

If you have any questions or would like further feedback, feel free to reach out.

Best regards,
Team HaxHorizon
`, teamName, strings.Join(lines, "\n"))
}
