package service

import "errors"

// Классы ошибок пайплайна. Обработчик сопоставляет их с HTTP статусами
// через errors.Is; исходная причина остаётся в обёртке для логов.
var (
	ErrValidation         = errors.New("validation failed")
	ErrStorage            = errors.New("storage upload failed")
	ErrExtraction         = errors.New("text extraction failed")
	ErrScoringUnavailable = errors.New("scoring service unavailable")
	ErrNotification       = errors.New("notification failed")
)
