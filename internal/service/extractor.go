package service

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"
)

type TextExtractor interface {
	Extract(data []byte) (string, error)
}

type pdfExtractor struct {
	logger zerolog.Logger
}

func NewPDFExtractor(logger zerolog.Logger) TextExtractor {
	return &pdfExtractor{logger: logger}
}

// Extract конкатенирует plain-text содержимое всех страниц по порядку.
// Невалидный PDF — ошибка; пустой документ — пустая строка, не ошибка.
func (e *pdfExtractor) Extract(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", page+1, err)
		}
		sb.WriteString(text)
	}

	e.logger.Debug().
		Int("pages", doc.NumPage()).
		Int("chars", sb.Len()).
		Msg("Extracted text from PDF")

	return sb.String(), nil
}
