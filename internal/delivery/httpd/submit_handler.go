package httpd

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/HaxHorizon/AutoHack/internal/models"
	"github.com/HaxHorizon/AutoHack/internal/service"
)

func (h *Handler) SubmitPDF(w http.ResponseWriter, r *http.Request) {
	// Лимит на размер тела действует до запуска пайплайна
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	submission := &models.Submission{
		TeamName: r.FormValue("teamName"),
		Email:    r.FormValue("email"),
	}

	file, fileHeader, err := r.FormFile("pdf")
	if err == nil {
		defer file.Close()
		submission.FileName = fileHeader.Filename
		submission.File, err = io.ReadAll(file)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read uploaded file")
			writeError(w, http.StatusInternalServerError, "Failed to read file")
			return
		}
	}

	// Обрыв клиентского соединения не прерывает конвейер: внешние вызовы
	// (загрузка, оценка, письмо, запись) идут до завершения или ошибки
	ctx := context.WithoutCancel(r.Context())

	result, err := h.pipeline.Process(ctx, submission)
	if err != nil {
		h.handlePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SubmitResponse{
		PdfURL:   result.PdfURL,
		Analysis: result.Analysis,
		Scores:   result.Scores,
		StorageDetail: models.WireStorageInfo{
			Bytes:        result.Storage.Bytes,
			CreatedAt:    result.Storage.CreatedAt,
			Format:       result.Storage.Format,
			ResourceType: result.Storage.ResourceType,
		},
	})
}

func (h *Handler) handlePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrScoringUnavailable):
		h.logger.Error().Err(err).Msg("Scoring API failure")
		writeError(w, http.StatusBadGateway, "Failed to get response from scoring API")
	case errors.Is(err, service.ErrStorage):
		h.logger.Error().Err(err).Msg("Storage upload failure")
		writeError(w, http.StatusInternalServerError, "Failed to store document")
	case errors.Is(err, service.ErrExtraction):
		h.logger.Error().Err(err).Msg("Text extraction failure")
		writeError(w, http.StatusInternalServerError, "Failed to extract document text")
	case errors.Is(err, service.ErrNotification):
		h.logger.Error().Err(err).Msg("Email delivery failure")
		writeError(w, http.StatusInternalServerError, "Failed to send evaluation email")
	default:
		h.logger.Error().Err(err).Msg("Submission pipeline failure")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
