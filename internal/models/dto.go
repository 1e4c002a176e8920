package models

import "time"

// Data Transfer Objects

type SubmitResponse struct {
	PdfURL        string          `json:"pdf_url"`
	Analysis      string          `json:"analysis"`
	Scores        ScoreSet        `json:"scores"`
	StorageDetail WireStorageInfo `json:"cloudinary_info"`
}

// WireStorageInfo сохраняет историческое имя поля "cloudinary_info"
// ради совместимости с существующими клиентами.
type WireStorageInfo struct {
	Bytes        int64     `json:"bytes"`
	CreatedAt    time.Time `json:"created_at"`
	Format       string    `json:"format"`
	ResourceType string    `json:"resource_type"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
