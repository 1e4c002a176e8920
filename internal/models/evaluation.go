package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories — закрытый набор параметров оценки. Порядок фиксирован:
// письмо и диаграмма обходят ScoreSet именно в этом порядке.
var Categories = []string{"Clarity", "Structure", "Originality", "Grammar", "Relevance"}

// ScoreSet отображает имя параметра в целочисленную оценку.
// Может быть частичным или пустым, если модель не вернула часть параметров.
type ScoreSet map[string]int

type Submission struct {
	TeamName string
	Email    string
	FileName string
	File     []byte
}

// StoredDocument — метаданные загруженного в хранилище документа.
type StoredDocument struct {
	URL          string    `json:"url"`
	Bytes        int64     `json:"bytes"`
	CreatedAt    time.Time `json:"created_at"`
	Format       string    `json:"format"`
	ResourceType string    `json:"resource_type"`
}

// EvaluationRecord — результат одной успешной оценки, сохраняется ровно один раз.
type EvaluationRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	TeamName        string             `bson:"team_name"`
	Email           string             `bson:"email"`
	PdfURL          string             `bson:"pdf_url"`
	Scores          ScoreSet           `bson:"scores"`
	AnalysisSummary string             `bson:"analysis_summary"`
	SubmittedAt     time.Time          `bson:"submitted_at"`
}

type EvaluationResult struct {
	PdfURL   string
	Analysis string
	Scores   ScoreSet
	Storage  *StoredDocument
}
