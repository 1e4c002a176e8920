package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaxHorizon/AutoHack/internal/models"
)

type fakeBlobRepo struct {
	calls   int
	lastKey string
	err     error
}

func (f *fakeBlobRepo) Upload(_ context.Context, key string, _ io.Reader, size int64) (*models.StoredDocument, error) {
	f.calls++
	f.lastKey = key
	if f.err != nil {
		return nil, f.err
	}
	return &models.StoredDocument{
		URL:          "http://minio:9000/buildathon/" + key,
		Bytes:        size,
		Format:       "pdf",
		ResourceType: "raw",
	}, nil
}

type fakeExtractor struct {
	calls int
	text  string
	err   error
}

func (f *fakeExtractor) Extract([]byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeScorer struct {
	calls int
	reply string
	err   error
}

func (f *fakeScorer) Score(context.Context, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeRenderer struct{}

func (fakeRenderer) Render(models.ScoreSet) ([]byte, error) {
	return []byte("png-bytes"), nil
}

type fakeNotifier struct {
	calls int
	last  Notification
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) error {
	f.calls++
	f.last = n
	if f.err != nil {
		return f.err
	}
	return nil
}

type pipelineFixture struct {
	blobs     *fakeBlobRepo
	extractor *fakeExtractor
	scorer    *fakeScorer
	notifier  *fakeNotifier
	pipeline  Pipeline
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		blobs:     &fakeBlobRepo{},
		extractor: &fakeExtractor{text: "extracted text"},
		scorer:    &fakeScorer{reply: "Clarity: 8\nStructure: 7"},
		notifier:  &fakeNotifier{},
	}
	f.pipeline = NewPipeline(f.blobs, f.extractor, f.scorer, fakeRenderer{}, f.notifier, "buildathon_ppt", zerolog.Nop())
	return f
}

func validSubmission() *models.Submission {
	return &models.Submission{
		TeamName: "Team Alpha",
		Email:    "a@b.com",
		FileName: "pitch.pdf",
		File:     []byte("%PDF-1.4 fake"),
	}
}

func TestPipelineSuccess(t *testing.T) {
	f := newPipelineFixture()

	result, err := f.pipeline.Process(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, "buildathon_ppt/Team_Alpha.pdf", f.blobs.lastKey)
	assert.Equal(t, models.ScoreSet{"Clarity": 8, "Structure": 7}, result.Scores)
	assert.Equal(t, "Clarity: 8\nStructure: 7", result.Analysis)
	assert.Equal(t, "http://minio:9000/buildathon/buildathon_ppt/Team_Alpha.pdf", result.PdfURL)
	require.NotNil(t, result.Storage)
	assert.Equal(t, "raw", result.Storage.ResourceType)

	require.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, "a@b.com", f.notifier.last.To)
	assert.Equal(t, result.Scores, f.notifier.last.Scores)
	assert.Equal(t, []byte("png-bytes"), f.notifier.last.Chart)
}

func TestPipelineRejectsNonPDFBeforeAnyCall(t *testing.T) {
	f := newPipelineFixture()

	sub := validSubmission()
	sub.FileName = "notes.txt"

	_, err := f.pipeline.Process(context.Background(), sub)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, f.blobs.calls)
	assert.Zero(t, f.scorer.calls)
	assert.Zero(t, f.notifier.calls)
}

func TestPipelineRejectsMissingFields(t *testing.T) {
	f := newPipelineFixture()

	for _, sub := range []*models.Submission{
		{Email: "a@b.com", FileName: "x.pdf", File: []byte("x")},
		{TeamName: "Team", FileName: "x.pdf", File: []byte("x")},
		{TeamName: "Team", Email: "a@b.com", FileName: "x.pdf"},
	} {
		_, err := f.pipeline.Process(context.Background(), sub)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Zero(t, f.blobs.calls)
}

func TestPipelineAcceptsUppercaseExtension(t *testing.T) {
	f := newPipelineFixture()

	sub := validSubmission()
	sub.FileName = "PITCH.PDF"

	_, err := f.pipeline.Process(context.Background(), sub)
	assert.NoError(t, err)
}

func TestPipelineStorageFailure(t *testing.T) {
	f := newPipelineFixture()
	f.blobs.err = errors.New("bucket unavailable")

	_, err := f.pipeline.Process(context.Background(), validSubmission())

	assert.ErrorIs(t, err, ErrStorage)
	assert.Zero(t, f.extractor.calls)
}

func TestPipelineExtractionFailure(t *testing.T) {
	f := newPipelineFixture()
	f.extractor.err = errors.New("not a PDF")

	_, err := f.pipeline.Process(context.Background(), validSubmission())

	assert.ErrorIs(t, err, ErrExtraction)
	assert.Zero(t, f.scorer.calls)
}

func TestPipelineScoringFailure(t *testing.T) {
	f := newPipelineFixture()
	f.scorer.err = errors.New("connection reset")

	_, err := f.pipeline.Process(context.Background(), validSubmission())

	assert.ErrorIs(t, err, ErrScoringUnavailable)
	assert.Zero(t, f.notifier.calls)
}

func TestPipelineEmptyScoresStillNotifies(t *testing.T) {
	f := newPipelineFixture()
	f.scorer.reply = "The model declined to assign numeric scores."

	result, err := f.pipeline.Process(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Empty(t, result.Scores)
	assert.Equal(t, 1, f.notifier.calls)
}

func TestPipelineNotificationFailurePropagates(t *testing.T) {
	f := newPipelineFixture()
	f.notifier.err = ErrNotification

	_, err := f.pipeline.Process(context.Background(), validSubmission())

	assert.ErrorIs(t, err, ErrNotification)
}
