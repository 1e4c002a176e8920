package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HaxHorizon/AutoHack/internal/models"
)

type EvaluationRepository interface {
	Insert(ctx context.Context, record *models.EvaluationRecord) error
	Ping(ctx context.Context) error
}

type evaluationRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     zerolog.Logger
}

func NewEvaluationRepository(client *mongo.Client, database, collection string, logger zerolog.Logger) EvaluationRepository {
	return &evaluationRepository{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger,
	}
}

func (r *evaluationRepository) Insert(ctx context.Context, record *models.EvaluationRecord) error {
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation record: %w", err)
	}

	r.logger.Info().
		Str("team", record.TeamName).
		Interface("inserted_id", result.InsertedID).
		Msg("Evaluation record saved")

	return nil
}

func (r *evaluationRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
