package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shortfall_service/internal/domain/model"
)

type PredictionRecorder interface {
	SavePrediction(ctx context.Context, record model.PredictionRecord) error
}

type PostgresPredictionRecorder struct {
	db *sqlx.DB
}

func NewPostgresPredictionRecorder(db *sqlx.DB) *PostgresPredictionRecorder {
	return &PostgresPredictionRecorder{db: db}
}

const createPredictionsTable = `
	CREATE TABLE IF NOT EXISTS predictions (
		id          UUID PRIMARY KEY,
		record_time TIMESTAMP NOT NULL,
		features    JSONB NOT NULL,
		prediction  DOUBLE PRECISION NOT NULL,
		model       TEXT NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// EnsureSchema creates the predictions table if it does not exist.
func (r *PostgresPredictionRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPredictionsTable); err != nil {
		return fmt.Errorf("failed to create predictions table: %w", err)
	}
	return nil
}

type predictionRow struct {
	ID         string  `db:"id"`
	RecordTime string  `db:"record_time"`
	Features   []byte  `db:"features"`
	Prediction float64 `db:"prediction"`
	Model      string  `db:"model"`
}

func (r *PostgresPredictionRecorder) SavePrediction(ctx context.Context, record model.PredictionRecord) error {
	const query = `
		INSERT INTO predictions (id, record_time, features, prediction, model, recorded_at)
		VALUES (:id, :record_time, :features, :prediction, :model, NOW())`

	featuresJSON, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	row := predictionRow{
		ID:         record.ID.String(),
		RecordTime: record.RecordTime,
		Features:   featuresJSON,
		Prediction: record.Value,
		Model:      record.Model,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}
