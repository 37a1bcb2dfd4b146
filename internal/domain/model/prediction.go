package model

import "github.com/google/uuid"

// PredictionRecord is a served prediction as persisted by a recorder.
type PredictionRecord struct {
	ID         uuid.UUID
	RecordTime string
	Features   FeatureVector
	Value      float64
	Model      string
}
