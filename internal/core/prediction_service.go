package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shortfall_service/internal/domain/model"
	"shortfall_service/internal/domain/repository"
	"shortfall_service/internal/observability"
)

// MakePrediction preprocesses one JSON record and returns the estimator's
// first prediction as a one-element list.
func MakePrediction(ctx context.Context, data []byte, estimator model.Estimator) ([]float64, error) {
	features, err := Preprocess(data)
	if err != nil {
		return nil, err
	}
	return predict(ctx, estimator, features)
}

func predict(ctx context.Context, estimator model.Estimator, features model.FeatureVector) ([]float64, error) {
	values, err := estimator.Predict(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	if len(values) == 0 {
		return nil, errors.New("prediction failed: estimator returned no values")
	}
	return []float64{values[0]}, nil
}

// Prediction is the outcome of one served request.
type Prediction struct {
	ID       uuid.UUID
	Time     string
	Features model.FeatureVector
	Values   []float64
}

type PredictionService struct {
	estimator model.Estimator
	encoding  Encoding
	recorder  repository.PredictionRecorder
	saveData  bool
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewPredictionService(
	estimator model.Estimator,
	encoding Encoding,
	recorder repository.PredictionRecorder,
	saveData bool,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *PredictionService {
	return &PredictionService{
		estimator: estimator,
		encoding:  encoding,
		recorder:  recorder,
		saveData:  saveData && recorder != nil,
		metrics:   metrics,
		logger:    logger,
	}
}

// Predict serves one JSON record. Recording failures are logged and do not
// fail the prediction.
func (s *PredictionService) Predict(ctx context.Context, data []byte) (*Prediction, error) {
	start := time.Now()

	prediction, err := s.predict(ctx, data)
	s.metrics.ObservePrediction(outcome(err), time.Since(start))
	if err != nil {
		s.logger.Warn("prediction failed", "error", err)
		return nil, err
	}

	s.logger.Debug("prediction served",
		"id", prediction.ID,
		"time", prediction.Time,
		"value", prediction.Values[0],
		"elapsed", time.Since(start),
	)

	if s.saveData {
		record := model.PredictionRecord{
			ID:         prediction.ID,
			RecordTime: prediction.Time,
			Features:   prediction.Features,
			Value:      prediction.Values[0],
			Model:      s.Describe().Kind,
		}
		if err := s.recorder.SavePrediction(ctx, record); err != nil {
			s.logger.Warn("failed to record prediction", "id", prediction.ID, "error", err)
		}
	}

	return prediction, nil
}

func (s *PredictionService) predict(ctx context.Context, data []byte) (*Prediction, error) {
	record, err := DecodeRecord(data)
	if err != nil {
		return nil, err
	}

	features, err := BuildFeatures(record)
	if err != nil {
		return nil, err
	}

	if s.encoding == EncodingDummies {
		features, err = Encode(features)
		if err != nil {
			return nil, err
		}
	}

	values, err := predict(ctx, s.estimator, features)
	if err != nil {
		return nil, err
	}

	return &Prediction{
		ID:       uuid.New(),
		Time:     record.Time,
		Features: features,
		Values:   values,
	}, nil
}

// Describe reports the estimator behind the service.
func (s *PredictionService) Describe() model.EstimatorInfo {
	if d, ok := s.estimator.(model.Describer); ok {
		return d.Describe()
	}
	return model.EstimatorInfo{Kind: fmt.Sprintf("%T", s.estimator)}
}

func (s *PredictionService) Encoding() Encoding {
	return s.encoding
}

func outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, model.ErrDataFormat):
		return observability.OutcomeInvalidInput
	default:
		return observability.OutcomeError
	}
}
