package model

import "context"

// Estimator is a fitted regression model. Implementations must be safe for
// concurrent read-only use once constructed.
type Estimator interface {
	Predict(ctx context.Context, features FeatureVector) ([]float64, error)
}

// EstimatorInfo describes a loaded estimator
type EstimatorInfo struct {
	Kind     string `json:"kind"`
	Source   string `json:"source"`
	Features int    `json:"features"`
}

// Describer is implemented by estimators that can report what they are.
type Describer interface {
	Describe() EstimatorInfo
}
