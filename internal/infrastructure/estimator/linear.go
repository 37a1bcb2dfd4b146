package estimator

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"shortfall_service/internal/domain/model"
)

// LinearArtifact is the persisted form of a fitted linear regression:
// y = intercept + sum(coef[i] * x[features[i]]).
type LinearArtifact struct {
	Intercept float64   `json:"intercept"`
	Features  []string  `json:"features"`
	Coef      []float64 `json:"coef"`
}

// Linear is a fitted linear regression. It is immutable and safe for concurrent use.
type Linear struct {
	intercept float64
	features  []string
	coef      *mat.VecDense
	source    string
}

var _ model.Estimator = (*Linear)(nil)

func NewLinear(artifact LinearArtifact, source string) (*Linear, error) {
	if len(artifact.Features) == 0 {
		return nil, fmt.Errorf("%w: linear model has no features", ErrUnsupportedArtifact)
	}
	if len(artifact.Features) != len(artifact.Coef) {
		return nil, fmt.Errorf("%w: %d features but %d coefficients",
			ErrUnsupportedArtifact, len(artifact.Features), len(artifact.Coef))
	}

	for _, name := range artifact.Features {
		if err := checkIndicator(name); err != nil {
			return nil, err
		}
	}

	coef := make([]float64, len(artifact.Coef))
	copy(coef, artifact.Coef)
	features := make([]string, len(artifact.Features))
	copy(features, artifact.Features)

	return &Linear{
		intercept: artifact.Intercept,
		features:  features,
		coef:      mat.NewVecDense(len(coef), coef),
		source:    source,
	}, nil
}

// Predict evaluates the model on one feature vector. A model feature named
// "<column>_<level>" is the indicator of a categorical column's level.
func (l *Linear) Predict(_ context.Context, features model.FeatureVector) ([]float64, error) {
	x, err := l.design(features)
	if err != nil {
		return nil, err
	}
	return []float64{l.intercept + mat.Dot(l.coef, x)}, nil
}

func (l *Linear) design(features model.FeatureVector) (*mat.VecDense, error) {
	numeric := make(map[string]float64, len(features))
	var categorical []model.Feature
	for _, f := range features {
		switch f.Kind {
		case model.KindCategorical:
			categorical = append(categorical, f)
		default:
			numeric[f.Name] = f.Value
		}
	}

	x := mat.NewVecDense(len(l.features), nil)
	for i, name := range l.features {
		if v, ok := numeric[name]; ok {
			x.SetVec(i, v)
			continue
		}
		v, ok := indicator(categorical, name)
		if !ok {
			return nil, fmt.Errorf("%w: model feature %q not present in input", model.ErrDataFormat, name)
		}
		x.SetVec(i, v)
	}
	return x, nil
}

func indicator(categorical []model.Feature, name string) (float64, bool) {
	for _, f := range categorical {
		level, ok := strings.CutPrefix(name, f.Name+"_")
		if !ok {
			continue
		}
		if level == f.Level {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// checkIndicator rejects "<column>_<level>" features naming a level the
// categorical column never takes.
func checkIndicator(name string) error {
	for _, column := range model.CategoricalColumns {
		level, ok := strings.CutPrefix(name, column+"_")
		if ok && !model.KnownLevel(column, level) {
			return fmt.Errorf("%w: feature %q names unknown level %q of %q", ErrUnsupportedArtifact, name, level, column)
		}
	}
	return nil
}

func (l *Linear) Describe() model.EstimatorInfo {
	return model.EstimatorInfo{
		Kind:     "linear",
		Source:   l.source,
		Features: len(l.features),
	}
}
