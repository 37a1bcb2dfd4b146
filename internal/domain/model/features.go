package model

import "fmt"

type FeatureKind int

const (
	KindNumeric FeatureKind = iota
	KindCategorical
)

// Feature is a single named column of a feature vector. Categorical features
// carry their level in Level and leave Value at zero.
type Feature struct {
	Name  string      `json:"name"`
	Kind  FeatureKind `json:"-"`
	Value float64     `json:"value"`
	Level string      `json:"level,omitempty"`
}

func Numeric(name string, value float64) Feature {
	return Feature{Name: name, Kind: KindNumeric, Value: value}
}

func Categorical(name, level string) Feature {
	return Feature{Name: name, Kind: KindCategorical, Level: level}
}

// FeatureVector is the ordered set of columns presented to an estimator.
type FeatureVector []Feature

func (v FeatureVector) Names() []string {
	names := make([]string, len(v))
	for i, f := range v {
		names[i] = f.Name
	}
	return names
}

// Get returns the feature called name.
func (v FeatureVector) Get(name string) (Feature, bool) {
	for _, f := range v {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// Numbers returns the values of an all-numeric vector in order.
func (v FeatureVector) Numbers() ([]float64, error) {
	values := make([]float64, len(v))
	for i, f := range v {
		if f.Kind != KindNumeric {
			return nil, fmt.Errorf("%w: feature %q is categorical (level %q)", ErrDataFormat, f.Name, f.Level)
		}
		values[i] = f.Value
	}
	return values, nil
}
