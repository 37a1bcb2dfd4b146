package core

import (
	"fmt"

	"shortfall_service/internal/domain/model"
)

type Encoding string

const (
	// EncodingRaw presents the preprocessed vector to the estimator unchanged.
	EncodingRaw Encoding = "raw"
	// EncodingDummies adds season flags and one-hot encodes the categorical columns.
	EncodingDummies Encoding = "encoded"
)

func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case "", EncodingRaw:
		return EncodingRaw, nil
	case EncodingDummies:
		return EncodingDummies, nil
	default:
		return "", fmt.Errorf("unknown feature encoding %q", s)
	}
}

var seasons = []string{"winter", "spring", "summer", "autumn"}

// Season maps a month to its index in winter, spring, summer, autumn.
func Season(month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d out of range", model.ErrDataFormat, month)
	}
	return (month - 1) / 3, nil
}

// Encode appends season indicators derived from month, replaces each
// categorical column with dummy columns (first level dropped) and keeps the
// remaining columns in place.
func Encode(features model.FeatureVector) (model.FeatureVector, error) {
	month, ok := features.Get("month")
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", model.ErrDataFormat, "month")
	}
	season, err := Season(int(month.Value))
	if err != nil {
		return nil, err
	}

	encoded := make(model.FeatureVector, 0, len(features)+len(seasons))
	for _, f := range features {
		if f.Kind == model.KindCategorical {
			continue
		}
		encoded = append(encoded, f)
	}

	for i, name := range seasons {
		var flag float64
		if i == season {
			flag = 1
		}
		encoded = append(encoded, model.Numeric(name, flag))
	}

	// Dummies follow get_dummies: lexicographic levels, first one dropped.
	for _, column := range model.CategoricalColumns {
		f, ok := features.Get(column)
		if !ok || f.Kind != model.KindCategorical {
			return nil, fmt.Errorf("%w: missing categorical column %q", model.ErrDataFormat, column)
		}
		if !model.KnownLevel(column, f.Level) {
			return nil, fmt.Errorf("%w: unknown level %q for %q", model.ErrDataFormat, f.Level, column)
		}
		for _, level := range model.Levels(column)[1:] {
			var flag float64
			if level == f.Level {
				flag = 1
			}
			encoded = append(encoded, model.Numeric(column+"_"+level, flag))
		}
	}

	return encoded, nil
}
