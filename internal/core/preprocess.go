package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"shortfall_service/internal/domain/model"
)

var dateColumns = []string{"year", "month", "day", "hour"}

// Preprocess turns a JSON record into the feature vector the model was trained on.
func Preprocess(data []byte) (model.FeatureVector, error) {
	record, err := DecodeRecord(data)
	if err != nil {
		return nil, err
	}
	return BuildFeatures(record)
}

// DecodeRecord parses one JSON record. Every schema column must be present and
// only nullable columns may be null.
func DecodeRecord(data []byte) (model.Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Record{}, fmt.Errorf("%w: invalid JSON record: %v", model.ErrDataFormat, err)
	}

	for _, column := range model.SchemaColumns() {
		value, ok := raw[column]
		if !ok {
			return model.Record{}, fmt.Errorf("%w: missing column %q", model.ErrDataFormat, column)
		}
		if bytes.Equal(value, []byte("null")) && !model.Nullable(column) {
			return model.Record{}, fmt.Errorf("%w: column %q is null", model.ErrDataFormat, column)
		}
	}

	var record model.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return model.Record{}, fmt.Errorf("%w: %v", model.ErrDataFormat, err)
	}
	return record, nil
}

// BuildFeatures drops the index and time columns, fills a missing
// Valencia_pressure from Madrid_pressure and leads the vector with the date parts.
func BuildFeatures(record model.Record) (model.FeatureVector, error) {
	if record.ValenciaPressure == nil {
		pressure := record.MadridPressure
		record.ValenciaPressure = &pressure
	}

	ts, err := time.Parse(model.TimeLayout, record.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time %q: %v", model.ErrDataFormat, record.Time, err)
	}

	covariates := record.Covariates()
	features := make(model.FeatureVector, 0, len(dateColumns)+len(covariates))
	features = append(features,
		model.Numeric("year", float64(ts.Year())),
		model.Numeric("month", float64(ts.Month())),
		model.Numeric("day", float64(ts.Day())),
		model.Numeric("hour", float64(ts.Hour())),
	)
	for _, f := range covariates {
		if f.Kind == model.KindNumeric && math.IsNaN(f.Value) {
			return nil, fmt.Errorf("%w: column %q has no value", model.ErrDataFormat, f.Name)
		}
		features = append(features, f)
	}
	return features, nil
}
