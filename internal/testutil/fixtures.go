// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"shortfall_service/internal/domain/model"
)

// Record returns a complete, valid record as decoded JSON. Each call returns a fresh map.
func Record() map[string]any {
	return map[string]any{
		"Unnamed: 0":           0,
		"time":                 "2015-01-01 03:00:00",
		"Madrid_wind_speed":    0.666667,
		"Valencia_wind_deg":    "level_5",
		"Bilbao_rain_1h":       0.0,
		"Valencia_wind_speed":  0.666667,
		"Seville_humidity":     74.333333,
		"Madrid_humidity":      64.0,
		"Bilbao_clouds_all":    0.0,
		"Bilbao_wind_speed":    1.0,
		"Seville_clouds_all":   0.0,
		"Bilbao_wind_deg":      223.333333,
		"Barcelona_wind_speed": 6.333333,
		"Barcelona_wind_deg":   42.666667,
		"Madrid_clouds_all":    0.0,
		"Seville_wind_speed":   3.333333,
		"Barcelona_rain_1h":    0.0,
		"Seville_pressure":     "sp25",
		"Seville_rain_1h":      0.0,
		"Bilbao_snow_3h":       0.0,
		"Barcelona_pressure":   1036.333333,
		"Seville_rain_3h":      0.0,
		"Madrid_rain_1h":       0.0,
		"Barcelona_rain_3h":    0.0,
		"Valencia_snow_3h":     0.0,
		"Madrid_weather_id":    800.0,
		"Barcelona_weather_id": 800.0,
		"Bilbao_pressure":      1035.0,
		"Seville_weather_id":   800.0,
		"Valencia_pressure":    1002.666667,
		"Seville_temp_max":     274.254667,
		"Madrid_pressure":      971.333333,
		"Valencia_temp_max":    269.888,
		"Valencia_temp":        269.888,
		"Bilbao_weather_id":    800.0,
		"Seville_temp":         274.254667,
		"Valencia_humidity":    75.666667,
		"Valencia_temp_min":    269.888,
		"Barcelona_temp_max":   281.013,
		"Madrid_temp_max":      265.938,
		"Barcelona_temp":       281.013,
		"Bilbao_temp_min":      269.338615,
		"Bilbao_temp":          269.338615,
		"Barcelona_temp_min":   281.013,
		"Bilbao_temp_max":      269.338615,
		"Seville_temp_min":     274.254667,
		"Madrid_temp":          265.938,
		"Madrid_temp_min":      265.938,
	}
}

// RecordJSON encodes Record with overrides applied and the drop columns removed.
func RecordJSON(t testing.TB, overrides map[string]any, drop ...string) []byte {
	t.Helper()

	record := Record()
	for k, v := range overrides {
		record[k] = v
	}
	for _, k := range drop {
		delete(record, k)
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	return data
}

// StubEstimator returns fixed values and remembers the vectors it was given.
type StubEstimator struct {
	Values []float64
	Err    error

	mu    sync.Mutex
	calls []model.FeatureVector
}

var _ model.Estimator = (*StubEstimator)(nil)

func (s *StubEstimator) Predict(_ context.Context, features model.FeatureVector) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, features)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Values, nil
}

// Calls returns the feature vectors passed to Predict so far.
func (s *StubEstimator) Calls() []model.FeatureVector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FeatureVector(nil), s.calls...)
}
