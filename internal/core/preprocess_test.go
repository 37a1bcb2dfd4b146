package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortfall_service/internal/core"
	"shortfall_service/internal/domain/model"
	"shortfall_service/internal/testutil"
)

func feature(t *testing.T, features model.FeatureVector, name string) model.Feature {
	t.Helper()
	f, ok := features.Get(name)
	require.True(t, ok, "feature %q missing", name)
	return f
}

func TestPreprocess_KeepsValenciaPressure(t *testing.T) {
	features, err := core.Preprocess(testutil.RecordJSON(t, nil))
	require.NoError(t, err)

	assert.Equal(t, 1002.666667, feature(t, features, "Valencia_pressure").Value)
}

func TestPreprocess_FillsNullValenciaPressureFromMadrid(t *testing.T) {
	data := testutil.RecordJSON(t, map[string]any{
		"Valencia_pressure": nil,
		"Madrid_pressure":   971.333333,
	})

	features, err := core.Preprocess(data)
	require.NoError(t, err)

	assert.Equal(t, 971.333333, feature(t, features, "Valencia_pressure").Value)
	assert.Equal(t, 971.333333, feature(t, features, "Madrid_pressure").Value)
}

func TestPreprocess_DecomposesTime(t *testing.T) {
	features, err := core.Preprocess(testutil.RecordJSON(t, map[string]any{"time": "2015-03-14 07:00:00"}))
	require.NoError(t, err)

	assert.Equal(t, 2015.0, feature(t, features, "year").Value)
	assert.Equal(t, 3.0, feature(t, features, "month").Value)
	assert.Equal(t, 14.0, feature(t, features, "day").Value)
	assert.Equal(t, 7.0, feature(t, features, "hour").Value)

	_, ok := features.Get("time")
	assert.False(t, ok, "time column must be dropped")
}

func TestPreprocess_ColumnOrder(t *testing.T) {
	features, err := core.Preprocess(testutil.RecordJSON(t, nil))
	require.NoError(t, err)

	// Schema order with the index and time columns replaced by the date parts.
	want := append([]string{"year", "month", "day", "hour"}, model.SchemaColumns()[2:]...)
	if diff := cmp.Diff(want, features.Names()); diff != "" {
		t.Errorf("column order mismatch (-want +got):\n%s", diff)
	}

	_, ok := features.Get(model.IndexColumn)
	assert.False(t, ok, "index column must be dropped")
	assert.Len(t, features, 50)
}

func TestPreprocess_KeepsCategoricalLevels(t *testing.T) {
	features, err := core.Preprocess(testutil.RecordJSON(t, nil))
	require.NoError(t, err)

	windDeg := feature(t, features, "Valencia_wind_deg")
	assert.Equal(t, model.KindCategorical, windDeg.Kind)
	assert.Equal(t, "level_5", windDeg.Level)
	assert.Equal(t, "sp25", feature(t, features, "Seville_pressure").Level)
}

func TestPreprocess_IgnoresTarget(t *testing.T) {
	features, err := core.Preprocess(testutil.RecordJSON(t, map[string]any{model.TargetColumn: 6715.666667}))
	require.NoError(t, err)

	_, ok := features.Get(model.TargetColumn)
	assert.False(t, ok)
}

func TestPreprocess_DataFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		message string
	}{
		{
			name:    "missing index column",
			data:    testutil.RecordJSON(t, nil, "Unnamed: 0"),
			message: `missing column "Unnamed: 0"`,
		},
		{
			name:    "missing Valencia_pressure",
			data:    testutil.RecordJSON(t, nil, "Valencia_pressure"),
			message: `missing column "Valencia_pressure"`,
		},
		{
			name:    "missing time",
			data:    testutil.RecordJSON(t, nil, "time"),
			message: `missing column "time"`,
		},
		{
			name:    "null non-nullable column",
			data:    testutil.RecordJSON(t, map[string]any{"Madrid_pressure": nil}),
			message: `column "Madrid_pressure" is null`,
		},
		{
			name:    "malformed JSON",
			data:    []byte(`{"time": "2015-01-01 03:00:00",`),
			message: "invalid JSON record",
		},
		{
			name:    "array instead of object",
			data:    []byte(`[{"time": "2015-01-01 03:00:00"}]`),
			message: "invalid JSON record",
		},
		{
			name:    "unparseable time",
			data:    testutil.RecordJSON(t, map[string]any{"time": "14/03/2015 07:00"}),
			message: `invalid time "14/03/2015 07:00"`,
		},
		{
			name:    "wrong type",
			data:    testutil.RecordJSON(t, map[string]any{"Madrid_wind_speed": "fast"}),
			message: "data format error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := core.Preprocess(tt.data)
			require.Error(t, err)
			assert.Nil(t, features)
			assert.True(t, errors.Is(err, model.ErrDataFormat), "want ErrDataFormat, got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestMakePrediction_ReturnsPlainList(t *testing.T) {
	stub := &testutil.StubEstimator{Values: []float64{42.0}}

	got, err := core.MakePrediction(context.Background(), testutil.RecordJSON(t, nil), stub)
	require.NoError(t, err)
	assert.Equal(t, []float64{42.0}, got)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "year", calls[0][0].Name)
}

func TestMakePrediction_KeepsFirstValue(t *testing.T) {
	stub := &testutil.StubEstimator{Values: []float64{1.5, 2.5}}

	got, err := core.MakePrediction(context.Background(), testutil.RecordJSON(t, nil), stub)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, got)
}

func TestMakePrediction_Errors(t *testing.T) {
	t.Run("bad input never reaches the estimator", func(t *testing.T) {
		stub := &testutil.StubEstimator{Values: []float64{42.0}}

		_, err := core.MakePrediction(context.Background(), testutil.RecordJSON(t, nil, "Unnamed: 0"), stub)
		require.ErrorIs(t, err, model.ErrDataFormat)
		assert.Empty(t, stub.Calls())
	})

	t.Run("estimator error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		stub := &testutil.StubEstimator{Err: boom}

		_, err := core.MakePrediction(context.Background(), testutil.RecordJSON(t, nil), stub)
		require.ErrorIs(t, err, boom)
	})

	t.Run("empty prediction", func(t *testing.T) {
		stub := &testutil.StubEstimator{}

		_, err := core.MakePrediction(context.Background(), testutil.RecordJSON(t, nil), stub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no values")
	})
}
