package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureVector_Numbers(t *testing.T) {
	v := FeatureVector{Numeric("a", 1), Numeric("b", 2.5)}

	values, err := v.Numbers()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, values)
	assert.Equal(t, []string{"a", "b"}, v.Names())

	v = append(v, Categorical("c", "level_3"))
	_, err = v.Numbers()
	assert.True(t, errors.Is(err, ErrDataFormat))
	assert.Contains(t, err.Error(), `"c"`)
}

func TestRecord_Covariates(t *testing.T) {
	var r Record
	fv := r.Covariates()

	names := fv.Names()
	assert.Equal(t, SchemaColumns()[2:], names)

	pressure, ok := fv.Get("Valencia_pressure")
	require.True(t, ok)
	assert.True(t, math.IsNaN(pressure.Value), "nil Valencia_pressure must surface as NaN")

	windDeg, ok := fv.Get("Valencia_wind_deg")
	require.True(t, ok)
	assert.Equal(t, KindCategorical, windDeg.Kind)
}

func TestNullable(t *testing.T) {
	assert.True(t, Nullable("Valencia_pressure"))
	assert.False(t, Nullable("Madrid_pressure"))
	assert.False(t, Nullable(TimeColumn))
}

func TestLevels(t *testing.T) {
	wind := Levels("Valencia_wind_deg")
	require.Len(t, wind, 10)
	assert.Equal(t, "level_1", wind[0])
	assert.Equal(t, "level_10", wind[1])
	assert.Len(t, Levels("Seville_pressure"), 25)
	assert.Nil(t, Levels("Madrid_pressure"))

	assert.True(t, KnownLevel("Seville_pressure", "sp13"))
	assert.False(t, KnownLevel("Seville_pressure", "sp26"))
	assert.True(t, IsCategorical("Valencia_wind_deg"))
	assert.False(t, IsCategorical(TimeColumn))
}
