package model

import "math"

const (
	IndexColumn  = "Unnamed: 0"
	TimeColumn   = "time"
	TargetColumn = "load_shortfall_3h"

	// TimeLayout is the format of the time column.
	TimeLayout = "2006-01-02 15:04:05"
)

// Record is one row of the weather covariates the load-shortfall model was trained on.
type Record struct {
	Index *float64 `json:"Unnamed: 0"`
	Time  string   `json:"time"`

	MadridWindSpeed    float64  `json:"Madrid_wind_speed"`
	ValenciaWindDeg    string   `json:"Valencia_wind_deg"`
	BilbaoRain1h       float64  `json:"Bilbao_rain_1h"`
	ValenciaWindSpeed  float64  `json:"Valencia_wind_speed"`
	SevilleHumidity    float64  `json:"Seville_humidity"`
	MadridHumidity     float64  `json:"Madrid_humidity"`
	BilbaoCloudsAll    float64  `json:"Bilbao_clouds_all"`
	BilbaoWindSpeed    float64  `json:"Bilbao_wind_speed"`
	SevilleCloudsAll   float64  `json:"Seville_clouds_all"`
	BilbaoWindDeg      float64  `json:"Bilbao_wind_deg"`
	BarcelonaWindSpeed float64  `json:"Barcelona_wind_speed"`
	BarcelonaWindDeg   float64  `json:"Barcelona_wind_deg"`
	MadridCloudsAll    float64  `json:"Madrid_clouds_all"`
	SevilleWindSpeed   float64  `json:"Seville_wind_speed"`
	BarcelonaRain1h    float64  `json:"Barcelona_rain_1h"`
	SevillePressure    string   `json:"Seville_pressure"`
	SevilleRain1h      float64  `json:"Seville_rain_1h"`
	BilbaoSnow3h       float64  `json:"Bilbao_snow_3h"`
	BarcelonaPressure  float64  `json:"Barcelona_pressure"`
	SevilleRain3h      float64  `json:"Seville_rain_3h"`
	MadridRain1h       float64  `json:"Madrid_rain_1h"`
	BarcelonaRain3h    float64  `json:"Barcelona_rain_3h"`
	ValenciaSnow3h     float64  `json:"Valencia_snow_3h"`
	MadridWeatherID    float64  `json:"Madrid_weather_id"`
	BarcelonaWeatherID float64  `json:"Barcelona_weather_id"`
	BilbaoPressure     float64  `json:"Bilbao_pressure"`
	SevilleWeatherID   float64  `json:"Seville_weather_id"`
	ValenciaPressure   *float64 `json:"Valencia_pressure"`
	SevilleTempMax     float64  `json:"Seville_temp_max"`
	MadridPressure     float64  `json:"Madrid_pressure"`
	ValenciaTempMax    float64  `json:"Valencia_temp_max"`
	ValenciaTemp       float64  `json:"Valencia_temp"`
	BilbaoWeatherID    float64  `json:"Bilbao_weather_id"`
	SevilleTemp        float64  `json:"Seville_temp"`
	ValenciaHumidity   float64  `json:"Valencia_humidity"`
	ValenciaTempMin    float64  `json:"Valencia_temp_min"`
	BarcelonaTempMax   float64  `json:"Barcelona_temp_max"`
	MadridTempMax      float64  `json:"Madrid_temp_max"`
	BarcelonaTemp      float64  `json:"Barcelona_temp"`
	BilbaoTempMin      float64  `json:"Bilbao_temp_min"`
	BilbaoTemp         float64  `json:"Bilbao_temp"`
	BarcelonaTempMin   float64  `json:"Barcelona_temp_min"`
	BilbaoTempMax      float64  `json:"Bilbao_temp_max"`
	SevilleTempMin     float64  `json:"Seville_temp_min"`
	MadridTemp         float64  `json:"Madrid_temp"`
	MadridTempMin      float64  `json:"Madrid_temp_min"`

	// LoadShortfall3h is the training target. Accepted on input, never a feature.
	LoadShortfall3h *float64 `json:"load_shortfall_3h,omitempty"`
}

// Covariates returns the weather columns of the record in training-schema order.
// A null Valencia_pressure is reported as NaN.
func (r Record) Covariates() FeatureVector {
	valenciaPressure := math.NaN()
	if r.ValenciaPressure != nil {
		valenciaPressure = *r.ValenciaPressure
	}

	return FeatureVector{
		Numeric("Madrid_wind_speed", r.MadridWindSpeed),
		Categorical("Valencia_wind_deg", r.ValenciaWindDeg),
		Numeric("Bilbao_rain_1h", r.BilbaoRain1h),
		Numeric("Valencia_wind_speed", r.ValenciaWindSpeed),
		Numeric("Seville_humidity", r.SevilleHumidity),
		Numeric("Madrid_humidity", r.MadridHumidity),
		Numeric("Bilbao_clouds_all", r.BilbaoCloudsAll),
		Numeric("Bilbao_wind_speed", r.BilbaoWindSpeed),
		Numeric("Seville_clouds_all", r.SevilleCloudsAll),
		Numeric("Bilbao_wind_deg", r.BilbaoWindDeg),
		Numeric("Barcelona_wind_speed", r.BarcelonaWindSpeed),
		Numeric("Barcelona_wind_deg", r.BarcelonaWindDeg),
		Numeric("Madrid_clouds_all", r.MadridCloudsAll),
		Numeric("Seville_wind_speed", r.SevilleWindSpeed),
		Numeric("Barcelona_rain_1h", r.BarcelonaRain1h),
		Categorical("Seville_pressure", r.SevillePressure),
		Numeric("Seville_rain_1h", r.SevilleRain1h),
		Numeric("Bilbao_snow_3h", r.BilbaoSnow3h),
		Numeric("Barcelona_pressure", r.BarcelonaPressure),
		Numeric("Seville_rain_3h", r.SevilleRain3h),
		Numeric("Madrid_rain_1h", r.MadridRain1h),
		Numeric("Barcelona_rain_3h", r.BarcelonaRain3h),
		Numeric("Valencia_snow_3h", r.ValenciaSnow3h),
		Numeric("Madrid_weather_id", r.MadridWeatherID),
		Numeric("Barcelona_weather_id", r.BarcelonaWeatherID),
		Numeric("Bilbao_pressure", r.BilbaoPressure),
		Numeric("Seville_weather_id", r.SevilleWeatherID),
		Numeric("Valencia_pressure", valenciaPressure),
		Numeric("Seville_temp_max", r.SevilleTempMax),
		Numeric("Madrid_pressure", r.MadridPressure),
		Numeric("Valencia_temp_max", r.ValenciaTempMax),
		Numeric("Valencia_temp", r.ValenciaTemp),
		Numeric("Bilbao_weather_id", r.BilbaoWeatherID),
		Numeric("Seville_temp", r.SevilleTemp),
		Numeric("Valencia_humidity", r.ValenciaHumidity),
		Numeric("Valencia_temp_min", r.ValenciaTempMin),
		Numeric("Barcelona_temp_max", r.BarcelonaTempMax),
		Numeric("Madrid_temp_max", r.MadridTempMax),
		Numeric("Barcelona_temp", r.BarcelonaTemp),
		Numeric("Bilbao_temp_min", r.BilbaoTempMin),
		Numeric("Bilbao_temp", r.BilbaoTemp),
		Numeric("Barcelona_temp_min", r.BarcelonaTempMin),
		Numeric("Bilbao_temp_max", r.BilbaoTempMax),
		Numeric("Seville_temp_min", r.SevilleTempMin),
		Numeric("Madrid_temp", r.MadridTemp),
		Numeric("Madrid_temp_min", r.MadridTempMin),
	}
}

// SchemaColumns lists every column a record must carry, index and time first.
func SchemaColumns() []string {
	covariates := Record{}.Covariates()
	columns := make([]string, 0, len(covariates)+2)
	columns = append(columns, IndexColumn, TimeColumn)
	return append(columns, covariates.Names()...)
}

// Nullable reports whether a column may be null in the input.
func Nullable(column string) bool {
	return column == "Valencia_pressure"
}
