// Package batch scores a CSV file of records, one prediction per row.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"shortfall_service/internal/core"
	"shortfall_service/internal/domain/model"
)

type Predictor interface {
	Predict(ctx context.Context, data []byte) (*core.Prediction, error)
}

// Score reads records from a CSV with a header row, predicts each one and
// writes a "time,load_shortfall_3h" CSV to w. It stops at the first failing row.
func Score(ctx context.Context, r io.Reader, w io.Writer, predictor Predictor) (int, error) {
	df := dataframe.ReadCSV(r, dataframe.WithTypes(schemaTypes()))
	if df.Err != nil {
		return 0, fmt.Errorf("failed to read records: %w", df.Err)
	}

	// Empty cells of float columns come back as nil and encode as JSON null.
	rows := df.Maps()
	times := make([]string, 0, len(rows))
	values := make([]string, 0, len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		data, err := json.Marshal(row)
		if err != nil {
			return i, fmt.Errorf("row %d: failed to encode record: %w", i+1, err)
		}

		prediction, err := predictor.Predict(ctx, data)
		if err != nil {
			return i, fmt.Errorf("row %d: %w", i+1, err)
		}
		times = append(times, prediction.Time)
		values = append(values, strconv.FormatFloat(prediction.Values[0], 'g', -1, 64))
	}

	out := dataframe.New(
		series.New(times, series.String, model.TimeColumn),
		series.New(values, series.String, model.TargetColumn),
	)
	if err := out.WriteCSV(w); err != nil {
		return len(rows), fmt.Errorf("failed to write predictions: %w", err)
	}
	return len(rows), nil
}

// schemaTypes pins every known column to its record type so that a column
// left empty in every row is still read as float.
func schemaTypes() map[string]series.Type {
	types := map[string]series.Type{model.TargetColumn: series.Float}
	for _, column := range model.SchemaColumns() {
		if column == model.TimeColumn || model.IsCategorical(column) {
			types[column] = series.String
			continue
		}
		types[column] = series.Float
	}
	return types
}
