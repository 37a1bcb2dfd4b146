package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortfall_service/internal/api"
	"shortfall_service/internal/core"
	"shortfall_service/internal/observability"
	"shortfall_service/internal/testutil"
)

func newRouter(stub *testutil.StubEstimator) *gin.Engine {
	logger := observability.Discard()
	metrics := observability.NewMetrics()
	service := core.NewPredictionService(stub, core.EncodingRaw, nil, false, metrics, logger)
	return api.NewRouter(api.NewHandler(service, logger), metrics.Handler(), logger)
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPredict(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{Values: []float64{42.0}})

	rec := do(r, http.MethodPost, "/api/predict", testutil.RecordJSON(t, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.PredictionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []float64{42.0}, resp.Prediction)
	assert.NotEmpty(t, resp.ID.String())
}

func TestPredict_BadRecord(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{Values: []float64{42.0}})

	rec := do(r, http.MethodPost, "/api/predict", testutil.RecordJSON(t, nil, "Unnamed: 0"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, `missing column "Unnamed: 0"`)
}

func TestPredict_BodyTooLarge(t *testing.T) {
	stub := &testutil.StubEstimator{Values: []float64{42.0}}
	r := newRouter(stub)

	body := append([]byte(`{"padding":"`), bytes.Repeat([]byte("x"), 1<<20)...)
	rec := do(r, http.MethodPost, "/api/predict", append(body, `"}`...))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "request body too large", resp.Error)
	assert.Empty(t, stub.Calls())
}

func TestPredict_EstimatorFailure(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{Err: errors.New("model server down")})

	rec := do(r, http.MethodPost, "/api/predict", testutil.RecordJSON(t, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPredict_MethodNotAllowed(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{Values: []float64{42.0}})

	rec := do(r, http.MethodGet, "/api/predict", nil)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestGetModel(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{})

	rec := do(r, http.MethodGet, "/api/model", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "*testutil.StubEstimator", resp["kind"])
	assert.Equal(t, "raw", resp["encoding"])
}

func TestHealthz(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{})

	rec := do(r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	r := newRouter(&testutil.StubEstimator{Values: []float64{1}})

	do(r, http.MethodPost, "/api/predict", testutil.RecordJSON(t, nil))

	rec := do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `shortfall_predictions_total{outcome="ok"} 1`), rec.Body.String())
}
