package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shortfall_service/internal/core"
	"shortfall_service/internal/domain/model"
)

// maxRecordBytes bounds the size of one JSON record.
const maxRecordBytes = 1 << 20

type Handler struct {
	service *core.PredictionService
	logger  *slog.Logger
}

func NewHandler(service *core.PredictionService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type PredictionResponse struct {
	ID         uuid.UUID `json:"id"`
	Prediction []float64 `json:"prediction"`
}

type ModelResponse struct {
	model.EstimatorInfo
	Encoding string `json:"encoding"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Predict takes the raw JSON record as the request body.
func (h *Handler) Predict(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
		return
	}

	prediction, err := h.service.Predict(c.Request.Context(), body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrDataFormat) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, PredictionResponse{
		ID:         prediction.ID,
		Prediction: prediction.Values,
	})
}

// GetModel describes the loaded estimator.
func (h *Handler) GetModel(c *gin.Context) {
	c.JSON(http.StatusOK, ModelResponse{
		EstimatorInfo: h.service.Describe(),
		Encoding:      string(h.service.Encoding()),
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
