package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shortfall_service/internal/domain/model"
)

// V2Client is an estimator served by a model server speaking the v2
// inference protocol (KServe, Triton, MLServer).
type V2Client struct {
	// address contains scheme, host and port, e.g. "http://10.0.0.1:8080".
	address      string
	modelName    string
	modelVersion string
	client       *http.Client
}

var _ model.Estimator = (*V2Client)(nil)

func NewV2Client(address, modelName, modelVersion string, timeout time.Duration) *V2Client {
	return &V2Client{
		address:      address,
		modelName:    modelName,
		modelVersion: modelVersion,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint builds the infer URL:
//   - with version    http://host:port/v2/models/<name>/versions/<version>/infer
//   - without version http://host:port/v2/models/<name>/infer
func (c *V2Client) Endpoint() (string, error) {
	if c.modelVersion == "" {
		return url.JoinPath(c.address, "v2/models", c.modelName, "infer")
	}
	return url.JoinPath(c.address, "v2/models", c.modelName, "versions", c.modelVersion, "infer")
}

// InferInput is one named tensor of an inference request.
type InferInput struct {
	Name     string      `json:"name"`
	Shape    []int       `json:"shape"`
	Datatype string      `json:"datatype"`
	Data     [][]float64 `json:"data"`
}

type InferRequest struct {
	Inputs []InferInput `json:"inputs"`
}

// InferResponse keeps only outputs[*].data of the server's reply.
type InferResponse struct {
	ModelName string `json:"model_name"`
	Outputs   []struct {
		Name string    `json:"name"`
		Data []float64 `json:"data"`
	} `json:"outputs"`
}

// InputName is the tensor name the feature row is sent under.
var InputName = "features"

func (c *V2Client) Predict(ctx context.Context, features model.FeatureVector) ([]float64, error) {
	row, err := features.Numbers()
	if err != nil {
		return nil, err
	}

	endpoint, err := c.Endpoint()
	if err != nil {
		return nil, fmt.Errorf("failed to build inference endpoint: %w", err)
	}

	body, err := json.Marshal(InferRequest{
		Inputs: []InferInput{{
			Name:     InputName,
			Shape:    []int{1, len(row)},
			Datatype: "FP64",
			Data:     [][]float64{row},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned status: %s", resp.Status)
	}

	var inferResp InferResponse
	if err := json.NewDecoder(resp.Body).Decode(&inferResp); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(inferResp.Outputs) == 0 || len(inferResp.Outputs[0].Data) == 0 {
		return nil, fmt.Errorf("model server returned no outputs")
	}
	return inferResp.Outputs[0].Data, nil
}

func (c *V2Client) Describe() model.EstimatorInfo {
	source, err := c.Endpoint()
	if err != nil {
		source = c.address
	}
	return model.EstimatorInfo{
		Kind:   "v2-inference",
		Source: source,
	}
}
