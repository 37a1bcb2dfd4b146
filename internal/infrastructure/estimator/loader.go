package estimator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shortfall_service/internal/domain/model"
)

// ErrUnsupportedArtifact is returned when a model file cannot be deserialized.
var ErrUnsupportedArtifact = errors.New("unsupported model artifact")

// Load reads a persisted estimator from path. The format is chosen by extension.
func Load(path string) (model.Estimator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		linear, err := decodeLinear(data, path)
		if err != nil {
			return nil, err
		}
		return linear, nil
	case ".pkl", ".pickle":
		return nil, fmt.Errorf("%w: pickled model %s; export it as a JSON linear artifact", ErrUnsupportedArtifact, path)
	default:
		return nil, fmt.Errorf("%w: unknown extension %q", ErrUnsupportedArtifact, ext)
	}
}

func decodeLinear(data []byte, source string) (*Linear, error) {
	var artifact LinearArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedArtifact, err)
	}
	return NewLinear(artifact, source)
}
