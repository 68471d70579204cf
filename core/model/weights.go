package model

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"maps"
	"math"
	"slices"

	"github.com/YuminosukeSato/datapipe/pkg/errors"
)

// ModelWeights is a portable snapshot of a fitted linear model. Metadata
// carries diagnostics such as rank, sample count and "checksum".
type ModelWeights struct {
	ModelType       string                 `json:"model_type"`
	Version         string                 `json:"version"`
	Coefficients    []float64              `json:"coefficients"`
	Intercept       float64                `json:"intercept"`
	Features        []string               `json:"features,omitempty"`
	Hyperparameters map[string]interface{} `json:"hyperparameters"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	IsFitted        bool                   `json:"is_fitted"`
}

func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

// Validate checks that the snapshot is internally consistent.
func (mw *ModelWeights) Validate() error {
	switch {
	case mw.ModelType == "":
		return errors.NewValidationError("model_type", "required", mw.ModelType)
	case mw.Version == "":
		return errors.NewValidationError("version", "required", mw.Version)
	case mw.IsFitted && len(mw.Coefficients) == 0:
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", len(mw.Coefficients))
	case !mw.IsFitted && len(mw.Coefficients) > 0:
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	case len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients):
		return errors.NewValidationError("features", "one name per coefficient", len(mw.Features))
	}
	return nil
}

// Checksum hashes the IEEE-754 bits of the coefficients followed by the
// intercept, so it survives a JSON round trip exactly.
func (mw *ModelWeights) Checksum() string {
	h := sha256.New()
	var word [8]byte
	for _, v := range append(slices.Clone(mw.Coefficients), mw.Intercept) {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		h.Write(word[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Clone returns a deep copy. Map values are copied shallowly.
func (mw *ModelWeights) Clone() *ModelWeights {
	c := *mw
	c.Coefficients = slices.Clone(mw.Coefficients)
	c.Features = slices.Clone(mw.Features)
	c.Hyperparameters = maps.Clone(mw.Hyperparameters)
	c.Metadata = maps.Clone(mw.Metadata)
	return &c
}
