package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestWriteMSE(t *testing.T) {
	tests := []struct {
		name string
		mse  float64
		want string
	}{
		{"zero", 0, "Mean Squared Error: 0\n"},
		{"sample result", 36.0 / 1225.0, "Mean Squared Error: 0.029387755102040815\n"},
		{"integer valued", 4, "Mean Squared Error: 4\n"},
		{"small", 1e-7, "Mean Squared Error: 1e-07\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteMSE(&buf, tt.mse); err != nil {
				t.Fatalf("WriteMSE: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteMSE() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteMSEWriterError(t *testing.T) {
	if err := WriteMSE(failingWriter{}, 1); err == nil {
		t.Error("expected write error")
	}
}

func TestPlotPredictions(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		yTrue mat.Matrix
		yPred mat.Matrix
	}{
		{"single point", mat.NewDense(1, 1, []float64{1.9}), mat.NewDense(1, 1, []float64{2.0714285714285716})},
		{"several points", mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(3, 1, []float64{1.1, 1.8, 3.2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ext := range []string{"png", "svg"} {
				path := filepath.Join(dir, tt.name+"."+ext)
				if err := PlotPredictions(path, tt.yTrue, tt.yPred); err != nil {
					t.Fatalf("PlotPredictions(%s): %v", ext, err)
				}
				info, err := os.Stat(path)
				if err != nil {
					t.Fatalf("Stat: %v", err)
				}
				if info.Size() == 0 {
					t.Errorf("%s is empty", path)
				}
			}
		})
	}
}

func TestPlotPredictionsErrors(t *testing.T) {
	dir := t.TempDir()
	col := mat.NewDense(2, 1, []float64{1, 2})

	tests := []struct {
		name  string
		path  string
		yTrue mat.Matrix
		yPred mat.Matrix
	}{
		{"length mismatch", filepath.Join(dir, "a.png"), col, mat.NewDense(3, 1, nil)},
		{"not a column", filepath.Join(dir, "b.png"), mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil)},
		{"unknown format", filepath.Join(dir, "c.unknown"), col, col},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := PlotPredictions(tt.path, tt.yTrue, tt.yPred); err == nil {
				t.Error("expected error")
			}
		})
	}
}
