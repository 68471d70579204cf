package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewSolverError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "datapipe: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "datapipe: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSolverError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var solverErr *SolverError
			if !As(err, &solverErr) {
				t.Error("Error should be castable to *SolverError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		axis int
		want string
	}{
		{0, "datapipe: MSE: dimension mismatch on axis 0 (rows). Expected 3, got 2"},
		{1, "datapipe: MSE: dimension mismatch on axis 1 (features). Expected 3, got 2"},
	}
	for _, tt := range tests {
		err := NewDimensionError("MSE", 3, 2, tt.axis)
		if err.Error() != tt.want {
			t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
		}
		var dimErr *DimensionError
		if !As(err, &dimErr) {
			t.Fatal("Error should be castable to *DimensionError")
		}
		if dimErr.Expected != 3 || dimErr.Got != 2 {
			t.Errorf("unexpected fields: %+v", dimErr)
		}
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	want := "datapipe: LinearRegression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestDegenerateFitError(t *testing.T) {
	err := NewDegenerateFitError("LinearRegression.Fit", 1, 2, 4)

	want := "datapipe: LinearRegression.Fit: degenerate fit: design matrix has rank 1 but 2 features (4 samples)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var degErr *DegenerateFitError
	if !As(err, &degErr) {
		t.Fatal("Error should be castable to *DegenerateFitError")
	}
	if degErr.Rank != 1 || degErr.Features != 2 || degErr.Samples != 4 {
		t.Errorf("unexpected fields: %+v", degErr)
	}

	// 特異行列のセンチネルとして判定できる
	if !Is(err, ErrSingularMatrix) {
		t.Error("Expected Is(err, ErrSingularMatrix) to be true")
	}
}

func TestInsufficientDataError(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantMsg string
	}{
		{
			name:    "with reason",
			reason:  "train set would be empty",
			wantMsg: "datapipe: TrainTestSplit: insufficient data: train set would be empty (need at least 2, got 1)",
		},
		{
			name:    "without reason",
			wantMsg: "datapipe: TrainTestSplit: insufficient data: need at least 2, got 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInsufficientDataError("TrainTestSplit", tt.reason, 2, 1)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}
			if !Is(err, ErrEmptyData) {
				t.Error("Expected Is(err, ErrEmptyData) to be true")
			}
		})
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("TrainTestSplit", fmt.Sprintf("test_size: %v (must be in (0, 1))", 1.5))

	want := "datapipe: TrainTestSplit: test_size: 1.5 (must be in (0, 1))"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestRankWarning(t *testing.T) {
	w := NewRankWarning("LinearRegression.Fit", 1, 2)

	if !strings.Contains(w.Error(), "rank 1 < 2 features") {
		t.Errorf("unexpected message: %s", w.Error())
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Warn().Object("warning", w).Msg("rank deficient")

	for _, want := range []string{`"type":"RankWarning"`, `"rank":1`, `"features":2`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("zerolog output %s should contain %s", buf.String(), want)
		}
	}
}

func TestWarnRouting(t *testing.T) {
	var handled []error
	SetWarningHandler(func(w error) { handled = append(handled, w) })
	defer SetWarningHandler(nil)

	Warn(NewRankWarning("Fit", 1, 2))
	if len(handled) != 1 {
		t.Fatalf("expected 1 handled warning, got %d", len(handled))
	}

	// zerologフックが設定されている場合はそちらが優先される
	var viaZerolog []error
	SetZerologWarnFunc(func(w error) { viaZerolog = append(viaZerolog, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewRankWarning("Fit", 0, 2))
	if len(viaZerolog) != 1 || len(handled) != 1 {
		t.Errorf("expected warning routed to zerolog hook only, got hook=%d handler=%d", len(viaZerolog), len(handled))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in metrics.MSE")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in metrics.MSE") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrSingularMatrix, "in %s: rank %d of %d", "Fit", 1, 2)

	if !Is(wrapped, ErrSingularMatrix) {
		t.Error("Expected Is(wrapped, ErrSingularMatrix) to be true")
	}

	expectedMsg := "in Fit: rank 1 of 2"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckMatrix(t *testing.T) {
	tests := []struct {
		name      string
		data      [][]float64
		wantErr   bool
		wantIndex int
	}{
		{"finite", [][]float64{{1, 2}, {3, 4}}, false, 0},
		{"nan in second row", [][]float64{{1, 2}, {math.NaN(), 4}}, true, 1},
		{"inf in first row", [][]float64{{math.Inf(1), 2}, {3, 4}}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMatrix("test", rowsMatrix(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckMatrix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var numErr *NumericalInstabilityError
			if !As(err, &numErr) {
				t.Fatalf("expected NumericalInstabilityError, got %T", err)
			}
			if numErr.Row != tt.wantIndex {
				t.Errorf("index = %d, want %d", numErr.Row, tt.wantIndex)
			}
		})
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("mse", 0.5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckScalar("mse", math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
}

type rowsMatrix [][]float64

func (m rowsMatrix) Dims() (int, int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

func (m rowsMatrix) At(i, j int) float64 { return m[i][j] }
