// Package metrics provides regression evaluation metrics.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/datapipe/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// residuals validates yTrue/yPred and returns yTrue - yPred.
func residuals(op string, yTrue, yPred *mat.VecDense) ([]float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewInsufficientDataError(op, "empty vector", 1, 0)
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	if err := errors.CheckNumericalStability(op, diff, 0); err != nil {
		return nil, err
	}
	return diff, nil
}

// columns converts n×1 matrices into vectors for the *Matrix variants.
func columns(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.NewInsufficientDataError(op, "empty matrix", 1, 0)
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}

	yTrueVec := mat.NewVecDense(rTrue, nil)
	yPredVec := mat.NewVecDense(rPred, nil)
	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}
	return yTrueVec, yPredVec, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
//
// MSE = (1/n) * Σ(yPred - yTrue)²
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Dot(diff, diff) / float64(len(diff)), nil
}

// MSEMatrix は行列形式（n×1）の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columns("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// RMSEMatrix は行列形式（n×1）の入力に対してRMSEを計算する
func RMSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columns("RMSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return RMSE(t, p)
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(diff, 1) / float64(len(diff)), nil
}

// MAEMatrix は行列形式（n×1）の入力に対してMAEを計算する
func MAEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columns("MAEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MAE(t, p)
}

// R2Score は決定係数（R²）を計算する
//
// yTrue の分散が0の場合は ValueError を返す
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	diff, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	ys := make([]float64, len(diff))
	for i := range ys {
		ys[i] = yTrue.AtVec(i)
	}
	yMean := stat.Mean(ys, nil)
	floats.AddConst(-yMean, ys)
	tss := floats.Dot(ys, ys)
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - floats.Dot(diff, diff)/tss, nil
}

// R2ScoreMatrix は行列形式（n×1）の入力に対してR²を計算する
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columns("R2ScoreMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(t, p)
}
