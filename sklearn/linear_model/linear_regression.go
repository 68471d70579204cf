// Package linear_model provides ordinary least squares regression compatible
// with scikit-learn's LinearRegression.
package linear_model

import (
	"fmt"
	"math"
	"time"

	"github.com/YuminosukeSato/datapipe/core/model"
	"github.com/YuminosukeSato/datapipe/core/parallel"
	"github.com/YuminosukeSato/datapipe/metrics"
	"github.com/YuminosukeSato/datapipe/pkg/errors"
	"github.com/YuminosukeSato/datapipe/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// machineEpsilon is the float64 unit roundoff used for the default rank cutoff.
const machineEpsilon = 0x1p-52

// LinearRegression is a linear regression model using ordinary least squares.
//
// Fit centers the data, factorizes the design matrix with a thin SVD and
// keeps the minimum-norm least-squares solution, so rank-deficient inputs
// produce the same coefficients as scikit-learn.
type LinearRegression struct {
	state *model.StateManager // State management (composition instead of embedding)

	// Hyperparameters
	fitIntercept bool    // Whether to learn the intercept
	copyX        bool    // Whether to copy input data
	nJobs        int     // Number of parallel jobs for Predict
	rcond        float64 // Relative cutoff for small singular values (<0: eps*max(n, p))
	strictRank   bool    // Whether a rank-deficient design is an error

	// Model type and version info
	modelType string
	version   string

	// Learned parameters
	coef_      []float64 // Weight coefficients
	intercept_ float64   // Intercept

	// Statistical information
	nFeatures_      int       // Number of features
	nSamples_       int       // Number of samples
	rank_           int       // Effective rank of the centered design matrix
	singularValues_ []float64 // Singular values of the centered design matrix
}

// NewLinearRegression は新しいLinearRegressionモデルを作成
func NewLinearRegression(options ...LinearRegressionOption) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
		copyX:        true,
		nJobs:        1,
		rcond:        -1,
		modelType:    "LinearRegression",
		version:      "1.0.0",
	}

	// Apply options
	for _, opt := range options {
		opt(lr)
	}

	return lr
}

// LinearRegressionOption は設定オプション
type LinearRegressionOption func(*LinearRegression)

// WithLRFitIntercept は切片の学習有無を設定（LinearRegression用）
func WithLRFitIntercept(fit bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithCopyX はデータコピーの有無を設定
// false の場合、*mat.Dense の入力はその場で中心化される
func WithCopyX(copy bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.copyX = copy
	}
}

// WithNJobs は予測時の並列ジョブ数を設定（-1: 全CPU）
func WithNJobs(n int) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.nJobs = n
	}
}

// WithRcond は特異値の相対カットオフを設定（負の値: eps*max(n, p)）
func WithRcond(rcond float64) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.rcond = rcond
	}
}

// WithStrictRank はランク落ちをエラーとして扱うかどうかを設定
//
// false（デフォルト）の場合は最小ノルム解を採用し RankWarning を出す。
// true の場合は DegenerateFitError を返す。
func WithStrictRank(strict bool) LinearRegressionOption {
	return func(lr *LinearRegression) {
		lr.strictRank = strict
	}
}

// Fit はモデルを訓練データで学習
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features)
//   - y: 目的変数 (n_samples × 1)
//
// 戻り値:
//   - error: DimensionError, InsufficientDataError, NumericalInstabilityError,
//     strict モードでは DegenerateFitError
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	const op = "LinearRegression.Fit"
	start := time.Now()

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	// 入力検証
	if rows == 0 || cols == 0 {
		return errors.NewInsufficientDataError(op, "empty training data", 1, rows)
	}
	if rows != yRows {
		return errors.NewDimensionError(op, rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError(op, 1, yCols, 1)
	}
	if err := errors.CheckMatrix(op, X); err != nil {
		return err
	}
	if err := errors.CheckMatrix(op, y); err != nil {
		return err
	}

	logger := log.GetLoggerWithName("linear_model").With(
		log.ModelNameKey, lr.modelType,
		log.OperationKey, log.OperationFit,
	)
	logger.Debug("Fitting model",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)

	// データのコピー（必要な場合）
	XWork, ok := X.(*mat.Dense)
	if lr.copyX || !ok {
		XWork = mat.DenseCopyOf(X)
	}
	yWork := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yWork.SetVec(i, y.At(i, 0))
	}

	// 切片を学習する場合は X と y を平均で中心化
	xMean := make([]float64, cols)
	var yMean float64
	if lr.fitIntercept {
		col := make([]float64, rows)
		for j := 0; j < cols; j++ {
			mat.Col(col, j, XWork)
			xMean[j] = stat.Mean(col, nil)
			floats.AddConst(-xMean[j], col)
			XWork.SetCol(j, col)
		}
		yMean = stat.Mean(yWork.RawVector().Data, nil)
		floats.AddConst(-yMean, yWork.RawVector().Data)
	}

	var svd mat.SVD
	if !svd.Factorize(XWork, mat.SVDThin) {
		return errors.NewSolverError(op, "SVD factorization did not converge", errors.ErrSingularMatrix)
	}

	rcond := lr.rcond
	if rcond < 0 {
		rcond = machineEpsilon * float64(max(rows, cols))
	}
	rank := svd.Rank(rcond)

	if rank < cols {
		if lr.strictRank {
			logger.Warn("Rank-deficient design matrix",
				log.RankKey, rank,
				log.ErrorCodeKey, log.ErrorDegenerateFit,
			)
			return errors.NewDegenerateFitError(op, rank, cols, rows)
		}
		errors.Warn(errors.NewRankWarning(op, rank, cols))
	}

	// 最小ノルム最小二乗解（ランク0の場合は係数0）
	coef := make([]float64, cols)
	if rank > 0 {
		beta := mat.NewVecDense(cols, nil)
		svd.SolveVecTo(beta, yWork, rank)
		copy(coef, beta.RawVector().Data)
	}

	intercept := 0.0
	if lr.fitIntercept {
		intercept = yMean - floats.Dot(xMean, coef)
	}
	if err := errors.CheckNumericalStability(op, append(append([]float64(nil), coef...), intercept), 0); err != nil {
		return err
	}

	lr.coef_ = coef
	lr.intercept_ = intercept
	lr.nFeatures_ = cols
	lr.nSamples_ = rows
	lr.rank_ = rank
	lr.singularValues_ = svd.Values(nil)
	lr.state.SetFitted(cols, rows)

	logger.Info("Model fitted",
		log.RankKey, rank,
		log.CoefKey, coef,
		log.InterceptKey, intercept,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict は入力データに対する予測を行う
//
// 行数が parallel.DefaultThreshold 以上の場合は nJobs で並列化する
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	const op = "LinearRegression.Predict"
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	rows, cols := X.Dims()
	if cols != lr.nFeatures_ {
		return nil, errors.NewDimensionError(op, lr.nFeatures_, cols, 1)
	}
	if rows == 0 {
		return nil, errors.NewInsufficientDataError(op, "no rows to predict", 1, 0)
	}

	predictions := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, parallel.DefaultThreshold, parallel.Workers(lr.nJobs), func(start, end int) {
		row := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(row, i, X)
			predictions.Set(i, 0, lr.intercept_+floats.Dot(row, lr.coef_))
		}
	})

	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	score, err := metrics.R2ScoreMatrix(y, predictions)
	if err != nil {
		return 0, errors.Wrap(err, "LinearRegression.Score")
	}
	return score, nil
}

// Coef は学習された重み係数を返す
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef_ == nil {
		return nil
	}
	return append([]float64(nil), lr.coef_...)
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept_
}

// Rank は中心化した設計行列の実効ランクを返す
func (lr *LinearRegression) Rank() int {
	return lr.rank_
}

// SingularValues は中心化した設計行列の特異値（降順）を返す
func (lr *LinearRegression) SingularValues() []float64 {
	if lr.singularValues_ == nil {
		return nil
	}
	return append([]float64(nil), lr.singularValues_...)
}

// IsFitted returns whether the model has been fitted
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams returns the model's hyperparameters (scikit-learn compatible)
func (lr *LinearRegression) GetParams(deep bool) map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"copy_X":        lr.copyX,
		"n_jobs":        lr.nJobs,
		"rcond":         lr.rcond,
		"strict_rank":   lr.strictRank,
		"fitted":        lr.state.IsFitted(),
		"model_type":    lr.modelType,
		"version":       lr.version,
	}
}

// SetParams sets the model's hyperparameters (scikit-learn compatible)
// Values decoded from JSON (float64 for integers) are accepted.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	if v, ok := params["fit_intercept"].(bool); ok {
		lr.fitIntercept = v
	}
	if v, ok := params["copy_X"].(bool); ok {
		lr.copyX = v
	}
	if v, ok := intParam(params["n_jobs"]); ok {
		lr.nJobs = v
	}
	if v, ok := params["rcond"].(float64); ok {
		lr.rcond = v
	}
	if v, ok := params["strict_rank"].(bool); ok {
		lr.strictRank = v
	}

	return nil
}

func intParam(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// ExportWeights はモデルの重みをエクスポート（メモリ上での再現性検証用）
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "ExportWeights")
	}

	weights := &model.ModelWeights{
		ModelType:       lr.modelType,
		Version:         lr.version,
		Coefficients:    lr.Coef(),
		Intercept:       lr.intercept_,
		IsFitted:        true,
		Hyperparameters: lr.GetParams(true),
		Metadata: map[string]interface{}{
			"n_features": lr.nFeatures_,
			"n_samples":  lr.nSamples_,
			"rank":       lr.rank_,
		},
	}
	weights.Metadata["checksum"] = weights.Checksum()

	return weights, nil
}

// ImportWeights はモデルの重みをインポート（チェックサムを検証）
func (lr *LinearRegression) ImportWeights(weights *model.ModelWeights) error {
	const op = "LinearRegression.ImportWeights"
	if weights == nil {
		return errors.NewValueError(op, "weights cannot be nil")
	}
	if weights.ModelType != lr.modelType {
		return errors.NewValueError(op, fmt.Sprintf("model type mismatch: expected %s, got %s", lr.modelType, weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return errors.Wrap(err, op)
	}

	// チェックサムを検証
	if checksum, ok := weights.Metadata["checksum"].(string); ok && checksum != weights.Checksum() {
		return errors.NewValueError(op, "checksum mismatch: weights may be corrupted")
	}

	// ハイパーパラメータを設定
	if err := lr.SetParams(weights.Hyperparameters); err != nil {
		return err
	}

	lr.coef_ = append([]float64(nil), weights.Coefficients...)
	lr.intercept_ = weights.Intercept
	lr.nFeatures_ = len(lr.coef_)
	lr.nSamples_, _ = intParam(weights.Metadata["n_samples"])
	lr.rank_, _ = intParam(weights.Metadata["rank"])
	lr.singularValues_ = nil

	lr.state.SetFitted(lr.nFeatures_, lr.nSamples_)
	return nil
}

// GetWeightHash calculates the hash value of weights (for verification)
func (lr *LinearRegression) GetWeightHash() string {
	if !lr.state.IsFitted() {
		return ""
	}
	w := &model.ModelWeights{Coefficients: lr.coef_, Intercept: lr.intercept_}
	return w.Checksum()
}

// Clone はモデルの新しいインスタンスを作成（同じハイパーパラメータ、学習済みなら同じ重み）
func (lr *LinearRegression) Clone() model.SKLearnCompatible {
	clone := NewLinearRegression(
		WithLRFitIntercept(lr.fitIntercept),
		WithCopyX(lr.copyX),
		WithNJobs(lr.nJobs),
		WithRcond(lr.rcond),
		WithStrictRank(lr.strictRank),
	)

	if lr.state.IsFitted() {
		clone.coef_ = lr.Coef()
		clone.intercept_ = lr.intercept_
		clone.nFeatures_ = lr.nFeatures_
		clone.nSamples_ = lr.nSamples_
		clone.rank_ = lr.rank_
		clone.singularValues_ = lr.SingularValues()
		clone.state.SetFitted(lr.nFeatures_, lr.nSamples_)
	}

	return clone
}

// String returns the string representation of the model
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t, copy_X=%t, n_jobs=%d)",
			lr.fitIntercept, lr.copyX, lr.nJobs)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, rank=%d, fitted=true)",
		lr.fitIntercept, lr.nFeatures_, lr.rank_)
}

var (
	_ model.LinearModel       = (*LinearRegression)(nil)
	_ model.SKLearnCompatible = (*LinearRegression)(nil)
	_ model.WeightExporter    = (*LinearRegression)(nil)
)
