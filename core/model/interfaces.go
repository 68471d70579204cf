// Package model provides the interfaces and shared state types for estimators.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Estimator is a model that can be fitted and reports whether it has been.
type Estimator interface {
	Fitter
	IsFitted() bool
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Estimator
	Predictor
	Scorer
}

// LinearModel exposes the learned parameters of a linear model.
type LinearModel interface {
	Regressor

	// Coef は学習された係数を返す
	Coef() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}

// SKLearnCompatible はscikit-learn互換のインターフェース
type SKLearnCompatible interface {
	// GetParams はモデルのハイパーパラメータを取得
	GetParams(deep bool) map[string]interface{}

	// SetParams はモデルのハイパーパラメータを設定
	SetParams(params map[string]interface{}) error

	// Clone はモデルの新しいインスタンスを同じパラメータで作成
	Clone() SKLearnCompatible
}

// WeightExporter は重みをエクスポート可能なモデルのインターフェース
type WeightExporter interface {
	// ExportWeights はモデルの重みをエクスポート
	ExportWeights() (*ModelWeights, error)

	// ImportWeights はモデルの重みをインポート
	ImportWeights(weights *ModelWeights) error

	// GetWeightHash は重みのハッシュ値を計算（検証用）
	GetWeightHash() string
}
