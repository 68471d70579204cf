// Package model_selection splits datasets into train and test partitions
// the way scikit-learn's model_selection.train_test_split does.
package model_selection

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/datapipe/core/random"
	"github.com/YuminosukeSato/datapipe/pkg/errors"
	"github.com/YuminosukeSato/datapipe/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// DefaultTestSize is the test fraction used when neither side is specified.
const DefaultTestSize = 0.25

// Split はtrain/testに分割されたデータ
//
// TrainIndex と TestIndex は元データの行番号で、互いに素かつ和集合が全行になる
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain *mat.Dense
	YTest  *mat.Dense

	TrainIndex []int
	TestIndex  []int
}

// Size は分割サイズの指定（割合または件数）
// Fraction と Count のどちらか一方のみが有効
type Size struct {
	Fraction float64
	Count    int
}

// Fraction returns a Size expressed as a fraction of the samples.
func Fraction(f float64) *Size { return &Size{Fraction: f} }

// Count returns a Size expressed as an absolute number of samples.
func Count(n int) *Size { return &Size{Count: n} }

func (s *Size) isCount() bool { return s.Count != 0 }

// SplitSizes resolves the number of train and test rows for n samples.
//
// A fractional test size rounds up and a fractional train size rounds down.
// A nil side is the complement of the other; both nil means a test fraction
// of DefaultTestSize.
func SplitSizes(n int, testSize, trainSize *Size) (nTrain, nTest int, err error) {
	const op = "model_selection.SplitSizes"

	if testSize == nil && trainSize == nil {
		testSize = Fraction(DefaultTestSize)
	}
	if err := validateSize(op, "test_size", n, testSize); err != nil {
		return 0, 0, err
	}
	if err := validateSize(op, "train_size", n, trainSize); err != nil {
		return 0, 0, err
	}
	if testSize != nil && trainSize != nil && !testSize.isCount() && !trainSize.isCount() &&
		testSize.Fraction+trainSize.Fraction > 1 {
		return 0, 0, errors.NewValueError(op, "test_size and train_size fractions sum to more than 1")
	}

	switch {
	case testSize == nil:
		nTrain = resolve(n, trainSize, math.Floor)
		nTest = n - nTrain
	case trainSize == nil:
		nTest = resolve(n, testSize, math.Ceil)
		nTrain = n - nTest
	default:
		nTest = resolve(n, testSize, math.Ceil)
		nTrain = resolve(n, trainSize, math.Floor)
	}

	if nTrain+nTest > n {
		return 0, 0, errors.NewValueError(op, "train and test sizes exceed the number of samples")
	}
	if nTrain <= 0 {
		return 0, 0, errors.NewInsufficientDataError(op, "the resulting train set is empty", 2, n)
	}
	if nTest <= 0 {
		return 0, 0, errors.NewInsufficientDataError(op, "the resulting test set is empty", 2, n)
	}
	return nTrain, nTest, nil
}

func validateSize(op, param string, n int, s *Size) error {
	if s == nil {
		return nil
	}
	if s.isCount() {
		if s.Count < 1 || s.Count >= n {
			return errors.NewValueError(op, fmt.Sprintf("%s=%d must be in [1, %d)", param, s.Count, n))
		}
		return nil
	}
	if !(s.Fraction > 0 && s.Fraction < 1) {
		return errors.NewValueError(op, fmt.Sprintf("%s=%v must be in (0, 1)", param, s.Fraction))
	}
	return nil
}

func resolve(n int, s *Size, round func(float64) float64) int {
	if s.isCount() {
		return s.Count
	}
	return int(round(s.Fraction * float64(n)))
}

// SplitOption は TrainTestSplit の設定オプション
type SplitOption func(*splitConfig)

type splitConfig struct {
	testSize  *Size
	trainSize *Size
	shuffle   bool
	seed      uint32
	seedFixed bool
}

// WithTestSize はテストデータの割合を設定
func WithTestSize(f float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = Fraction(f)
	}
}

// WithTestCount はテストデータの件数を設定
func WithTestCount(n int) SplitOption {
	return func(c *splitConfig) {
		c.testSize = Count(n)
	}
}

// WithTrainSize は訓練データの割合を設定
func WithTrainSize(f float64) SplitOption {
	return func(c *splitConfig) {
		c.trainSize = Fraction(f)
	}
}

// WithRandomState はシャッフルの乱数シードを設定（再現性のため）
func WithRandomState(seed uint32) SplitOption {
	return func(c *splitConfig) {
		c.seed = seed
		c.seedFixed = true
	}
}

// WithShuffle は分割前にシャッフルするかどうかを設定（デフォルト: true）
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) {
		c.shuffle = shuffle
	}
}

// TrainTestSplit はXとyをランダムなtrain/testに分割する
//
// パラメータ:
//   - X: 特徴量行列 (n_samples × n_features)
//   - y: 目的変数 (n_samples × 1)
//   - opts: WithTestSize, WithRandomState など
//
// シャッフル時は順列の先頭 nTest 個がテスト行、続く nTrain 個が訓練行になる。
// 同じシードと入力からは常に同じ分割が得られる。
//
// 使用例:
//
//	split, err := model_selection.TrainTestSplit(X, y,
//	    model_selection.WithTestSize(0.2),
//	    model_selection.WithRandomState(42),
//	)
func TrainTestSplit(X, y mat.Matrix, opts ...SplitOption) (*Split, error) {
	const op = "model_selection.TrainTestSplit"

	cfg := &splitConfig{shuffle: true}
	for _, opt := range opts {
		opt(cfg)
	}

	n, _ := X.Dims()
	yRows, yCols := y.Dims()
	if n != yRows {
		return nil, errors.NewDimensionError(op, n, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewDimensionError(op, 1, yCols, 1)
	}

	nTrain, nTest, err := SplitSizes(n, cfg.testSize, cfg.trainSize)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	var trainIdx, testIdx []int
	if cfg.shuffle {
		if !cfg.seedFixed {
			cfg.seed = rand.Uint32()
		}
		perm := random.NewRandomState(cfg.seed).Permutation(n)
		testIdx = perm[:nTest]
		trainIdx = perm[nTest : nTest+nTrain]
	} else {
		trainIdx = arange(0, nTrain)
		testIdx = arange(nTrain, nTrain+nTest)
	}

	split := &Split{
		XTrain:     takeRows(X, trainIdx),
		XTest:      takeRows(X, testIdx),
		YTrain:     takeRows(y, trainIdx),
		YTest:      takeRows(y, testIdx),
		TrainIndex: append([]int(nil), trainIdx...),
		TestIndex:  append([]int(nil), testIdx...),
	}

	logger := log.GetLoggerWithName("model_selection")
	logger.Debug("Split completed",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.TrainSamplesKey, nTrain,
		log.TestSamplesKey, nTest,
		log.RandomSeedKey, cfg.seed,
	)

	return split, nil
}

func arange(start, end int) []int {
	idx := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	return idx
}

func takeRows(m mat.Matrix, idx []int) *mat.Dense {
	_, cols := m.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for i, r := range idx {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(r, j))
		}
	}
	return out
}
