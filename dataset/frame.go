// Package dataset provides a small in-memory table of named numeric columns.
package dataset

import (
	"github.com/YuminosukeSato/datapipe/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Frame は名前付き数値列の順序付きテーブル
// 構築後は不変で、アクセサはコピーを返す
type Frame struct {
	names []string
	index map[string]int
	data  *mat.Dense // rows × columns
}

// Sample は組み込みの5行×3列のサンプルデータを返す
//
// 列: Feature1, Feature2, Target
func Sample() *Frame {
	f, err := FromColumns(
		[]string{"Feature1", "Feature2", "Target"},
		[]float64{1, 2, 3, 4, 5},
		[]float64{5, 4, 3, 2, 1},
		[]float64{1.1, 1.9, 3.0, 4.1, 5.1},
	)
	if err != nil {
		panic(err)
	}
	return f
}

// FromColumns は列ごとのデータからFrameを作成する
//
// パラメータ:
//   - names: 列名（空でなく一意）
//   - columns: 列データ（すべて同じ長さ、有限値のみ）
//
// 戻り値:
//   - *Frame: 新しいFrame
//   - error: ValidationError または NumericalInstabilityError
func FromColumns(names []string, columns ...[]float64) (*Frame, error) {
	if len(columns) != len(names) {
		return nil, errors.NewValidationError("columns", "column count must match name count", len(columns))
	}
	index, err := indexNames(names)
	if err != nil {
		return nil, err
	}

	rows := len(columns[0])
	if rows == 0 {
		return nil, errors.NewValidationError(names[0], "column must contain at least one value", rows)
	}
	for j, col := range columns {
		if len(col) != rows {
			return nil, errors.NewValidationError(names[j], "all columns must have the same length", len(col))
		}
		if err := errors.CheckNumericalStability("dataset.FromColumns", col, j); err != nil {
			return nil, errors.Wrapf(err, "column %q", names[j])
		}
	}

	data := mat.NewDense(rows, len(columns), nil)
	for j, col := range columns {
		data.SetCol(j, col)
	}

	return &Frame{
		names: append([]string(nil), names...),
		index: index,
		data:  data,
	}, nil
}

// New は行ごとのデータからFrameを作成する
func New(names []string, rows [][]float64) (*Frame, error) {
	if len(rows) == 0 {
		return nil, errors.NewValidationError("rows", "at least one row is required", 0)
	}
	index, err := indexNames(names)
	if err != nil {
		return nil, err
	}

	data := mat.NewDense(len(rows), len(names), nil)
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, errors.NewValidationError("rows", "row length must match name count", len(row))
		}
		if err := errors.CheckNumericalStability("dataset.New", row, i); err != nil {
			return nil, err
		}
		data.SetRow(i, row)
	}

	return &Frame{
		names: append([]string(nil), names...),
		index: index,
		data:  data,
	}, nil
}

func indexNames(names []string) (map[string]int, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("names", "at least one column is required", 0)
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, errors.NewValidationError("names", "column name must not be empty", i)
		}
		if _, dup := index[name]; dup {
			return nil, errors.NewValidationError("names", "duplicate column name", name)
		}
		index[name] = i
	}
	return index, nil
}

// Dims は行数と列数を返す
func (f *Frame) Dims() (rows, cols int) {
	return f.data.Dims()
}

// Columns は列名を定義順で返す
func (f *Frame) Columns() []string {
	return append([]string(nil), f.names...)
}

// Column は指定された列のコピーを返す
func (f *Frame) Column(name string) (*mat.VecDense, error) {
	j, ok := f.index[name]
	if !ok {
		return nil, errors.NewValidationError("column", "unknown column", name)
	}
	rows, _ := f.data.Dims()
	col := make([]float64, rows)
	mat.Col(col, j, f.data)
	return mat.NewVecDense(rows, col), nil
}

// Select は指定された列からなる行列（rows × len(names)）を返す
func (f *Frame) Select(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("names", "at least one column is required", 0)
	}
	rows, _ := f.data.Dims()
	out := mat.NewDense(rows, len(names), nil)
	for k, name := range names {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		out.SetCol(k, col.RawVector().Data)
	}
	return out, nil
}

// XY は特徴量行列Xと目的変数の列ベクトルy（rows × 1）を返す
func (f *Frame) XY(features []string, target string) (X, y *mat.Dense, err error) {
	for _, name := range features {
		if name == target {
			return nil, nil, errors.NewValidationError("features", "target column must not be used as a feature", name)
		}
	}
	X, err = f.Select(features...)
	if err != nil {
		return nil, nil, err
	}
	y, err = f.Select(target)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}
