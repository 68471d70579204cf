// Package datapipe is a small, reproducible regression pipeline for Go:
// build an in-memory dataset, split it with a seeded shuffle, fit an ordinary
// least-squares model and report the held-out mean squared error.
//
// Splits and fits follow scikit-learn's semantics, so results match the
// equivalent Python tooling: with seed 42 and a test size of 0.2 the sample
// dataset holds out the same row, and rank-deficient designs resolve to the
// same minimum-norm coefficients.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/datapipe/dataset"
//	    "github.com/YuminosukeSato/datapipe/pipeline"
//	)
//
//	func main() {
//	    res, err := pipeline.Run(dataset.Sample(), pipeline.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = res.Report(os.Stdout) // Mean Squared Error: 0.0293877551...
//	}
//
// Or run the command directly:
//
//	go run ./examples/data_pipeline
//
// # Packages
//
//   - dataset: named numeric columns and the embedded sample table
//   - sklearn/model_selection: TrainTestSplit and split sizing
//   - sklearn/linear_model: LinearRegression (thin SVD, minimum-norm solution)
//   - metrics: MSE, RMSE, MAE, R²
//   - report: the one-line summary and predicted-vs-actual plots
//   - pipeline: the end-to-end run
//   - core/random: NumPy-compatible seeded permutations
//   - core/model: estimator interfaces, fitted state and weight snapshots
//   - core/parallel: row-range parallelism for large predictions
//   - pkg/errors: structured errors, warnings and panic recovery
//   - pkg/log: slog/tint/zerolog logging setup
//
// # Rank-deficient data
//
// The sample features are exactly collinear (Feature2 = 6 - Feature1). By
// default LinearRegression keeps the minimum-norm least-squares solution and
// raises a RankWarning through pkg/errors.Warn; WithStrictRank(true) turns the
// same condition into a DegenerateFitError.
//
// # License
//
// datapipe is released under the MIT License.
package datapipe
