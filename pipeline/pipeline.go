// Package pipeline runs the dataset → split → fit → evaluate → report flow
// end to end.
package pipeline

import (
	"io"
	"time"

	"github.com/YuminosukeSato/datapipe/dataset"
	"github.com/YuminosukeSato/datapipe/metrics"
	"github.com/YuminosukeSato/datapipe/pkg/errors"
	"github.com/YuminosukeSato/datapipe/pkg/log"
	"github.com/YuminosukeSato/datapipe/report"
	"github.com/YuminosukeSato/datapipe/sklearn/linear_model"
	"github.com/YuminosukeSato/datapipe/sklearn/model_selection"
	"gonum.org/v1/gonum/mat"
)

// Config controls a pipeline run.
type Config struct {
	Features     []string
	Target       string
	TestSize     float64
	RandomState  uint32
	FitIntercept bool
	// StrictRank turns a rank-deficient design matrix into a DegenerateFitError
	// instead of a RankWarning.
	StrictRank bool
}

// DefaultConfig returns the configuration used by the data_pipeline command.
func DefaultConfig() Config {
	return Config{
		Features:     []string{"Feature1", "Feature2"},
		Target:       "Target",
		TestSize:     0.2,
		RandomState:  42,
		FitIntercept: true,
	}
}

// Validate checks the configuration before any stage runs.
func (c Config) Validate() error {
	if len(c.Features) == 0 {
		return errors.NewValidationError("Features", "at least one feature is required", c.Features)
	}
	if c.Target == "" {
		return errors.NewValidationError("Target", "target column is required", c.Target)
	}
	if !(c.TestSize > 0 && c.TestSize < 1) {
		return errors.NewValidationError("TestSize", "must be in (0, 1)", c.TestSize)
	}
	return nil
}

// Result holds everything produced by a run.
type Result struct {
	Split       *model_selection.Split
	Model       *linear_model.LinearRegression
	Predictions mat.Matrix
	MSE         float64
	RMSE        float64
	MAE         float64
}

// Report writes the one-line MSE summary.
func (r *Result) Report(w io.Writer) error {
	return report.WriteMSE(w, r.MSE)
}

// Run executes the pipeline on frame. Stage failures are wrapped with the
// stage name; a panic in any stage is returned as a *errors.PanicError.
func Run(frame *dataset.Frame, cfg Config) (res *Result, err error) {
	defer errors.Recover(&err, "pipeline.Run")

	if frame == nil {
		return nil, errors.NewValueError("pipeline.Run", "frame is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := log.GetLoggerWithName("pipeline")

	rows, _ := frame.Dims()
	X, y, err := frame.XY(cfg.Features, cfg.Target)
	if err != nil {
		return nil, errors.Wrap(err, "dataset stage")
	}
	logger.Debug("Dataset ready",
		log.PhaseKey, log.PhaseDataset,
		log.SamplesKey, rows,
		log.FeaturesKey, len(cfg.Features),
		log.ColumnsKey, frame.Columns(),
	)

	split, err := model_selection.TrainTestSplit(X, y,
		model_selection.WithTestSize(cfg.TestSize),
		model_selection.WithRandomState(cfg.RandomState),
	)
	if err != nil {
		logger.Error("Split failed", err, log.PhaseKey, log.PhaseSplit)
		return nil, errors.Wrap(err, "split stage")
	}
	logger.Info("Dataset split",
		log.PhaseKey, log.PhaseSplit,
		log.TrainSamplesKey, len(split.TrainIndex),
		log.TestSamplesKey, len(split.TestIndex),
		log.TestSizeKey, cfg.TestSize,
		log.RandomSeedKey, cfg.RandomState,
	)

	model := linear_model.NewLinearRegression(
		linear_model.WithLRFitIntercept(cfg.FitIntercept),
		linear_model.WithStrictRank(cfg.StrictRank),
	)
	if err := model.Fit(split.XTrain, split.YTrain); err != nil {
		logger.Error("Training failed", err, log.PhaseKey, log.PhaseTraining)
		return nil, errors.Wrap(err, "training stage")
	}

	predictions, err := model.Predict(split.XTest)
	if err != nil {
		return nil, errors.Wrap(err, "testing stage")
	}
	mse, err := metrics.MSEMatrix(split.YTest, predictions)
	if err != nil {
		return nil, errors.Wrap(err, "testing stage")
	}
	rmse, err := metrics.RMSEMatrix(split.YTest, predictions)
	if err != nil {
		return nil, errors.Wrap(err, "testing stage")
	}
	mae, err := metrics.MAEMatrix(split.YTest, predictions)
	if err != nil {
		return nil, errors.Wrap(err, "testing stage")
	}

	logger.Info("Model evaluated",
		log.PhaseKey, log.PhaseTesting,
		log.OperationKey, log.OperationEvaluate,
		log.MSEKey, mse,
		log.RMSEKey, rmse,
		log.MAEKey, mae,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Result{
		Split:       split,
		Model:       model,
		Predictions: predictions,
		MSE:         mse,
		RMSE:        rmse,
		MAE:         mae,
	}, nil
}
