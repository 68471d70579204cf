// Package log defines standard attribute keys for pipeline operations.
//
// Using these keys keeps log output consistent across the dataset, splitter,
// trainer and evaluator stages. Keys follow a hierarchical naming convention
// ("model.name", "data.samples") so that logs can be filtered by prefix.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "split", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	// Examples: "linear_model", "model_selection", "pipeline"
	ComponentKey = "ml.component"

	// PhaseKey indicates the pipeline stage.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// TrainSamplesKey and TestSamplesKey record split sizes.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// ColumnsKey lists column names of a dataset.
	ColumnsKey = "data.columns"
)

// Model state and metrics
const (
	// RankKey records the effective rank of the design matrix.
	RankKey = "model.rank"

	// CoefKey and InterceptKey record fitted parameters.
	CoefKey      = "model.coef"
	InterceptKey = "model.intercept"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MSEKey, RMSEKey, MAEKey and R2ScoreKey record evaluation metrics.
	MSEKey     = "metrics.mse"
	RMSEKey    = "metrics.rmse"
	MAEKey     = "metrics.mae"
	R2ScoreKey = "metrics.r2_score"
)

// Error and Configuration Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// TestSizeKey records the requested test fraction.
	TestSizeKey = "config.test_size"
)

// Standard attribute value constants.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationScore    = "score"
	OperationSplit    = "split"
	OperationEvaluate = "evaluate"

	PhaseDataset  = "dataset"
	PhaseSplit    = "split"
	PhaseTraining = "training"
	PhaseTesting  = "testing"
	PhaseReport   = "report"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInsufficientData  = "INSUFFICIENT_DATA"
	ErrorDegenerateFit     = "DEGENERATE_FIT"
	ErrorInvalidInput      = "INVALID_INPUT"
)
