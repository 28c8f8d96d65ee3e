package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "corpus-learn/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CorpusConfig holds settings for corpus acquisition and streaming.
type CorpusConfig struct {
	HTTPConfig `yaml:",inline"`

	// DataDir is the directory holding the unpacked corpus files. When it
	// does not exist the archive is downloaded and unpacked there once.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ArchiveURL overrides the corpus download location. Empty selects the
	// canonical UCI archive.
	ArchiveURL string `json:"archive_url,omitempty" yaml:"archive_url,omitempty"`

	// Encoding is the declared text encoding of the corpus files
	// (default "latin-1").
	Encoding string `json:"encoding" yaml:"encoding"`

	// MaxRetries is the number of retry attempts for transient download
	// failures (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// TrainingConfig holds settings for the out-of-core training loop.
type TrainingConfig struct {
	// PositiveClass is the topic treated as the positive label
	// (default "acq").
	PositiveClass string `json:"positive_class" yaml:"positive_class"`

	// BatchSize is the number of documents pulled per minibatch
	// (default 1000). Peak memory during training is proportional to it.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// TrainSplit is the split label of documents used for fitting
	// (default "TRAIN").
	TrainSplit string `json:"train_split" yaml:"train_split"`

	// TestSplit is the split label of documents held out for scoring
	// (default "TEST").
	TestSplit string `json:"test_split" yaml:"test_split"`

	// NumFeatures is the width of the hashed feature space
	// (default 262144, i.e. 2^18).
	NumFeatures int `json:"num_features" yaml:"num_features"`

	// MaxTestDocs caps the held-out evaluation set (default 1000).
	MaxTestDocs int `json:"max_test_docs" yaml:"max_test_docs"`
}

// ReportConfig holds settings for training-run persistence.
type ReportConfig struct {
	// ReportDir is the directory containing the runs database and YAML
	// exports.
	ReportDir string `json:"report_dir" yaml:"report_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Corpus   CorpusConfig   `json:"corpus" yaml:"corpus"`
	Training TrainingConfig `json:"training" yaml:"training"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}
