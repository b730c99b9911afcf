// Package config loads and validates pipeline configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Corpus, Ngrams, Frequencies, Reference, Training, etc.).
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level pipeline configuration.
type Config struct {
	Corpus      CorpusConfig    `yaml:"corpus"`
	Ngrams      NgramConfig     `yaml:"ngrams"`
	Frequencies FrequencyConfig `yaml:"frequencies"`
	Reference   ReferenceConfig `yaml:"reference"`
	Training    TrainingConfig  `yaml:"training"`
	Pipeline    PipelineConfig  `yaml:"pipeline"`
	Logging     LoggingConfig   `yaml:"logging"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}

// CorpusConfig describes the input document collection and how its files are
// turned into sentences.
type CorpusConfig struct {
	InputDir       string `yaml:"inputDir"`
	Extension      string `yaml:"extension"`
	Format         string `yaml:"format"`
	UseLemmas      bool   `yaml:"useLemmas"`
	Stemmer        string `yaml:"stemmer"`
	Language       string `yaml:"language"`
	TokenSeparator string `yaml:"tokenSeparator"`
}

// NgramConfig controls n-gram enumeration. When StoplistFile and Stoplist are
// both empty the built-in English stoplist is used unless UseDefaultStoplist
// is explicitly disabled.
type NgramConfig struct {
	N                  int      `yaml:"n"`
	Stoplist           []string `yaml:"stoplist"`
	StoplistFile       string   `yaml:"stoplistFile"`
	UseDefaultStoplist *bool    `yaml:"useDefaultStoplist"`
}

// FrequencyConfig controls the document-frequency table output. A ".gz"
// suffix on OutputFile selects gzip compression.
type FrequencyConfig struct {
	OutputFile string `yaml:"outputFile"`
	Delimiter  string `yaml:"delimiter"`
}

// ReferenceConfig describes the reference keyphrase annotation file.
type ReferenceConfig struct {
	File          string `yaml:"file"`
	SepDocID      string `yaml:"sepDocId"`
	SepKeyphrases string `yaml:"sepKeyphrases"`
	Stemming      bool   `yaml:"stemming"`
}

// TrainingConfig controls supervised training-set assembly. DFFile optionally
// points at a previously computed frequency table used for feature weighting.
type TrainingConfig struct {
	ModelFile string `yaml:"modelFile"`
	DFFile    string `yaml:"dfFile"`
	Strict    bool   `yaml:"strict"`
}

// PipelineConfig controls the per-document worker pool.
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint served during long
// corpus runs.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// UseDefaults reports whether the built-in stoplist should seed the stoplist.
func (n NgramConfig) UseDefaults() bool {
	return n.UseDefaultStoplist == nil || *n.UseDefaultStoplist
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaultConfig returns a Config matching the historical defaults of the
// pipeline (CoreNLP XML input, tab-delimited trigram table, ':' and ','
// reference separators).
func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Extension:      "xml",
			Format:         "corenlp",
			Stemmer:        "porter",
			Language:       "english",
			TokenSeparator: "/",
		},
		Ngrams: NgramConfig{
			N: 3,
		},
		Frequencies: FrequencyConfig{
			Delimiter: "\t",
		},
		Reference: ReferenceConfig{
			SepDocID:      ":",
			SepKeyphrases: ",",
		},
		Pipeline: PipelineConfig{
			Workers: runtime.NumCPU(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides overrides config values from PKE_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PKE_INPUT_DIR"); v != "" {
		cfg.Corpus.InputDir = v
	}
	if v := os.Getenv("PKE_EXTENSION"); v != "" {
		cfg.Corpus.Extension = v
	}
	if v := os.Getenv("PKE_FORMAT"); v != "" {
		cfg.Corpus.Format = v
	}
	if v := os.Getenv("PKE_STEMMER"); v != "" {
		cfg.Corpus.Stemmer = v
	}
	if v := os.Getenv("PKE_LANGUAGE"); v != "" {
		cfg.Corpus.Language = v
	}
	if v := os.Getenv("PKE_OUTPUT_FILE"); v != "" {
		cfg.Frequencies.OutputFile = v
	}
	if v := os.Getenv("PKE_REFERENCE_FILE"); v != "" {
		cfg.Reference.File = v
	}
	if v := os.Getenv("PKE_MODEL_FILE"); v != "" {
		cfg.Training.ModelFile = v
	}
	if v := os.Getenv("PKE_DF_FILE"); v != "" {
		cfg.Training.DFFile = v
	}
	if v := os.Getenv("PKE_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil && workers > 0 {
			cfg.Pipeline.Workers = workers
		}
	}
	if v := os.Getenv("PKE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PKE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("PKE_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
