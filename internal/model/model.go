// Package model defines the trainable candidate/feature collaborator consumed
// by training-set assembly, and ships a Kea-style default implementation.
package model

import (
	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/df"
)

// Instance pairs a candidate key with its feature vector.
type Instance struct {
	Candidate string
	Features  []float64
}

// Model selects keyphrase candidates from one document and extracts their
// feature vectors. Implementations must return Instances in a deterministic
// order so labels appended alongside stay index-aligned.
type Model interface {
	ReadDocument(path string, opts corpus.ReadOptions) error
	CandidateSelection() error
	FeatureExtraction(table df.Table, training bool) error
	Instances() []Instance
}

// Trainer fits a classifier from parallel instance/label arrays and persists
// it at the model path.
type Trainer interface {
	Train(instances [][]float64, labels []int, modelFile string) error
}

// Factory creates a fresh Model for one document. A new instance per document
// guarantees no candidate or feature state leaks across documents.
type Factory func() Model
