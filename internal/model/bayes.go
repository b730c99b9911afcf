package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// sigmaFloor keeps degenerate per-class feature distributions usable.
const sigmaFloor = 1e-9

// NaiveBayes is a Gaussian naive Bayes classifier over real-valued feature
// vectors, serialized as JSON.
type NaiveBayes struct {
	Classes []ClassParams `json:"classes"`
}

// ClassParams holds the per-class prior and per-feature Gaussian parameters.
type ClassParams struct {
	Label   int       `json:"label"`
	Prior   float64   `json:"prior"`
	Means   []float64 `json:"means"`
	StdDevs []float64 `json:"stdDevs"`
}

// FitNaiveBayes estimates class priors and per-feature means and standard
// deviations from parallel instance/label arrays.
func FitNaiveBayes(instances [][]float64, labels []int) (*NaiveBayes, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("no training instances")
	}
	if len(instances) != len(labels) {
		return nil, fmt.Errorf("instance/label length mismatch: %d vs %d", len(instances), len(labels))
	}
	dims := len(instances[0])
	for i, inst := range instances {
		if len(inst) != dims {
			return nil, fmt.Errorf("instance %d has %d features, want %d", i, len(inst), dims)
		}
	}

	byLabel := make(map[int][][]float64)
	for i, inst := range instances {
		byLabel[labels[i]] = append(byLabel[labels[i]], inst)
	}
	order := make([]int, 0, len(byLabel))
	for label := range byLabel {
		order = append(order, label)
	}
	sort.Ints(order)

	nb := &NaiveBayes{Classes: make([]ClassParams, 0, len(order))}
	for _, label := range order {
		members := byLabel[label]
		params := ClassParams{
			Label:   label,
			Prior:   float64(len(members)) / float64(len(instances)),
			Means:   make([]float64, dims),
			StdDevs: make([]float64, dims),
		}
		col := make([]float64, len(members))
		for d := 0; d < dims; d++ {
			for i, inst := range members {
				col[i] = inst[d]
			}
			params.Means[d] = stat.Mean(col, nil)
			sigma := stat.StdDev(col, nil)
			if sigma < sigmaFloor || len(members) < 2 {
				sigma = sigmaFloor
			}
			params.StdDevs[d] = sigma
		}
		nb.Classes = append(nb.Classes, params)
	}
	return nb, nil
}

// Predict returns the label with the highest posterior for the feature
// vector.
func (nb *NaiveBayes) Predict(features []float64) int {
	best := 0
	bestScore := 0.0
	for i, class := range nb.Classes {
		score := logLikelihood(class, features)
		if i == 0 || score > bestScore {
			best = class.Label
			bestScore = score
		}
	}
	return best
}

func logLikelihood(class ClassParams, features []float64) float64 {
	score := math.Log(class.Prior)
	for d, x := range features {
		if d >= len(class.Means) {
			break
		}
		normal := distuv.Normal{Mu: class.Means[d], Sigma: class.StdDevs[d]}
		score += normal.LogProb(x)
	}
	return score
}

// Save writes the classifier as JSON to path, via a temp file renamed on
// success.
func (nb *NaiveBayes) Save(path string) error {
	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling model: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing model file %s: %w", tmpPath, err)
	}
	return os.Rename(tmpPath, path)
}

// LoadNaiveBayes reads a classifier persisted by Save.
func LoadNaiveBayes(path string) (*NaiveBayes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file %s: %w", path, err)
	}
	var nb NaiveBayes
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parsing model file %s: %w", path, err)
	}
	return &nb, nil
}
