package model

import (
	"math"
	"strings"
	"unicode"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/df"
	"github.com/fishbeet/pke/internal/ngram"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// Kea is the bundled supervised model: candidates are 1..2-grams whose edge
// words are not stoplisted, features are TF x IDF and the relative position
// of the first occurrence, and training fits a Gaussian naive Bayes
// classifier.
type Kea struct {
	stops ngram.Stoplist

	doc         *corpus.Document
	totalTokens int
	order       []string
	candidates  map[string]*keaCandidate
	instances   []Instance
}

type keaCandidate struct {
	count       int
	firstOffset int
}

// maximum candidate span length, following Kea
const keaMaxSpan = 2

// NewKea creates a Kea model filtering candidates against the stoplist.
func NewKea(stops ngram.Stoplist) *Kea {
	return &Kea{
		stops:      stops,
		candidates: make(map[string]*keaCandidate),
	}
}

// KeaFactory returns a Factory producing a fresh Kea per document.
func KeaFactory(stops ngram.Stoplist) Factory {
	return func() Model { return NewKea(stops) }
}

func (k *Kea) ReadDocument(path string, opts corpus.ReadOptions) error {
	doc, err := corpus.ReadDocument(path, opts)
	if err != nil {
		return err
	}
	k.doc = doc
	k.totalTokens = 0
	for _, sent := range doc.Sentences {
		k.totalTokens += sent.Length()
	}
	return nil
}

// CandidateSelection collects 1..2-gram candidates keyed by their canonical
// stem form, in first-occurrence order, recording occurrence counts and first
// token offsets.
func (k *Kea) CandidateSelection() error {
	if k.stops == nil {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "stoplist must be provided")
	}
	if k.doc == nil {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "candidate selection before document read")
	}

	offset := 0
	for _, sent := range k.doc.Sentences {
		length := sent.Length()
		for j := 0; j < length; j++ {
			for span := 1; span <= keaMaxSpan && j+span <= length; span++ {
				if !k.admissible(sent, j, j+span) {
					continue
				}
				key := strings.ToLower(strings.Join(sent.Stems[j:j+span], " "))
				cand, seen := k.candidates[key]
				if !seen {
					cand = &keaCandidate{firstOffset: offset + j}
					k.candidates[key] = cand
					k.order = append(k.order, key)
				}
				cand.count++
			}
		}
		offset += length
	}
	return nil
}

// admissible rejects spans whose edge words are stoplisted or which contain
// non-word tokens.
func (k *Kea) admissible(sent corpus.Sentence, j, end int) bool {
	first := strings.ToLower(sent.Words[j])
	last := strings.ToLower(sent.Words[end-1])
	if k.stops.Contains(first) || k.stops.Contains(last) {
		return false
	}
	for _, w := range sent.Words[j:end] {
		if !wordLike(w) {
			return false
		}
	}
	return true
}

func wordLike(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// FeatureExtraction builds the [tfidf, first position] feature vector for
// every candidate. The table's sentinel entry supplies the corpus size N for
// the IDF term. In training mode the current document is itself part of the
// table, so its contribution is subtracted from both N and the candidate
// counts.
func (k *Kea) FeatureExtraction(table df.Table, training bool) error {
	n := table[df.SentinelKey]
	if training && n > 0 {
		n--
	}

	k.instances = make([]Instance, 0, len(k.order))
	for _, key := range k.order {
		cand := k.candidates[key]
		cf := table[key]
		if training && cf > 0 {
			cf--
		}
		idf := math.Log2(float64(n+1) / float64(cf+1))
		tfidf := float64(cand.count) * idf

		firstPos := 0.0
		if k.totalTokens > 0 {
			firstPos = float64(cand.firstOffset) / float64(k.totalTokens)
		}
		k.instances = append(k.instances, Instance{
			Candidate: key,
			Features:  []float64{tfidf, firstPos},
		})
	}
	return nil
}

// Instances returns the candidate instances in first-occurrence order.
func (k *Kea) Instances() []Instance {
	return k.instances
}

// Train fits a Gaussian naive Bayes classifier on the assembled arrays and
// persists it at modelFile.
func (k *Kea) Train(instances [][]float64, labels []int, modelFile string) error {
	nb, err := FitNaiveBayes(instances, labels)
	if err != nil {
		return err
	}
	return nb.Save(modelFile)
}
