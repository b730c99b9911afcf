// Package stem provides the pluggable word stemmer used for canonical n-gram
// keys and reference-keyphrase normalization. Stemmers are keyed by algorithm
// name and language; the snowball family is backed by
// github.com/kljensen/snowball.
package stem

import (
	"strings"

	"github.com/kljensen/snowball"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// Stemmer normalizes a single word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Func adapts a plain function to the Stemmer interface.
type Func func(word string) string

func (f Func) Stem(word string) string { return f(word) }

// New returns the stemmer registered under name for the given language.
// Recognized names are "porter" and "snowball" (both map to the snowball
// stemmer for the language) and "none" (lowercasing identity). An unknown
// name or an unsupported language is a configuration error.
func New(name, language string) (Stemmer, error) {
	switch strings.ToLower(name) {
	case "none", "identity":
		return Func(strings.ToLower), nil
	case "porter", "snowball":
		// snowball validates the language lazily, per call; probe it once so
		// misconfiguration surfaces before any document is read.
		if _, err := snowball.Stem("probe", language, false); err != nil {
			return nil, pkgerrors.Newf(pkgerrors.ErrConfiguration,
				"unsupported stemmer language %q: %v", language, err)
		}
		return &snowballStemmer{language: language}, nil
	default:
		return nil, pkgerrors.Newf(pkgerrors.ErrConfiguration, "unknown stemmer %q", name)
	}
}

type snowballStemmer struct {
	language string
}

func (s *snowballStemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, false)
	if err != nil {
		// The language was validated at construction; per-word failures can
		// only come from odd input, fall back to the lowercased surface form.
		return strings.ToLower(word)
	}
	return stemmed
}
