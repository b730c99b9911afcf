// Package corpus turns raw corpus files into ordered sentences exposing
// surface words and stems. Supported formats: CoreNLP XML ("corenlp"),
// pre-tagged word/TAG text ("preprocessed"), and raw text ("text") segmented
// and tokenized with prose.
package corpus

import (
	"path/filepath"
	"sort"
	"strings"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
	"github.com/fishbeet/pke/internal/stem"
)

// Sentence is an ordered token sequence with parallel surface and normalized
// forms. Immutable once produced.
type Sentence struct {
	Words []string
	Stems []string
}

// Length returns the token count.
func (s Sentence) Length() int { return len(s.Words) }

// Document is a loaded corpus file.
type Document struct {
	ID        string
	Path      string
	Sentences []Sentence
}

// ReadOptions selects the input format and the word normalization applied to
// produce the Stems sequence.
type ReadOptions struct {
	Format         string
	UseLemmas      bool
	Stemmer        stem.Stemmer
	TokenSeparator string
}

// ReadDocument loads one corpus file. An unknown format tag is a
// configuration error; any parse or I/O failure is a document read error
// naming the file.
func ReadDocument(path string, opts ReadOptions) (*Document, error) {
	var (
		sentences []Sentence
		err       error
	)
	switch opts.Format {
	case "corenlp":
		sentences, err = readCoreNLP(path, opts)
	case "preprocessed":
		sentences, err = readPreprocessed(path, opts)
	case "text", "raw":
		sentences, err = readText(path, opts)
	default:
		return nil, pkgerrors.Newf(pkgerrors.ErrConfiguration, "unknown document format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}
	return &Document{
		ID:        DocID(path),
		Path:      path,
		Sentences: sentences,
	}, nil
}

// DocID derives the document identifier from a path: the filename without
// directory and without the final extension.
func DocID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// List returns the corpus files under dir matching the extension, sorted
// lexicographically so corpus iteration order is stable.
func List(dir, extension string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*."+extension))
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrConfiguration, "listing corpus directory %s: %v", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// normalize produces the stem for one token. Lemmas, when requested and
// available, win over the stemmer; both paths lowercase.
func normalize(word, lemma string, opts ReadOptions) string {
	if opts.UseLemmas && lemma != "" {
		return strings.ToLower(lemma)
	}
	if opts.Stemmer != nil {
		return strings.ToLower(opts.Stemmer.Stem(strings.ToLower(word)))
	}
	return strings.ToLower(word)
}
