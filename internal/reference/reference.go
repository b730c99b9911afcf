// Package reference loads human-annotated reference keyphrases used as ground
// truth when assembling a supervised training set.
package reference

import (
	"bufio"
	"os"
	"strings"

	"github.com/fishbeet/pke/internal/stem"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// Set maps document identifiers to their accepted keyphrases. Entries may
// contain duplicates; downstream matching treats the list as a membership
// set.
type Set map[string][]string

// Contains reports whether candidate is a reference keyphrase of docID. A
// document with no entry has an empty reference set.
func (s Set) Contains(docID, candidate string) bool {
	for _, ref := range s[docID] {
		if ref == candidate {
			return true
		}
	}
	return false
}

// Options control reference-file parsing.
type Options struct {
	SepDocID      string // separator between document id and keyphrase list, default ":"
	SepKeyphrases string // separator between keyphrases, default ","
	Stemming      bool   // replace entries with their per-word-stemmed form
	Stemmer       stem.Stemmer
}

// Load parses a UTF-8 reference file: one line per document,
// doc_id<sep>keyphrase_1<sep>keyphrase_2... A keyphrase containing '+'
// expands into one entry per '+'-joined variant; the split pieces are stored
// unmodified. With Stemming enabled every stored entry is replaced by its
// per-word-stemmed form, words rejoined with single spaces.
func Load(path string, opts Options) (Set, error) {
	if opts.SepDocID == "" {
		opts.SepDocID = ":"
	}
	if opts.SepKeyphrases == "" {
		opts.SepKeyphrases = ","
	}
	if opts.Stemming && opts.Stemmer == nil {
		return nil, pkgerrors.New(pkgerrors.ErrConfiguration, "reference stemming requested without a stemmer")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrMalformedReferenceLine, path, 0, "opening: %v", err)
	}
	defer f.Close()

	refs := make(Set)
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		docField, refField, ok := strings.Cut(line, opts.SepDocID)
		if !ok {
			return nil, pkgerrors.InFile(pkgerrors.ErrMalformedReferenceLine, path, lineNo,
				"missing document separator %q", opts.SepDocID)
		}
		docID := strings.TrimSpace(docField)
		for _, keyphrase := range strings.Split(strings.TrimSpace(refField), opts.SepKeyphrases) {
			if strings.Contains(keyphrase, "+") {
				refs[docID] = append(refs[docID], strings.Split(keyphrase, "+")...)
			} else {
				refs[docID] = append(refs[docID], keyphrase)
			}
		}
		if opts.Stemming {
			entries := refs[docID]
			for i, entry := range entries {
				words := strings.Fields(entry)
				for j, w := range words {
					words[j] = opts.Stemmer.Stem(w)
				}
				entries[i] = strings.Join(words, " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrMalformedReferenceLine, path, lineNo, "reading: %v", err)
	}
	return refs, nil
}
