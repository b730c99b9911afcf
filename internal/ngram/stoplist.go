package ngram

import (
	"bufio"
	"os"
	"strings"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// Stoplist is a set of lowercase surface words that reject any n-gram span
// containing them.
type Stoplist map[string]struct{}

// NewStoplist builds a Stoplist from words, lowercasing each.
func NewStoplist(words ...string) Stoplist {
	s := make(Stoplist, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the lowercase word is stoplisted.
func (s Stoplist) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Add inserts words into the stoplist, lowercasing each.
func (s Stoplist) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
}

// LoadStoplist reads a stoplist file: one word per line, '#' starting a
// comment line, blank lines ignored.
func LoadStoplist(path string) (Stoplist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrConfiguration, "opening stoplist file %s: %v", path, err)
	}
	defer f.Close()

	s := make(Stoplist)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrConfiguration, "reading stoplist file %s: %v", path, err)
	}
	return s, nil
}

// BuildStoplist assembles a stoplist from the built-in defaults (when
// requested), inline words, and an optional stoplist file.
func BuildStoplist(useDefaults bool, words []string, file string) (Stoplist, error) {
	var s Stoplist
	if useDefaults {
		s = Default()
	} else {
		s = make(Stoplist)
	}
	s.Add(words...)
	if file != "" {
		fromFile, err := LoadStoplist(file)
		if err != nil {
			return nil, err
		}
		for w := range fromFile {
			s[w] = struct{}{}
		}
	}
	return s, nil
}

// Default returns the built-in English stoplist.
func Default() Stoplist {
	s := make(Stoplist, len(defaultStopwords))
	for _, w := range defaultStopwords {
		s[w] = struct{}{}
	}
	return s
}

var defaultStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "cannot",
	"could", "did", "do", "does", "doing", "down", "during", "each", "few",
	"for", "from", "further", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "i", "if",
	"in", "into", "is", "it", "its", "itself", "me", "more", "most", "my",
	"myself", "no", "nor", "not", "of", "off", "on", "once", "only", "or",
	"other", "ought", "our", "ours", "ourselves", "out", "over", "own",
	"same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these",
	"they", "this", "those", "through", "to", "too", "under", "until", "up",
	"very", "was", "we", "were", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "you", "your", "yours",
	"yourself", "yourselves",
}
