// Package ngram enumerates stoplist-filtered n-gram spans from sentences.
// Spans are filtered on lowercase surface words (stoplists are authored
// against natural word forms) while the emitted canonical keys are built from
// stems, collapsing surface variants for frequency counting.
package ngram

import (
	"strings"

	"github.com/fishbeet/pke/internal/corpus"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// Enumerate returns the canonical keys of all spans of 1..n tokens in the
// sentence whose surface words do not intersect the stoplist. A canonical key
// is the span's stems lowercased and joined with single spaces.
//
// A nil stoplist is a configuration error; pass an empty Stoplist to disable
// filtering. A non-positive n yields no spans.
func Enumerate(sent corpus.Sentence, n int, stops Stoplist) (map[string]struct{}, error) {
	if stops == nil {
		return nil, pkgerrors.New(pkgerrors.ErrConfiguration, "stoplist must be provided")
	}

	keys := make(map[string]struct{})
	if n <= 0 {
		return keys, nil
	}

	length := sent.Length()
	skip := n
	if length < skip {
		skip = length
	}

	lower := make([]string, length)
	for i, w := range sent.Words {
		lower[i] = strings.ToLower(w)
	}

	for j := 0; j < length; j++ {
		for k := j + 1; k <= j+skip && k <= length; k++ {
			// A single stoplisted token anywhere in [j,k) rejects the span.
			if containsAny(lower[j:k], stops) {
				continue
			}
			key := strings.ToLower(strings.Join(sent.Stems[j:k], " "))
			keys[key] = struct{}{}
		}
	}
	return keys, nil
}

func containsAny(words []string, stops Stoplist) bool {
	for _, w := range words {
		if stops.Contains(w) {
			return true
		}
	}
	return false
}
