package corpus

import (
	"bufio"
	"os"
	"strings"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// readPreprocessed parses pre-tagged text: one sentence per line, tokens
// separated by spaces, each token carrying its part-of-speech tag after the
// token separator ("word/TAG" with the default separator). The tag is split
// on the last separator occurrence so words containing the separator survive.
func readPreprocessed(path string, opts ReadOptions) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "opening preprocessed file: %v", err)
	}
	defer f.Close()

	sep := opts.TokenSeparator
	if sep == "" {
		sep = "/"
	}

	var sentences []Sentence
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		sent := Sentence{
			Words: make([]string, 0, len(fields)),
			Stems: make([]string, 0, len(fields)),
		}
		for _, field := range fields {
			word := field
			if i := strings.LastIndex(field, sep); i > 0 {
				word = field[:i]
			}
			sent.Words = append(sent.Words, word)
			sent.Stems = append(sent.Stems, normalize(word, "", opts))
		}
		sentences = append(sentences, sent)
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "scanning preprocessed file: %v", err)
	}
	return sentences, nil
}
