package corpus

import (
	"os"

	prose "github.com/jdkato/prose/v2"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

// readText loads a raw UTF-8 text file, segmenting sentences and tokenizing
// with prose. No lemmas are available in this format; stems always come from
// the configured stemmer.
func readText(path string, opts ReadOptions) ([]Sentence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "reading text file: %v", err)
	}

	doc, err := prose.NewDocument(string(data),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "segmenting text: %v", err)
	}

	var sentences []Sentence
	for _, ps := range doc.Sentences() {
		sd, err := prose.NewDocument(ps.Text,
			prose.WithSegmentation(false),
			prose.WithTagging(false),
			prose.WithExtraction(false),
		)
		if err != nil {
			return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "tokenizing sentence: %v", err)
		}
		tokens := sd.Tokens()
		if len(tokens) == 0 {
			continue
		}
		sent := Sentence{
			Words: make([]string, 0, len(tokens)),
			Stems: make([]string, 0, len(tokens)),
		}
		for _, tok := range tokens {
			sent.Words = append(sent.Words, tok.Text)
			sent.Stems = append(sent.Stems, normalize(tok.Text, "", opts))
		}
		sentences = append(sentences, sent)
	}
	return sentences, nil
}
