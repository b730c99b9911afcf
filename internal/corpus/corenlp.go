package corpus

import (
	"encoding/xml"
	"os"

	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

type corenlpToken struct {
	Word  string `xml:"word"`
	Lemma string `xml:"lemma"`
}

type corenlpSentence struct {
	Tokens []corenlpToken `xml:"tokens>token"`
}

type corenlpRoot struct {
	Sentences []corenlpSentence `xml:"document>sentences>sentence"`
}

// readCoreNLP parses a Stanford CoreNLP XML annotation file. Word stems come
// from the <lemma> elements when lemmas are requested, otherwise from the
// configured stemmer applied to the <word> surface forms.
func readCoreNLP(path string, opts ReadOptions) ([]Sentence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "reading corenlp file: %v", err)
	}
	var root corenlpRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, pkgerrors.InFile(pkgerrors.ErrDocumentRead, path, 0, "parsing corenlp xml: %v", err)
	}

	sentences := make([]Sentence, 0, len(root.Sentences))
	for _, xs := range root.Sentences {
		if len(xs.Tokens) == 0 {
			continue
		}
		sent := Sentence{
			Words: make([]string, 0, len(xs.Tokens)),
			Stems: make([]string, 0, len(xs.Tokens)),
		}
		for _, tok := range xs.Tokens {
			sent.Words = append(sent.Words, tok.Word)
			sent.Stems = append(sent.Stems, normalize(tok.Word, tok.Lemma, opts))
		}
		sentences = append(sentences, sent)
	}
	return sentences, nil
}
