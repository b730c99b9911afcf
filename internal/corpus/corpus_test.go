package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fishbeet/pke/internal/stem"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
)

const corenlpSample = `<root><document><sentences>
<sentence id="1"><tokens>
<token id="1"><word>Neural</word><lemma>neural</lemma></token>
<token id="2"><word>networks</word><lemma>network</lemma></token>
</tokens></sentence>
<sentence id="2"><tokens>
<token id="1"><word>They</word><lemma>they</lemma></token>
<token id="2"><word>generalize</word><lemma>generalize</lemma></token>
</tokens></sentence>
</sentences></document></root>`

func TestDocID(t *testing.T) {
	cases := map[string]string{
		"/corpus/train/C-41.xml": "C-41",
		"doc7.txt":               "doc7",
		"a/b/archive.tar.gz":     "archive.tar",
		"noext":                  "noext",
	}
	for path, want := range cases {
		if got := DocID(path); got != want {
			t.Errorf("DocID(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestReadCoreNLPWithLemmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte(corenlpSample), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadDocument(path, ReadOptions{Format: "corenlp", UseLemmas: true})
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if doc.ID != "doc" {
		t.Errorf("ID = %q, want %q", doc.ID, "doc")
	}
	if len(doc.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(doc.Sentences))
	}
	first := doc.Sentences[0]
	if first.Length() != 2 {
		t.Fatalf("sentence length = %d, want 2", first.Length())
	}
	if first.Words[0] != "Neural" {
		t.Errorf("surface form should be preserved, got %q", first.Words[0])
	}
	if first.Stems[1] != "network" {
		t.Errorf("lemma should win with UseLemmas, got %q", first.Stems[1])
	}
}

func TestReadCoreNLPWithStemmer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte(corenlpSample), 0644); err != nil {
		t.Fatal(err)
	}
	stub := stem.Func(func(w string) string { return strings.TrimSuffix(w, "s") })
	doc, err := ReadDocument(path, ReadOptions{Format: "corenlp", Stemmer: stub})
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if got := doc.Sentences[0].Stems[1]; got != "network" {
		t.Errorf("stemmer should apply to lowercased word, got %q", got)
	}
}

func TestReadPreprocessed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	content := "The/DT reactor/NN runs/VBZ\nIt/PRP overheats/VBZ\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadDocument(path, ReadOptions{
		Format:         "preprocessed",
		TokenSeparator: "/",
		Stemmer:        stem.Func(strings.ToLower),
	})
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(doc.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(doc.Sentences))
	}
	first := doc.Sentences[0]
	if first.Words[0] != "The" || first.Words[1] != "reactor" {
		t.Errorf("tags should be stripped: %v", first.Words)
	}
	if first.Stems[2] != "runs" {
		t.Errorf("stems should be lowercased words under identity stemmer: %v", first.Stems)
	}
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := ReadDocument("whatever.bin", ReadOptions{Format: "parquet"})
	if !errors.Is(err, pkgerrors.ErrConfiguration) {
		t.Fatalf("got %v, want configuration error", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "absent.xml"), ReadOptions{Format: "corenlp"})
	if !errors.Is(err, pkgerrors.ErrDocumentRead) {
		t.Fatalf("got %v, want document read error", err)
	}
}

func TestListIsSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.xml", "a.xml", "b.xml", "ignored.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := List(dir, "xml")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i, want := range []string{"a.xml", "b.xml", "c.xml"} {
		if filepath.Base(files[i]) != want {
			t.Errorf("files[%d] = %q, want %q", i, filepath.Base(files[i]), want)
		}
	}
}
