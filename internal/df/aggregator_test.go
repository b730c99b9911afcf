package df

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/ngram"
	"github.com/fishbeet/pke/internal/stem"
)

func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func identityOpts() corpus.ReadOptions {
	return corpus.ReadOptions{
		Format:  "preprocessed",
		Stemmer: stem.Func(strings.ToLower),
	}
}

func TestAggregatorCountsDocumentsNotOccurrences(t *testing.T) {
	dir := t.TempDir()
	// "machine learning" occurs three times in docA across two sentences and
	// once in docB: its document frequency must be 2.
	writeCorpusFile(t, dir, "docA.txt",
		"machine/NN learning/NN machine/NN learning/NN\nmachine/NN learning/NN\n")
	writeCorpusFile(t, dir, "docB.txt",
		"machine/NN learning/NN\n")

	agg, err := NewAggregator(2, ngram.NewStoplist(), identityOpts(), 2, nil)
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}
	files, err := corpus.List(dir, "txt")
	if err != nil {
		t.Fatal(err)
	}
	table, documentCount, err := agg.Run(context.Background(), files)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if documentCount != 2 {
		t.Errorf("documentCount = %d, want 2", documentCount)
	}
	if got := table["machine learning"]; got != 2 {
		t.Errorf(`table["machine learning"] = %d, want 2`, got)
	}
	if got := table["machine"]; got != 2 {
		t.Errorf(`table["machine"] = %d, want 2`, got)
	}
	for key, count := range table {
		if count > documentCount {
			t.Errorf("key %q count %d exceeds document count %d", key, count, documentCount)
		}
	}
}

func TestAggregatorSkipsUnreadableDocuments(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "good.xml",
		`<root><document><sentences><sentence><tokens>`+
			`<token><word>neural</word><lemma>neural</lemma></token>`+
			`<token><word>networks</word><lemma>network</lemma></token>`+
			`</tokens></sentence></sentences></document></root>`)
	writeCorpusFile(t, dir, "broken.xml", `<root><document><sentences>`)

	opts := corpus.ReadOptions{Format: "corenlp", UseLemmas: true}
	agg, err := NewAggregator(2, ngram.NewStoplist(), opts, 1, nil)
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}
	files, err := corpus.List(dir, "xml")
	if err != nil {
		t.Fatal(err)
	}
	table, documentCount, err := agg.Run(context.Background(), files)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if documentCount != 1 {
		t.Errorf("documentCount = %d, want 1 (broken document must not count)", documentCount)
	}
	if got := table["neural network"]; got != 1 {
		t.Errorf(`table["neural network"] = %d, want 1`, got)
	}
}

func TestAggregatorNilStoplist(t *testing.T) {
	if _, err := NewAggregator(2, nil, identityOpts(), 1, nil); err == nil {
		t.Fatal("nil stoplist should be rejected before any I/O")
	}
}

func TestAggregatorSameKeyAcrossSentencesCountsOnce(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "doc.txt", "reactor/NN\nreactor/NN\nreactor/NN\n")

	agg, err := NewAggregator(1, ngram.NewStoplist(), identityOpts(), 1, nil)
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}
	table, documentCount, err := agg.Run(context.Background(), []string{filepath.Join(dir, "doc.txt")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if documentCount != 1 || table["reactor"] != 1 {
		t.Errorf("got (%v, %d), want reactor=1 in 1 document", table, documentCount)
	}
}
