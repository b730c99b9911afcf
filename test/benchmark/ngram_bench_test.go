package benchmark

import (
	"fmt"
	"testing"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/ngram"
)

func syntheticSentence(length int) corpus.Sentence {
	words := make([]string, length)
	stems := make([]string, length)
	vocabulary := []string{
		"distributed", "keyphrase", "extraction", "pipeline", "corpus",
		"frequency", "the", "supervised", "training", "of", "candidate",
		"feature", "model", "document", "aggregation",
	}
	for i := range words {
		words[i] = vocabulary[i%len(vocabulary)]
		stems[i] = words[i]
	}
	return corpus.Sentence{Words: words, Stems: stems}
}

func BenchmarkEnumerate(b *testing.B) {
	stops := ngram.Default()
	for _, length := range []int{10, 50, 200} {
		sent := syntheticSentence(length)
		b.Run(fmt.Sprintf("tokens_%d", length), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				keys, err := ngram.Enumerate(sent, 3, stops)
				if err != nil {
					b.Fatal(err)
				}
				_ = keys
			}
		})
	}
}

func BenchmarkEnumerateVaryingOrder(b *testing.B) {
	stops := ngram.Default()
	sent := syntheticSentence(100)
	for _, n := range []int{1, 2, 3, 5} {
		b.Run(fmt.Sprintf("n_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				keys, err := ngram.Enumerate(sent, n, stops)
				if err != nil {
					b.Fatal(err)
				}
				_ = keys
			}
		})
	}
}

func BenchmarkEnumerateEmptyStoplist(b *testing.B) {
	stops := ngram.NewStoplist()
	sent := syntheticSentence(100)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		keys, err := ngram.Enumerate(sent, 3, stops)
		if err != nil {
			b.Fatal(err)
		}
		_ = keys
	}
}
