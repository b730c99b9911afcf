// Package df aggregates corpus-wide n-gram document frequencies and
// serializes the resulting table. Document frequency is set-based: a key's
// count is the number of distinct documents it appears in, never the number
// of occurrences.
package df

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/ngram"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
	"github.com/fishbeet/pke/pkg/logger"
	"github.com/fishbeet/pke/pkg/metrics"
)

// Table maps canonical n-gram keys to document frequencies.
type Table map[string]int

// Aggregator folds per-document n-gram key sets into a frequency table. Safe
// for the concurrent fan-out in Run; all shared state is guarded by mu.
type Aggregator struct {
	n        int
	stops    ngram.Stoplist
	readOpts corpus.ReadOptions
	workers  int
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu       sync.Mutex
	presence map[string]map[string]struct{}
	docs     map[string]struct{}
}

// NewAggregator creates an Aggregator. A nil stoplist is rejected here so the
// configuration error surfaces before any document I/O begins.
func NewAggregator(n int, stops ngram.Stoplist, readOpts corpus.ReadOptions, workers int, m *metrics.Metrics) (*Aggregator, error) {
	if stops == nil {
		return nil, pkgerrors.New(pkgerrors.ErrConfiguration, "stoplist must be provided")
	}
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		n:        n,
		stops:    stops,
		readOpts: readOpts,
		workers:  workers,
		metrics:  m,
		logger:   logger.WithComponent("df-aggregator"),
		presence: make(map[string]map[string]struct{}),
		docs:     make(map[string]struct{}),
	}, nil
}

// Run reads every corpus file, extracts its union of n-gram keys, and merges
// presence into the table. Unreadable documents are logged and skipped and do
// not count toward the document count. Returns the frequency table and the
// number of documents processed.
func (a *Aggregator) Run(ctx context.Context, files []string) (Table, int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			doc, err := corpus.ReadDocument(file, a.readOpts)
			if err != nil {
				a.logger.Warn("skipping unreadable document", "document", file, "error", err)
				if a.metrics != nil {
					a.metrics.DocumentsSkipped.Inc()
				}
				return nil
			}

			keys := make(map[string]struct{})
			for _, sent := range doc.Sentences {
				sentKeys, err := ngram.Enumerate(sent, a.n, a.stops)
				if err != nil {
					return err
				}
				for key := range sentKeys {
					keys[key] = struct{}{}
				}
			}

			a.merge(doc.ID, keys)
			if a.metrics != nil {
				a.metrics.DocumentsProcessed.Inc()
				a.metrics.NgramsObserved.Add(float64(len(keys)))
				a.metrics.DocumentDuration.Observe(time.Since(start).Seconds())
			}
			a.logger.Debug("document aggregated", "document", doc.ID, "keys", len(keys))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	table := make(Table, len(a.presence))
	for key, docs := range a.presence {
		table[key] = len(docs)
	}
	if a.metrics != nil {
		a.metrics.UniqueKeys.Set(float64(len(table)))
	}
	return table, len(a.docs), nil
}

// merge records that docID contributes to the presence set of every key. A
// key seen in several sentences of the same document still counts once.
func (a *Aggregator) merge(docID string, keys map[string]struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for key := range keys {
		docs, ok := a.presence[key]
		if !ok {
			docs = make(map[string]struct{})
			a.presence[key] = docs
		}
		docs[docID] = struct{}{}
	}
	a.docs[docID] = struct{}{}
}
