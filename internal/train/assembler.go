// Package train assembles the labeled training set for the supervised
// keyphrase model and drives the external trainer. Documents fan out across a
// worker pool; per-worker results merge in corpus order so the instance and
// label arrays are reproducible.
package train

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/df"
	"github.com/fishbeet/pke/internal/model"
	"github.com/fishbeet/pke/internal/reference"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
	"github.com/fishbeet/pke/pkg/logger"
	"github.com/fishbeet/pke/pkg/metrics"
)

// Assembler builds parallel (instances, labels) arrays from a document
// collection, a reference set, and a candidate/feature model factory.
type Assembler struct {
	refs     reference.Set
	table    df.Table
	factory  model.Factory
	trainer  model.Trainer
	readOpts corpus.ReadOptions
	strict   bool
	workers  int
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Options configure an Assembler.
type Options struct {
	References reference.Set
	Table      df.Table // optional frequency table for feature weighting
	Factory    model.Factory
	Trainer    model.Trainer
	ReadOpts   corpus.ReadOptions
	Strict     bool // fail on documents missing from the reference set
	Workers    int
	Metrics    *metrics.Metrics
}

// Result holds the assembled parallel arrays. len(Instances) == len(Labels)
// always; Labels[i] is 1 when Instances[i]'s candidate is a reference
// keyphrase of its document.
type Result struct {
	Instances [][]float64
	Labels    []int
}

// New creates an Assembler.
func New(opts Options) (*Assembler, error) {
	if opts.Factory == nil {
		return nil, pkgerrors.New(pkgerrors.ErrConfiguration, "model factory must be provided")
	}
	if opts.Trainer == nil {
		return nil, pkgerrors.New(pkgerrors.ErrConfiguration, "trainer must be provided")
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Assembler{
		refs:     opts.References,
		table:    opts.Table,
		factory:  opts.Factory,
		trainer:  opts.Trainer,
		readOpts: opts.ReadOpts,
		strict:   opts.Strict,
		workers:  workers,
		metrics:  opts.Metrics,
		logger:   logger.WithComponent("train-assembler"),
	}, nil
}

type docResult struct {
	instances [][]float64
	labels    []int
}

// Assemble processes every file and returns the concatenated arrays in
// corpus iteration order. Unreadable documents are logged and skipped; a
// document absent from the reference set contributes all-zero labels unless
// strict mode is on, in which case assembly fails.
func (a *Assembler) Assemble(ctx context.Context, files []string) (*Result, error) {
	results := make([]*docResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			docID := corpus.DocID(file)
			if a.strict {
				if _, ok := a.refs[docID]; !ok {
					return pkgerrors.InFile(pkgerrors.ErrUnknownDocumentReference, file, 0,
						"document %s", docID)
				}
			}

			start := time.Now()
			res, err := a.assembleDocument(file, docID)
			if err != nil {
				if errors.Is(err, pkgerrors.ErrConfiguration) {
					return err
				}
				a.logger.Warn("skipping document", "document", docID, "error", err)
				if a.metrics != nil {
					a.metrics.DocumentsSkipped.Inc()
				}
				return nil
			}
			results[i] = res
			if a.metrics != nil {
				a.metrics.DocumentsProcessed.Inc()
				a.metrics.DocumentDuration.Observe(time.Since(start).Seconds())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{}
	positives := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		out.Instances = append(out.Instances, res.instances...)
		out.Labels = append(out.Labels, res.labels...)
		for _, label := range res.labels {
			positives += label
		}
	}
	if a.metrics != nil {
		a.metrics.TrainingInstances.Add(float64(len(out.Instances)))
		a.metrics.PositiveLabels.Add(float64(positives))
	}
	a.logger.Info("training set assembled",
		"instances", len(out.Instances),
		"positives", positives,
	)
	return out, nil
}

// assembleDocument runs the candidate/feature model on one document with
// fresh state and labels its instances against the reference set.
func (a *Assembler) assembleDocument(file, docID string) (*docResult, error) {
	m := a.factory()
	if err := m.ReadDocument(file, a.readOpts); err != nil {
		return nil, err
	}
	if err := m.CandidateSelection(); err != nil {
		return nil, err
	}
	if err := m.FeatureExtraction(a.table, true); err != nil {
		return nil, err
	}

	instances := m.Instances()
	res := &docResult{
		instances: make([][]float64, 0, len(instances)),
		labels:    make([]int, 0, len(instances)),
	}
	for _, inst := range instances {
		label := 0
		if a.refs.Contains(docID, inst.Candidate) {
			label = 1
		}
		res.instances = append(res.instances, inst.Features)
		res.labels = append(res.labels, label)
	}
	return res, nil
}

// Run assembles the training set and invokes the trainer with the parallel
// arrays and the output model path.
func (a *Assembler) Run(ctx context.Context, files []string, modelFile string) error {
	res, err := a.Assemble(ctx, files)
	if err != nil {
		return err
	}
	a.logger.Info("writing model", "path", modelFile)
	return a.trainer.Train(res.Instances, res.Labels, modelFile)
}
