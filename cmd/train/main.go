package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fishbeet/pke/internal/corpus"
	"github.com/fishbeet/pke/internal/df"
	"github.com/fishbeet/pke/internal/model"
	"github.com/fishbeet/pke/internal/ngram"
	"github.com/fishbeet/pke/internal/reference"
	"github.com/fishbeet/pke/internal/stem"
	"github.com/fishbeet/pke/internal/train"
	"github.com/fishbeet/pke/pkg/config"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
	"github.com/fishbeet/pke/pkg/health"
	"github.com/fishbeet/pke/pkg/logger"
	"github.com/fishbeet/pke/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	inputDir := flag.String("input", "", "corpus input directory (overrides config)")
	referenceFile := flag.String("reference", "", "reference keyphrase file (overrides config)")
	modelFile := flag.String("model", "", "model output path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Corpus.InputDir = *inputDir
	}
	if *referenceFile != "" {
		cfg.Reference.File = *referenceFile
	}
	if *modelFile != "" {
		cfg.Training.ModelFile = *modelFile
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err := run(cfg); err != nil {
		slog.Error("train failed", "error", err)
		os.Exit(pkgerrors.ExitCode(err))
	}
}

func run(cfg *config.Config) error {
	if cfg.Corpus.InputDir == "" {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "corpus input directory must be set")
	}
	if cfg.Reference.File == "" {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "reference file must be set")
	}
	if cfg.Training.ModelFile == "" {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "model output file must be set")
	}

	stemmer, err := stem.New(cfg.Corpus.Stemmer, cfg.Corpus.Language)
	if err != nil {
		return err
	}
	stops, err := ngram.BuildStoplist(cfg.Ngrams.UseDefaults(), cfg.Ngrams.Stoplist, cfg.Ngrams.StoplistFile)
	if err != nil {
		return err
	}

	refs, err := reference.Load(cfg.Reference.File, reference.Options{
		SepDocID:      cfg.Reference.SepDocID,
		SepKeyphrases: cfg.Reference.SepKeyphrases,
		Stemming:      cfg.Reference.Stemming,
		Stemmer:       stemmer,
	})
	if err != nil {
		return err
	}

	// The raw load keeps the corpus-size sentinel in the table; feature
	// extraction reads it for the IDF term.
	var table df.Table
	if cfg.Training.DFFile != "" {
		table, err = df.Load(cfg.Training.DFFile, cfg.Frequencies.Delimiter)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		checker := health.NewChecker()
		checker.Register("corpus", health.DirCheck(cfg.Corpus.InputDir))
		checker.Register("reference", health.FileCheck(cfg.Reference.File))
		shutdown := metrics.StartServer(cfg.Metrics.Port, checker)
		defer shutdown(context.Background())
	}

	files, err := corpus.List(cfg.Corpus.InputDir, cfg.Corpus.Extension)
	if err != nil {
		return err
	}
	slog.Info("building supervised model",
		"input", cfg.Corpus.InputDir,
		"documents", len(files),
		"reference", cfg.Reference.File,
		"strict", cfg.Training.Strict,
	)

	kea := model.NewKea(stops)
	assembler, err := train.New(train.Options{
		References: refs,
		Table:      table,
		Factory:    model.KeaFactory(stops),
		Trainer:    kea,
		ReadOpts: corpus.ReadOptions{
			Format:         cfg.Corpus.Format,
			UseLemmas:      cfg.Corpus.UseLemmas,
			Stemmer:        stemmer,
			TokenSeparator: cfg.Corpus.TokenSeparator,
		},
		Strict:  cfg.Training.Strict,
		Workers: cfg.Pipeline.Workers,
		Metrics: m,
	})
	if err != nil {
		return err
	}

	if err := assembler.Run(ctx, files, cfg.Training.ModelFile); err != nil {
		return err
	}
	slog.Info("model written", "path", cfg.Training.ModelFile)
	return nil
}
