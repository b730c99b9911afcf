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
	"github.com/fishbeet/pke/internal/ngram"
	"github.com/fishbeet/pke/internal/stem"
	"github.com/fishbeet/pke/pkg/config"
	pkgerrors "github.com/fishbeet/pke/pkg/errors"
	"github.com/fishbeet/pke/pkg/health"
	"github.com/fishbeet/pke/pkg/logger"
	"github.com/fishbeet/pke/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	inputDir := flag.String("input", "", "corpus input directory (overrides config)")
	outputFile := flag.String("output", "", "frequency table output path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Corpus.InputDir = *inputDir
	}
	if *outputFile != "" {
		cfg.Frequencies.OutputFile = *outputFile
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err := run(cfg); err != nil {
		slog.Error("dfbuild failed", "error", err)
		os.Exit(pkgerrors.ExitCode(err))
	}
}

func run(cfg *config.Config) error {
	if cfg.Corpus.InputDir == "" {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "corpus input directory must be set")
	}
	if cfg.Frequencies.OutputFile == "" {
		return pkgerrors.New(pkgerrors.ErrConfiguration, "frequency output file must be set")
	}

	stemmer, err := stem.New(cfg.Corpus.Stemmer, cfg.Corpus.Language)
	if err != nil {
		return err
	}
	stops, err := ngram.BuildStoplist(cfg.Ngrams.UseDefaults(), cfg.Ngrams.Stoplist, cfg.Ngrams.StoplistFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		checker := health.NewChecker()
		checker.Register("corpus", health.DirCheck(cfg.Corpus.InputDir))
		shutdown := metrics.StartServer(cfg.Metrics.Port, checker)
		defer shutdown(context.Background())
	}

	files, err := corpus.List(cfg.Corpus.InputDir, cfg.Corpus.Extension)
	if err != nil {
		return err
	}
	slog.Info("computing document frequencies",
		"input", cfg.Corpus.InputDir,
		"documents", len(files),
		"n", cfg.Ngrams.N,
		"workers", cfg.Pipeline.Workers,
	)

	readOpts := corpus.ReadOptions{
		Format:         cfg.Corpus.Format,
		UseLemmas:      cfg.Corpus.UseLemmas,
		Stemmer:        stemmer,
		TokenSeparator: cfg.Corpus.TokenSeparator,
	}
	agg, err := df.NewAggregator(cfg.Ngrams.N, stops, readOpts, cfg.Pipeline.Workers, m)
	if err != nil {
		return err
	}
	table, documentCount, err := agg.Run(ctx, files)
	if err != nil {
		return err
	}

	if err := df.Write(cfg.Frequencies.OutputFile, table, documentCount, cfg.Frequencies.Delimiter); err != nil {
		return err
	}
	slog.Info("frequency table written",
		"path", cfg.Frequencies.OutputFile,
		"keys", len(table),
		"documents", documentCount,
	)
	return nil
}
