// Package metrics defines the Prometheus metric collectors used across the
// pipeline and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	DocumentsProcessed prometheus.Counter
	DocumentsSkipped   prometheus.Counter
	NgramsObserved     prometheus.Counter
	UniqueKeys         prometheus.Gauge
	TrainingInstances  prometheus.Counter
	PositiveLabels     prometheus.Counter
	DocumentDuration   prometheus.Histogram
}

// New creates and registers all pipeline metrics.
func New() *Metrics {
	m := &Metrics{
		DocumentsProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pke_documents_processed_total",
				Help: "Total number of corpus documents successfully processed.",
			},
		),
		DocumentsSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pke_documents_skipped_total",
				Help: "Total number of corpus documents skipped due to read errors.",
			},
		),
		NgramsObserved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pke_ngrams_observed_total",
				Help: "Total number of n-gram keys observed across documents (per-document unique).",
			},
		),
		UniqueKeys: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pke_unique_ngram_keys",
				Help: "Number of distinct n-gram keys in the frequency table.",
			},
		),
		TrainingInstances: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pke_training_instances_total",
				Help: "Total number of training instances assembled.",
			},
		),
		PositiveLabels: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pke_positive_labels_total",
				Help: "Total number of training instances labeled as reference keyphrases.",
			},
		),
		DocumentDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pke_document_processing_seconds",
				Help:    "Per-document processing latency in seconds.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}

	prometheus.MustRegister(
		m.DocumentsProcessed,
		m.DocumentsSkipped,
		m.NgramsObserved,
		m.UniqueKeys,
		m.TrainingInstances,
		m.PositiveLabels,
		m.DocumentDuration,
	)
	return m
}

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
