package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_import_rows_total",
		Help: "Processed workbook rows by sheet and outcome.",
	}, []string{"sheet", "result"})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_import_duration_seconds",
		Help:    "Wall time of a full workbook import.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
