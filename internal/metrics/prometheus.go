// Package metrics provides Prometheus metrics for feed loading and the inspection API
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gtfsreader.onebusaway.org/gtfs"
)

var (
	// Decoding metrics
	RowsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gtfs_rows_decoded_total",
			Help: "Total number of rows decoded into records",
		},
		[]string{"feed", "file"},
	)

	RowErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gtfs_row_errors_total",
			Help: "Total number of rows skipped because they failed to decode",
		},
		[]string{"feed", "file"},
	)

	FileDecodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gtfs_file_decode_duration_seconds",
			Help:    "Time taken to decode one feed file",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"feed", "file"},
	)

	// Load metrics
	FeedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gtfs_feed_loads_total",
			Help: "Total number of feed load attempts",
		},
		[]string{"feed", "status"},
	)

	FeedLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gtfs_feed_load_duration_seconds",
			Help:    "Time taken to fetch and assemble a feed",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"feed"},
	)

	FeedRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gtfs_feed_records",
			Help: "Number of records held for each file of the current feed",
		},
		[]string{"feed", "file"},
	)

	// API metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gtfs_http_requests_total",
			Help: "Total number of inspection API requests",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gtfs_http_request_duration_seconds",
			Help:    "Duration of inspection API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gtfs_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// FeedMetrics records metrics for one named feed
type FeedMetrics struct {
	feed string
}

func NewFeedMetrics(feed string) *FeedMetrics {
	return &FeedMetrics{feed: feed}
}

// ObserveFile records the outcome of decoding one file. It has the shape
// of a gtfs file observer.
func (m *FeedMetrics) ObserveFile(stats gtfs.FileStats) {
	if !stats.Present {
		return
	}
	file := stats.File.Base()
	RowsDecoded.WithLabelValues(m.feed, file).Add(float64(stats.Rows))
	RowErrors.WithLabelValues(m.feed, file).Add(float64(stats.RowErrors))
	FileDecodeDuration.WithLabelValues(m.feed, file).Observe(stats.Duration.Seconds())
}

// RecordLoad records a feed load attempt. counts is nil for failed loads.
func (m *FeedMetrics) RecordLoad(err error, counts map[string]int, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	FeedLoads.WithLabelValues(m.feed, status).Inc()
	FeedLoadDuration.WithLabelValues(m.feed).Observe(duration.Seconds())

	for file, n := range counts {
		FeedRecords.WithLabelValues(m.feed, file).Set(float64(n))
	}
}

// RecordRequest records one served API request
func RecordRequest(method string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
