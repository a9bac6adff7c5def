package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	feedbackRequestsTotal           atomic.Uint64
	feedbackRemoteSuccessTotal      atomic.Uint64
	feedbackRemoteFailureTotal      atomic.Uint64
	feedbackLocalFallbackTotal      atomic.Uint64
	feedbackValidationFailuresTotal atomic.Uint64

	feedbackDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 15000})
)

// IncFeedbackRequest counts an accepted analysis request.
func IncFeedbackRequest() {
	feedbackRequestsTotal.Add(1)
}

// IncRemoteSuccess counts a report served by the remote analyzer.
func IncRemoteSuccess() {
	feedbackRemoteSuccessTotal.Add(1)
}

// IncRemoteFailure counts a failed remote attempt.
func IncRemoteFailure() {
	feedbackRemoteFailureTotal.Add(1)
}

// IncLocalFallback counts a report produced by the local pipeline.
func IncLocalFallback() {
	feedbackLocalFallbackTotal.Add(1)
}

// IncValidationFailure counts a request rejected before analysis.
func IncValidationFailure() {
	feedbackValidationFailuresTotal.Add(1)
}

// ObserveFeedbackDurationMs records an analysis duration in milliseconds.
func ObserveFeedbackDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	feedbackDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "feedback_requests_total", "Total analysis requests accepted", feedbackRequestsTotal.Load())
	writeCounter(&buf, "feedback_remote_success_total", "Reports served by the remote analyzer", feedbackRemoteSuccessTotal.Load())
	writeCounter(&buf, "feedback_remote_failure_total", "Failed remote analyzer attempts", feedbackRemoteFailureTotal.Load())
	writeCounter(&buf, "feedback_local_fallback_total", "Reports produced by the local pipeline", feedbackLocalFallbackTotal.Load())
	writeCounter(&buf, "feedback_validation_failures_total", "Requests rejected by validation", feedbackValidationFailuresTotal.Load())
	writeHistogram(&buf, "feedback_duration_ms", "Analysis duration in milliseconds", feedbackDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
