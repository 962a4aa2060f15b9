package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/opiekalabs/wypadek-core/internal/core/domain"
)

// Metrics exposes transcription counters. A nil *Metrics is a valid
// no-op receiver so the engine can run without a registry wired.
type Metrics struct {
	FieldsFilled      prometheus.Counter
	FieldsSkipped     prometheus.Counter
	FieldsErrored     prometheus.Counter
	FieldsTruncated   prometheus.Counter
	RunsTotal         prometheus.Counter
	RunsFatal         prometheus.Counter
	RunDurationSecond prometheus.Histogram
}

// New registers the transcription metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		FieldsFilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wypadek_transcription_fields_filled_total",
			Help: "Total number of form fields written successfully",
		}),
		FieldsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wypadek_transcription_fields_skipped_total",
			Help: "Total number of form fields skipped (unmapped or unsupported kind)",
		}),
		FieldsErrored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wypadek_transcription_fields_errored_total",
			Help: "Total number of form fields that failed to write",
		}),
		FieldsTruncated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wypadek_transcription_fields_truncated_total",
			Help: "Total number of form field values shortened to the field maximum",
		}),
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wypadek_transcription_runs_total",
			Help: "Total number of transcription runs",
		}),
		RunsFatal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wypadek_transcription_runs_fatal_total",
			Help: "Total number of runs aborted by a template load failure",
		}),
		RunDurationSecond: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wypadek_transcription_run_duration_seconds",
			Help:    "Duration of one transcription run",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveRun records the outcome of one completed run.
func (m *Metrics) ObserveRun(report domain.TranscriptionReport, duration time.Duration) {
	if m == nil {
		return
	}
	m.FieldsFilled.Add(float64(report.Filled))
	m.FieldsSkipped.Add(float64(report.Skipped))
	m.FieldsErrored.Add(float64(report.Errors))
	m.FieldsTruncated.Add(float64(len(report.Truncations)))
	m.RunsTotal.Inc()
	m.RunDurationSecond.Observe(duration.Seconds())
}

// ObserveFatal records a run that never produced a document.
func (m *Metrics) ObserveFatal() {
	if m == nil {
		return
	}
	m.RunsFatal.Inc()
}
