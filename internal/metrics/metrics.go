package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsTotal counts processed device reports by outcome
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udar_reports_total",
			Help: "Total number of device audit register reports processed",
		},
		[]string{"status"},
	)

	// RequestsTotal counts audit register requests by response code
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udar_requests_total",
			Help: "Total number of audit register requests",
		},
		[]string{"response_code"},
	)

	// RequestDuration tracks audit register request processing time
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "udar_request_duration_seconds",
			Help:    "Audit register request processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"response_code"},
	)

	// SummaryEntries counts entries applied to device summaries
	SummaryEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udar_summary_entries_total",
			Help: "Total number of audit register entries accumulated",
		},
		[]string{"operation"},
	)

	// DeviceRestarts counts sequence number decreases
	DeviceRestarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "udar_device_restarts_total",
			Help: "Total number of detected device restarts",
		},
	)

	// CrossDateReports counts reports whose business date is not the ingestion date
	CrossDateReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udar_cross_date_reports_total",
			Help: "Total number of reports for a business date other than today",
		},
		[]string{"kind"},
	)

	// DateMismatches counts reports whose transaction date is far from the business date
	DateMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "udar_date_mismatches_total",
			Help: "Total number of transaction/business date mismatches",
		},
	)

	// ExceptionWriteFailures counts failed writes to the exception tables
	ExceptionWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "udar_exception_write_failures_total",
			Help: "Total number of reports that could not be saved to the exception tables",
		},
	)

	// SweepDays counts sweep day runs by job and status
	SweepDays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udar_sweep_days_total",
			Help: "Total number of settlement days processed by sweeps",
		},
		[]string{"job", "status"},
	)

	// SweepRowsWritten counts rows written by sweeps
	SweepRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "udar_sweep_rows_written_total",
			Help: "Total number of snapshot rows written by sweeps",
		},
		[]string{"job"},
	)

	// SweepDuration tracks whole sweep duration
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "udar_sweep_duration_seconds",
			Help:    "Sweep duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"job", "outcome"},
	)

	// LastSweepSuccess tracks the unix time of the last sweep that wrote at least one day
	LastSweepSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "udar_last_sweep_success_timestamp_seconds",
			Help: "Unix time of the last successful sweep by job",
		},
		[]string{"job"},
	)
)
