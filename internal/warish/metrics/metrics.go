package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the heir hierarchy engine. Tracks
// mutation counts, gating rejections, integrity signals and the hot-path
// durations (cascade delete, forest assembly).
type Metrics struct {
	HeirsCreated      prometheus.Counter
	HeirsUpdated      prometheus.Counter
	HeirsDeleted      prometheus.Counter
	GatingRejections  prometheus.Counter
	CascadeFailures   prometheus.Counter
	OrphansPromoted   prometheus.Counter
	CascadeDuration   prometheus.Histogram
	AssemblyDuration  prometheus.Histogram
	ForestCacheHits   prometheus.Counter
	ForestCacheMisses prometheus.Counter
}

// New creates a Metrics instance with all heir engine metrics registered.
func New() *Metrics {
	return &Metrics{
		HeirsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_heirs_created_total",
			Help: "Total number of heir records created",
		}),
		HeirsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_heirs_updated_total",
			Help: "Total number of heir records updated",
		}),
		HeirsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_heirs_deleted_total",
			Help: "Total number of heir records deleted, cascaded descendants included",
		}),
		GatingRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_gating_rejections_total",
			Help: "Create attempts rejected because the parent heir is still alive",
		}),
		CascadeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_cascade_failures_total",
			Help: "Cascading deletes that stopped part-way and reported a CascadeError",
		}),
		OrphansPromoted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_orphans_promoted_total",
			Help: "Records promoted to root level because their parent id did not resolve",
		}),
		CascadeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "warishd_cascade_delete_duration_seconds",
			Help:    "Duration of cascading delete operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		AssemblyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "warishd_forest_assembly_duration_seconds",
			Help:    "Duration of forest load and assembly, cache misses only",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ForestCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_forest_cache_hits_total",
			Help: "Forest loads served from the cache",
		}),
		ForestCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warishd_forest_cache_misses_total",
			Help: "Forest loads that had to hit the store",
		}),
	}
}

// ObserveCascade records the duration of a cascade delete.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveCascade(start time.Time) {
	m.CascadeDuration.Observe(time.Since(start).Seconds())
}

// ObserveAssembly records the duration of a store-backed forest load.
func (m *Metrics) ObserveAssembly(start time.Time) {
	m.AssemblyDuration.Observe(time.Since(start).Seconds())
}
