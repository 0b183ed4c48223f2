package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// Recorder holds the engine's prometheus collectors. A nil *Recorder is valid and
// records nothing, so services can be built without metrics.
type Recorder struct {
	entriesPosted       *prometheus.CounterVec
	rejections          *prometheus.CounterVec
	paymentsApplied     *prometheus.CounterVec
	settlementConflicts prometheus.Counter
	httpDuration        *prometheus.HistogramVec
}

// NewRecorder registers all collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		entriesPosted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_posted_total",
			Help:      "Journal entries committed, by journal and kind (entry or reversal).",
		}, []string{"journal", "kind"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_rejections_total",
			Help:      "Operations rejected with a domain error, by operation and error code.",
		}, []string{"operation", "code"}),
		paymentsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_applied_total",
			Help:      "Payments applied to invoices, by kind (payment or reversal).",
		}, []string{"kind"}),
		settlementConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_conflicts_total",
			Help:      "Optimistic settlement attempts that lost a race and were retried or surfaced.",
		}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (r *Recorder) EntryPosted(journal string, reversal bool) {
	if r == nil {
		return
	}
	kind := "entry"
	if reversal {
		kind = "reversal"
	}
	r.entriesPosted.WithLabelValues(journal, kind).Inc()
}

func (r *Recorder) Rejected(operation, code string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(operation, code).Inc()
}

func (r *Recorder) PaymentApplied(reversal bool) {
	if r == nil {
		return
	}
	kind := "payment"
	if reversal {
		kind = "reversal"
	}
	r.paymentsApplied.WithLabelValues(kind).Inc()
}

func (r *Recorder) SettlementConflict() {
	if r == nil {
		return
	}
	r.settlementConflicts.Inc()
}

// GinMiddleware observes the latency of every request under its route template.
func (r *Recorder) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if r == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
