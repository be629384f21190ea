package session

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess     = "success"
	resultNilUser     = "nil_user"
	resultLoginFailed = "login_failed"
)

// Metrics records session activity.
type Metrics struct {
	creates       *prometheus.CounterVec
	clears        prometheus.Counter
	loginDuration prometheus.Observer
}

var (
	defaultMetricsOnce sync.Once
	defaultMetricsInst *Metrics
)

// DefaultMetrics returns the process-wide metrics registered with the default
// prometheus registerer.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetricsInst = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetricsInst
}

// NewMetrics creates session metrics registered with reg. A nil reg leaves the
// collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		creates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goatsession",
			Subsystem: "session",
			Name:      "creates_total",
			Help:      "Session create attempts, labeled by result",
		}, []string{"result"}),
		clears: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "goatsession",
			Subsystem: "session",
			Name:      "clears_total",
			Help:      "Sessions cleared",
		}),
		loginDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "goatsession",
			Subsystem: "session",
			Name:      "login_duration_seconds",
			Help:      "Duration of User.Login calls made by Create",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) recordCreate(result string) {
	if m == nil {
		return
	}
	m.creates.WithLabelValues(result).Inc()
}

func (m *Metrics) recordClear() {
	if m == nil {
		return
	}
	m.clears.Inc()
}

func (m *Metrics) timeLogin() func() {
	if m == nil {
		return func() {}
	}
	timer := prometheus.NewTimer(m.loginDuration)
	return func() {
		timer.ObserveDuration()
	}
}
