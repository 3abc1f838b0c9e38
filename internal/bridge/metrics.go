package bridge

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts relay outcomes per destination topic.
type Metrics struct {
	mu sync.Mutex

	relayedTotal       *prometheus.CounterVec
	receiveErrorsTotal *prometheus.CounterVec
	publishErrorsTotal *prometheus.CounterVec
	publishSeconds     *prometheus.HistogramVec

	registerer prometheus.Registerer
	registered bool
}

func newCounterVec(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ros2bridge",
			Subsystem: "bridge",
			Name:      name,
			Help:      help,
		},
		[]string{"topic"},
	)
}

// NewMetrics creates the bridge collectors. A nil registerer uses the
// Prometheus default registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		registerer:         registerer,
		relayedTotal:       newCounterVec("relayed_total", "Messages published to the destination topic"),
		receiveErrorsTotal: newCounterVec("receive_errors_total", "Source messages that could not be received or decoded"),
		publishErrorsTotal: newCounterVec("publish_errors_total", "Envelopes the destination transport rejected"),
		publishSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ros2bridge",
				Subsystem: "bridge",
				Name:      "publish_duration_seconds",
				Help:      "Time spent publishing one envelope",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"topic"},
		),
	}
}

// Register registers the collectors. When an identical collector is already
// registered, Metrics records into the existing one instead.
func (m *Metrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	for _, counter := range []**prometheus.CounterVec{
		&m.relayedTotal,
		&m.receiveErrorsTotal,
		&m.publishErrorsTotal,
	} {
		existing, err := m.register(*counter)
		if err != nil {
			return err
		}
		if vec, ok := existing.(*prometheus.CounterVec); ok {
			*counter = vec
		}
	}

	existing, err := m.register(m.publishSeconds)
	if err != nil {
		return err
	}
	if vec, ok := existing.(*prometheus.HistogramVec); ok {
		m.publishSeconds = vec
	}

	m.registered = true
	return nil
}

// register returns the already registered collector, or nil when c itself
// was registered.
func (m *Metrics) register(c prometheus.Collector) (prometheus.Collector, error) {
	err := m.registerer.Register(c)
	if err == nil {
		return nil, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return already.ExistingCollector, nil
	}
	return nil, err
}

func (m *Metrics) relayed(topic string, took time.Duration) {
	if m == nil {
		return
	}
	m.relayedTotal.WithLabelValues(topic).Inc()
	m.publishSeconds.WithLabelValues(topic).Observe(took.Seconds())
}

func (m *Metrics) receiveError(topic string) {
	if m == nil {
		return
	}
	m.receiveErrorsTotal.WithLabelValues(topic).Inc()
}

func (m *Metrics) publishError(topic string, took time.Duration) {
	if m == nil {
		return
	}
	m.publishErrorsTotal.WithLabelValues(topic).Inc()
	m.publishSeconds.WithLabelValues(topic).Observe(took.Seconds())
}
