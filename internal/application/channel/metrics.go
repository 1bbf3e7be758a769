package channel

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts channel lifecycle events. All methods are nil-safe so the
// hub works without a registry (tests, dev tooling).
type Metrics struct {
	opens       prometheus.Counter
	completions prometheus.Counter
	rejections  prometheus.Counter
	timeouts    prometheus.Counter
}

// NewMetrics creates the channel counters.
func NewMetrics() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hipat",
			Subsystem: "channel",
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		opens:       counter("opens_total", "Tool channels opened."),
		completions: counter("completions_total", "Tool runs completed with a recorded submission."),
		rejections:  counter("rejections_total", "Frame messages dropped by the acceptance predicate."),
		timeouts:    counter("timeouts_total", "Frame loads that hit the deadline."),
	}
}

// Collectors returns the counters for registry registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.opens, m.completions, m.rejections, m.timeouts}
}

func (m *Metrics) incOpen() {
	if m != nil {
		m.opens.Inc()
	}
}

func (m *Metrics) incCompletion() {
	if m != nil {
		m.completions.Inc()
	}
}

func (m *Metrics) incRejection() {
	if m != nil {
		m.rejections.Inc()
	}
}

func (m *Metrics) incTimeout() {
	if m != nil {
		m.timeouts.Inc()
	}
}
