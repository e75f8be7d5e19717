package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeProviderError = "provider_error"
	OutcomeMalformed     = "malformed_response"
)

type Metrics struct {
	Requests        *prometheus.CounterVec
	ProviderLatency prometheus.Histogram
	Tokens          *prometheus.CounterVec

	usage Usage
}

// New creates the relay collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "requests_total",
			Help:      "Conversation requests by outcome",
		}, []string{"outcome"}),
		ProviderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "relay",
			Name:      "provider_latency_seconds",
			Help:      "Latency of inference provider calls",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 9),
		}),
		Tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "tokens_total",
			Help:      "Tokens reported by the inference provider",
		}, []string{"direction"}),
	}
	reg.MustRegister(m.Requests, m.ProviderLatency, m.Tokens)
	return m
}

func (m *Metrics) ObserveRequest(outcome string) {
	m.Requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveProviderCall(d time.Duration) {
	m.ProviderLatency.Observe(d.Seconds())
}

// AddTokens records provider-reported token counts.
func (m *Metrics) AddTokens(input, output int) {
	m.Tokens.WithLabelValues("input").Add(float64(input))
	m.Tokens.WithLabelValues("output").Add(float64(output))
	m.usage.add(input, output)
}

// Usage returns the token totals seen by this process.
func (m *Metrics) Usage() (input, output int) {
	return m.usage.totals()
}

// Usage is an in-process token tally.
type Usage struct {
	mu     sync.Mutex
	input  int
	output int
}

func (u *Usage) add(input, output int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.input += input
	u.output += output
}

func (u *Usage) totals() (int, int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.input, u.output
}
