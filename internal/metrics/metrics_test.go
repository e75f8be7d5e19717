package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest(OutcomeSuccess)
	m.ObserveRequest(OutcomeSuccess)
	m.ObserveRequest(OutcomeProviderError)

	if got := testutil.ToFloat64(m.Requests.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues(OutcomeProviderError)); got != 1 {
		t.Fatalf("expected 1 provider error, got %v", got)
	}
}

func TestAddTokensConcurrent(t *testing.T) {
	m := New(prometheus.NewRegistry())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.AddTokens(3, 2)
		}()
	}
	wg.Wait()

	in, out := m.Usage()
	if in != 150 || out != 100 {
		t.Fatalf("unexpected usage in=%d out=%d", in, out)
	}
	if got := testutil.ToFloat64(m.Tokens.WithLabelValues("output")); got != 100 {
		t.Fatalf("expected 100 output tokens, got %v", got)
	}
}

func TestProviderLatencyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveProviderCall(250 * time.Millisecond)

	if n := testutil.CollectAndCount(m.ProviderLatency); n != 1 {
		t.Fatalf("expected 1 histogram, got %d", n)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "relay_provider_latency_seconds" {
			found = true
		}
	}
	if !found {
		t.Fatalf("latency histogram not registered")
	}
}
