package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestsReceivedLabeledByMethod(t *testing.T) {
	RequestsReceived.WithLabelValues("GET").Inc()
	RequestsReceived.WithLabelValues("GET").Inc()
	RequestsReceived.WithLabelValues("POST").Inc()

	if got := testutil.ToFloat64(RequestsReceived.WithLabelValues("GET")); got != 2 {
		t.Fatalf("GET count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(RequestsReceived.WithLabelValues("POST")); got != 1 {
		t.Fatalf("POST count = %v, want 1", got)
	}
}

func TestMethodRejectedIncrements(t *testing.T) {
	before := testutil.ToFloat64(MethodRejected)
	MethodRejected.Inc()
	if got := testutil.ToFloat64(MethodRejected); got != before+1 {
		t.Fatalf("MethodRejected = %v, want %v", got, before+1)
	}
}

func TestQueueDepthSet(t *testing.T) {
	QueueDepth.Set(7)
	if got := testutil.ToFloat64(QueueDepth); got != 7 {
		t.Fatalf("QueueDepth = %v, want 7", got)
	}
	QueueDepth.Set(0)
	if got := testutil.ToFloat64(QueueDepth); got != 0 {
		t.Fatalf("QueueDepth = %v, want 0", got)
	}
}

func TestDispatchOutcomesLabels(t *testing.T) {
	before := testutil.ToFloat64(DispatchOutcomes.WithLabelValues(OutcomeMatched))
	DispatchOutcomes.WithLabelValues(OutcomeMatched).Inc()
	if got := testutil.ToFloat64(DispatchOutcomes.WithLabelValues(OutcomeMatched)); got != before+1 {
		t.Fatalf("DispatchOutcomes[matched] = %v, want %v", got, before+1)
	}
}

func TestDispatchDurationObserve(t *testing.T) {
	if got := testutil.CollectAndCount(DispatchDuration); got != 1 {
		t.Fatalf("DispatchDuration collector count = %d, want 1", got)
	}
	DispatchDuration.Observe(0.01)
}
