// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitledger"

var (
	// RPCRequests counts finished RPCs by procedure and Connect code ("ok" on success).
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Number of RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// BalanceComputations counts engine runs by scope (group, personal, pair) and result.
	BalanceComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_computations_total",
		Help:      "Number of balance computations, by scope and result.",
	}, []string{"scope", "result"})

	// LedgerMembers observes how many members a computation spans.
	LedgerMembers = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_members",
		Help:      "Members per balance computation.",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})
)

// ObserveComputation records one engine run.
func ObserveComputation(scope string, members int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BalanceComputations.WithLabelValues(scope, result).Inc()
	LedgerMembers.Observe(float64(members))
}
