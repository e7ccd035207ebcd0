package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var settlementTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_settlements_total",
		Help: "Total settlement attempts by outcome",
	},
	[]string{"outcome"},
)

// RecordSettlement records one settlement attempt.
// outcome is one of: committed, replay, account_not_found,
// insufficient_funds, storage_error.
func RecordSettlement(outcome string) {
	settlementTotal.WithLabelValues(outcome).Inc()
}
