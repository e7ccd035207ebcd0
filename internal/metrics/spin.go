// Package metrics exposes Prometheus metrics for the spin and settlement
// paths.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	spinTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_spins_total",
			Help: "Total spin requests by result",
		},
		[]string{"result"},
	)

	spinDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slot_spin_duration_ms",
			Help:    "Spin request duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"result"},
	)

	spinWinAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slot_win_amount_total",
			Help: "Sum of win amounts paid out, in minor currency units",
		},
	)

	spinBetAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slot_bet_amount_total",
			Help: "Sum of bet amounts wagered, in minor currency units",
		},
	)
)

// RecordSpin records business metrics for one spin call.
// result is one of: win, lose, rejected, failed.
func RecordSpin(result string, started time.Time) {
	spinTotal.WithLabelValues(result).Inc()
	spinDuration.WithLabelValues(result).Observe(float64(time.Since(started).Milliseconds()))
}

// RecordWager tracks wagered and won amounts of a committed spin, the raw
// inputs of the running RTP
func RecordWager(betAmount, winAmount int64) {
	spinBetAmount.Add(float64(betAmount))
	spinWinAmount.Add(float64(winAmount))
}
