// Package metrics exposes pipeline counters and risk gauges over HTTP in
// Prometheus format.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"CryptoSentinel/internal/model"
)

type Metrics struct {
	EventsProcessed  prometheus.Counter
	SignalsGenerated prometheus.Counter
	SignalsApproved  prometheus.Counter
	SignalsRejected  prometheus.Counter

	portfolioValue prometheus.Gauge
	dailyPnL       prometheus.Gauge
	totalPnL       prometheus.Gauge
	drawdown       prometheus.Gauge
	openTrades     prometheus.Gauge
	emergencyStop  prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		EventsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_events_processed_total",
			Help: "Relevant market events emitted by the collector.",
		}),
		SignalsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_signals_generated_total",
			Help: "Trading signals produced by the strategy engine.",
		}),
		SignalsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_signals_approved_total",
			Help: "Signals approved by the risk gate and allocated.",
		}),
		SignalsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_signals_rejected_total",
			Help: "Signals rejected by the risk gate.",
		}),
		portfolioValue: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_portfolio_value",
			Help: "Configured portfolio value in quote currency.",
		}),
		dailyPnL: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_daily_pnl",
			Help: "Realized P&L for the current calendar day.",
		}),
		totalPnL: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_total_pnl",
			Help: "Realized P&L since start.",
		}),
		drawdown: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_drawdown_ratio",
			Help: "Current drawdown as a fraction of portfolio value.",
		}),
		openTrades: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_open_trades",
			Help: "Trades currently pending or filled-and-open.",
		}),
		emergencyStop: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_emergency_stop_active",
			Help: "1 when the emergency stop is blocking new trades.",
		}),
	}
}

// ObserveRisk updates the risk gauges from a gate snapshot.
func (m *Metrics) ObserveRisk(snap model.RiskMetrics) {
	m.portfolioValue.Set(snap.PortfolioValue)
	m.dailyPnL.Set(snap.DailyPnL)
	m.totalPnL.Set(snap.TotalPnL)
	m.drawdown.Set(snap.CurrentDrawdown)
	m.openTrades.Set(float64(snap.OpenTrades))
	if snap.EmergencyStopActive {
		m.emergencyStop.Set(1)
	} else {
		m.emergencyStop.Set(0)
	}
}

// Serve starts the /metrics endpoint. Blocks; run in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("[INFO] metrics listening on %s", addr)
	return srv.ListenAndServe()
}
