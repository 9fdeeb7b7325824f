package monitoring

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	purchaseAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchases_total",
			Help: "Ticket purchase attempts by outcome",
		},
		[]string{"status"},
	)

	refunds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_refunds_total",
			Help: "Tickets transitioned to refunded",
		},
	)

	gatewayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_duration_seconds",
			Help:    "Latency of payment gateway charge calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	availableTickets = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_available_tickets",
			Help: "Remaining ticket capacity per event",
		},
		[]string{"event_id"},
	)
)

// Purchase outcome labels.
const (
	OutcomeSuccess         = "success"
	OutcomeConflict        = "conflict"
	OutcomePaymentDeclined = "payment_declined"
	OutcomeInvalid         = "invalid"
	OutcomeError           = "error"
)

func TrackPurchase(outcome string) {
	purchaseAttempts.WithLabelValues(outcome).Inc()
}

func TrackRefund() {
	refunds.Inc()
}

func ObserveGatewayDuration(d time.Duration) {
	gatewayDuration.Observe(d.Seconds())
}

func SetAvailableTickets(eventID string, available int) {
	availableTickets.WithLabelValues(eventID).Set(float64(available))
}

// Serve exposes /metrics on its own port. Runs until the listener fails.
func Serve(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("metrics server stopped", "error", err)
	}
}
