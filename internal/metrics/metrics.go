package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	checkoutSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "checkout_sessions_total",
			Help:      "Payment session requests by outcome.",
		},
		[]string{"outcome"},
	)

	confirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "confirmations_total",
			Help:      "Reservation confirmations by outcome.",
		},
		[]string{"outcome"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "notifications_total",
			Help:      "Confirmation emails by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(checkoutSessions, confirmations, notifications)
	})
}

func IncCheckout(outcome string) {
	checkoutSessions.WithLabelValues(outcome).Inc()
}

func IncConfirmation(outcome string) {
	confirmations.WithLabelValues(outcome).Inc()
}

func IncNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}
