package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sales_savvy",
		Name:      "orders_placed_total",
		Help:      "Total number of successfully placed orders.",
	})
	CheckoutFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_savvy",
		Name:      "checkout_failures_total",
		Help:      "Checkout attempts rejected before commit.",
	}, []string{"reason"})
	PaymentsReconciled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_savvy",
		Name:      "payments_reconciled_total",
		Help:      "Payment verify callbacks applied to orders.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(OrdersPlaced, CheckoutFailures, PaymentsReconciled)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
