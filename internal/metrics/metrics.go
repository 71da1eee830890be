package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_orders_created_total",
		Help: "Orders created through checkout or the order API.",
	})

	PaymentsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_payments_submitted_total",
		Help: "Receipt submissions accepted.",
	})

	PaymentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "store_payment_transitions_total",
		Help: "Payment status transitions by target status.",
	}, []string{"status"})

	CheckoutFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_checkout_failures_total",
		Help: "Checkout sequences aborted by an error.",
	})

	InvoicesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_invoices_issued_total",
		Help: "Invoices generated, automatic and manual.",
	})
)
