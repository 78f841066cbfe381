// Package metrics defines and registers all custom Prometheus metrics for
// the procurement portal. It is the single source of truth for metric names,
// labels, and help strings; request-level metrics come from the
// echoprometheus middleware on the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "procurement"

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts route authorization outcomes.
// Label:
//   - decision: "ALLOW", "REDIRECT", or "DENY"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of route authorization decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts RFQ orders placed through checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of RFQ orders created via checkout.",
	},
)

// OrderLinesCreatedTotal counts the lines fanned out at checkout.
var OrderLinesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_lines_created_total",
		Help:      "Total number of order lines created, one per cart item.",
	},
)

// CheckoutFailuresTotal counts checkouts that failed at order creation.
var CheckoutFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_failures_total",
		Help:      "Total number of checkouts that failed before an order was created.",
	},
)

// LineResponsesTotal counts supplier quotes attached to lines.
var LineResponsesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "line_responses_total",
		Help:      "Total number of supplier responses recorded on order lines.",
	},
)

// LineApprovalsTotal counts buyer approvals of supplier quotes.
var LineApprovalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "line_approvals_total",
		Help:      "Total number of order lines approved by buyers.",
	},
)

// OrdersCancelledTotal counts buyer-initiated cancellations.
var OrdersCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_cancelled_total",
		Help:      "Total number of orders cancelled by buyers.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsReadTotal counts durable mark-read operations.
var NotificationsReadTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_read_total",
		Help:      "Total number of notifications marked read.",
	},
)

// ── Subscription metrics ──────────────────────────────────────────────────────

// SubscriptionDecisionsTotal counts operator decisions on pending requests.
// Label:
//   - status: "APPROVED" or "REJECTED"
var SubscriptionDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_decisions_total",
		Help:      "Total number of subscription requests decided, by outcome.",
	},
	[]string{"status"},
)
