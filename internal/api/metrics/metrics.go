// Package metrics defines and registers all custom Prometheus metrics for the
// offers API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto; the HTTP middleware metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "offers"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login attempts.
// Labels:
//   - action: "register", "login" or "admin_login"
//   - result: "success" or the error class ("conflict", "invalid_credentials", ...)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Offer metrics ─────────────────────────────────────────────────────────────

// OfferMutationsTotal counts successful admin writes.
// Label:
//   - op: "create", "update" or "delete"
var OfferMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "offer_mutations_total",
		Help:      "Total number of successful offer writes, by operation.",
	},
	[]string{"op"},
)

// BuyIntentsTotal counts buy requests. Nothing is persisted for a buy; this is
// the only trace one leaves.
var BuyIntentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "buy_intents_total",
		Help:      "Total number of offers returned by the buy endpoint.",
	},
)

// OfferCacheTotal counts offer list cache lookups.
// Label:
//   - result: "hit" or "miss"
var OfferCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "offer_cache_total",
		Help:      "Total number of offer list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
