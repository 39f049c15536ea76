// Package metrics defines and registers all custom Prometheus metrics for
// the admin gateway. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts token refresh attempts.
// Label:
//   - result: "success" or "failure"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ForcedLogoutsTotal counts sessions terminated by a failed refresh.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_forced_logouts_total",
		Help:      "Total number of sessions force-logged-out after a failed refresh.",
	},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// NavResolutionsTotal counts navigation-set resolutions.
// Label:
//   - role: the resolved role, or "none" for the default set
var NavResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_resolutions_total",
		Help:      "Total number of role → navigation-set resolutions, by role.",
	},
	[]string{"role"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks the events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit events dropped under backpressure.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped because a worker channel was full.",
	},
)
