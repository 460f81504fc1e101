// Package metrics defines and registers all custom Prometheus metrics for
// the user panel. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; request-level HTTP metrics come from the echoprometheus
// middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userpanel"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success", "invalid" (bad username or password), or "blocked"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Labels:
//   - result: "success", "invalid", or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// AuthzDeniedTotal counts requests rejected by the role gate.
// Labels:
//   - path: the registered route path of the denied request
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of requests denied by role-based access control.",
	},
	[]string{"path"},
)

// AuditRecordsTotal counts audit entries successfully persisted.
// Labels:
//   - action: the audited action (e.g. "login", "change_password")
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit trail entries written.",
	},
	[]string{"action"},
)

// AuditErrorsTotal counts audit entries that failed to persist.
// Labels:
//   - action: the audited action
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit trail entries that failed to persist.",
	},
	[]string{"action"},
)
