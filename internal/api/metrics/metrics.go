// Package metrics defines and registers all custom Prometheus metrics for the
// mission control API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mission_control"

// ── Identity metrics ──────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", or "rejected"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by authentication or the
// authorization policy.
// Labels:
//   - route: the matched route path (e.g. "/share-log/:id")
//   - kind: "Unauthenticated", "InvalidToken" or "Unauthorized"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by authentication or authorization.",
	},
	[]string{"route", "kind"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LogOperationsTotal counts successful ledger mutations.
// Label:
//   - op: "create", "share", or "delete"
var LogOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_operations_total",
		Help:      "Total number of successful log mutations, by operation.",
	},
	[]string{"op"},
)

// BroadcastUpdatesTotal counts accepted broadcast writes.
var BroadcastUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_updates_total",
		Help:      "Total number of broadcast announcements published.",
	},
)

// ── Avatar metrics ────────────────────────────────────────────────────────────

// AvatarUploadsTotal counts avatar uploads.
// Label:
//   - result: "stored" or "rejected"
var AvatarUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_uploads_total",
		Help:      "Total number of avatar uploads, by result.",
	},
	[]string{"result"},
)

// AvatarCleanupTotal counts janitor outcomes for superseded avatars.
// Label:
//   - result: "deleted", "failed", or "dropped"
var AvatarCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_cleanup_total",
		Help:      "Total number of superseded avatar cleanups, by result.",
	},
	[]string{"result"},
)

// JanitorQueueDepth tracks pending cleanups in each janitor worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var JanitorQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "janitor_queue_depth",
		Help:      "Current number of avatar cleanups pending in each janitor worker channel.",
	},
	[]string{"worker_id"},
)
