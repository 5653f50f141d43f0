// Package metrics defines and registers all custom Prometheus metrics for the
// to-do API. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// RegistrationsTotal counts signup attempts.
// Label:
//   - result: "created", "conflict", or "error"
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
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TaskOperationsTotal counts successful task mutations and reads.
// Label:
//   - op: "list", "create", "update", or "delete"
var TaskOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_operations_total",
		Help:      "Total number of successful task operations, by operation.",
	},
	[]string{"op"},
)

// AvatarUploadsTotal counts avatar uploads.
// Label:
//   - result: "success" or "rejected"
var AvatarUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_uploads_total",
		Help:      "Total number of avatar upload attempts, by result.",
	},
	[]string{"result"},
)
