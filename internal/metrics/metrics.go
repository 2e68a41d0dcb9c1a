// Package metrics defines the Prometheus metrics of the portal client and the
// sandbox backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Client metrics ────────────────────────────────────────────────────────────

// OutboundRequestsTotal counts authenticated requests by result.
// Labels:
//   - method: HTTP method
//   - code: response status code, or "error" for transport failures
var OutboundRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outbound_requests_total",
		Help:      "Total number of authenticated requests sent to backend services.",
	},
	[]string{"method", "code"},
)

// OutboundRequestDuration measures round-trip time of authenticated requests.
var OutboundRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "outbound_request_duration_seconds",
		Help:      "Duration of authenticated requests from dispatch to response headers.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ForcedLogoutsTotal counts sessions cleared because a request returned 401.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions terminated by an unauthorized response.",
	},
)

// AuthAttemptsTotal counts login and registration outcomes.
// Labels:
//   - op: "login" or "register"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and registration attempts, by outcome.",
	},
	[]string{"op", "result"},
)

// ProposalPagesTotal counts proposal pages fetched.
// Label:
//   - kind: "first" or "next"
var ProposalPagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposal_pages_total",
		Help:      "Total number of proposal list pages fetched by the client.",
	},
	[]string{"kind"},
)

// ── Sandbox metrics ───────────────────────────────────────────────────────────

// TokensIssuedTotal counts tokens signed by the sandbox auth endpoints.
// Label:
//   - role: the role claim of the issued token
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued by the sandbox backend.",
	},
	[]string{"role"},
)

// ProposalsServedTotal counts proposals returned by the sandbox list endpoint.
var ProposalsServedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "proposals_served_total",
		Help:      "Total number of proposals returned by the sandbox list endpoint.",
	},
)
