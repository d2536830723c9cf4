// Package metrics exposes Prometheus collectors for editor activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every vlisp collector.
var Registry = prometheus.NewRegistry()

var (
	// NodesPlaced counts frames dropped on the board.
	NodesPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vlisp_nodes_placed_total",
			Help: "Number of node frames placed on the board.",
		},
	)
	// NodesMoved counts frame moves.
	NodesMoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vlisp_nodes_moved_total",
			Help: "Number of node frame moves.",
		},
	)
	// Clicks counts connector clicks, labelled by connector direction and
	// pairing outcome.
	Clicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlisp_clicks_total",
			Help: "Connector clicks by pairing outcome.",
		},
		[]string{"direction", "outcome"},
	)
	// EdgesRerouted counts stale edges recomputed and acknowledged.
	EdgesRerouted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vlisp_edges_rerouted_total",
			Help: "Number of stale edges whose geometry was recomputed and acknowledged.",
		},
	)
	// EvalDuration observes how long compiling and running a board takes.
	EvalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vlisp_eval_duration_seconds",
			Help:    "Time taken to compile and evaluate a board.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	Registry.MustRegister(
		NodesPlaced,
		NodesMoved,
		Clicks,
		EdgesRerouted,
		EvalDuration,
	)
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// NewServer returns an HTTP server with Handler mounted at /metrics. The
// caller supplies the listener.
func NewServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
