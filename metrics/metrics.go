package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kokoking"

// Registry holds every collector exported on /metrics.
var Registry = prometheus.NewRegistry()

var (
	OrdersCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Orders accepted by the store, by order type.",
	}, []string{"order_type"})

	Transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Applied lifecycle transitions.",
	}, []string{"from", "to", "role"})

	TransitionRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transition_rejections_total",
		Help:      "Transition attempts refused, by reason.",
	}, []string{"reason"})

	Polls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_polls_total",
		Help:      "Order view polls, by result.",
	}, []string{"result"})

	PollDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_poll_duration_seconds",
		Help:      "Time spent fetching one order snapshot.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Rejection reasons.
const (
	ReasonIllegal  = "illegal"
	ReasonNotFound = "not_found"
	ReasonStorage  = "storage"
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		OrdersCreated,
		Transitions,
		TransitionRejections,
		Polls,
		PollDuration,
	)
}

// Handler exposes Registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
