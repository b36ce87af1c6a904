package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsHandledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promobot_commands_handled_total",
		Help: "Total number of chat commands handled, by command kind.",
	},
		[]string{"kind"},
	)

	CommandErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promobot_command_errors_total",
		Help: "Total number of commands abandoned because of a store or transport failure.",
	},
		[]string{"kind"},
	)

	EventsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promobot_lifecycle_events_published_total",
		Help: "Total number of lifecycle events successfully published to Kafka.",
	})

	AggregationRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promobot_aggregation_runs_total",
		Help: "Total number of completed daily payment aggregation runs.",
	})

	AggregationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promobot_aggregation_failures_total",
		Help: "Total number of daily aggregation runs that ended with an error.",
	})
)
