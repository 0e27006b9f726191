package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saltbot_commands_handled_total",
		Help: "Chat commands dispatched, by command name.",
	}, []string{"command"})

	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saltbot_deliveries_total",
		Help: "Expired entries delivered to their channel, by kind.",
	}, []string{"kind"})

	DeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saltbot_delivery_failures_total",
		Help: "Failed delivery attempts, by kind. Retried on later sweeps.",
	}, []string{"kind"})

	DeliveriesAbandoned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saltbot_deliveries_abandoned_total",
		Help: "Expired entries dropped after exhausting delivery attempts, by kind.",
	}, []string{"kind"})

	CorruptEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saltbot_corrupt_entries_total",
		Help: "Stored entries that failed to parse and were skipped, by kind.",
	}, []string{"kind"})
)
