// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_logins_total",
		Help: "Number of login calls, fresh and repeat alike.",
	})

	LocationReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_location_reports_total",
		Help: "Number of accepted position reports.",
	})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_messages_sent_total",
		Help: "Number of messages appended to the log.",
	})

	EvictedLocations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_reaper_evicted_locations_total",
		Help: "Stale location rows removed by the reaper.",
	})

	EvictedParticipants = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_reaper_evicted_participants_total",
		Help: "Orphaned participants removed by the reaper.",
	})
)
