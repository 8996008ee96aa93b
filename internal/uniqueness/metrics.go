package uniqueness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// checksFailedOpen counts scans that reported unique because a category
	// source failed.
	checksFailedOpen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uniqueness_checks_failed_open_total",
		Help: "Total number of name checks that failed open due to a source error",
	})

	// checksSuperseded counts resolved checks discarded because a newer
	// generation had already delivered.
	checksSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uniqueness_checks_superseded_total",
		Help: "Total number of name check results discarded as stale",
	})
)
