package icu

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricName = "daylog_icu_requests_total"

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "daylog",
		Subsystem: "icu",
		Name:      "requests_total",
		Help:      "Requests sent to the intervals.icu API by operation and status class.",
	},
	[]string{"operation", "status"},
)

// RequestStat is one counter sample, as reported by `daylog doctor`.
type RequestStat struct {
	Operation string
	Status    string
	Count     float64
}

func observe(op, status string) {
	requestsTotal.WithLabelValues(op, status).Inc()
}

// statusClass buckets an HTTP status into 2xx/4xx/5xx style labels.
func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "other"
	}
}

// RequestStats returns the request counters recorded by this process,
// sorted by operation then status.
func RequestStats() ([]RequestStat, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	var stats []RequestStat
	for _, mf := range families {
		if mf.GetName() != metricName {
			continue
		}
		for _, m := range mf.GetMetric() {
			stat := RequestStat{Count: m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "operation":
					stat.Operation = lp.GetValue()
				case "status":
					stat.Status = lp.GetValue()
				}
			}
			stats = append(stats, stat)
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Operation != stats[j].Operation {
			return stats[i].Operation < stats[j].Operation
		}
		return stats[i].Status < stats[j].Status
	})
	return stats, nil
}
