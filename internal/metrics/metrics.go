// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransitionsTotal counts requested status transitions by entity and outcome
	// (applied, illegal, not_found, conflict, error).
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nyayadhaar_transitions_total",
		Help: "Status transition requests by entity and outcome.",
	}, []string{"entity", "outcome"})

	// ChatExchangesTotal counts assistant exchanges by the rule that answered.
	ChatExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nyayadhaar_chat_exchanges_total",
		Help: "Assistant exchanges by matched rule.",
	}, []string{"rule"})
)
