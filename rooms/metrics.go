/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package rooms

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	roomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wordrooms",
		Name:      "rooms_active",
		Help:      "Rooms currently holding at least one player.",
	})

	playersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wordrooms",
		Name:      "players_active",
		Help:      "Players currently joined to a room.",
	})

	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordrooms",
		Name:      "commands_total",
		Help:      "Inbound commands dispatched, by event.",
	}, []string{"event"})

	eventsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordrooms",
		Name:      "events_delivered_total",
		Help:      "Outbound events queued to a connection, by event.",
	}, []string{"event"})

	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordrooms",
		Name:      "events_dropped_total",
		Help:      "Outbound events a connection could not accept, by event.",
	}, []string{"event"})
)
