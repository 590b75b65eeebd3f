package feed

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_published_total",
			Help: "Change-feed events published by API writes",
		},
		[]string{"table", "kind"},
	)
	EventsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_delivered_total",
			Help: "Change-feed events delivered to websocket clients",
		},
		[]string{"table"},
	)
	ClientsConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_clients_connected",
			Help: "Currently connected change-feed clients",
		},
	)
)

func init() {
	prometheus.MustRegister(EventsPublished, EventsDelivered, ClientsConnected)
}
