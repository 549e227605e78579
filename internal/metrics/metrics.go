package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gearflow_http_requests_total", Help: "Total HTTP requests by route and status"},
		[]string{"route", "status"},
	)
	NotificationsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gearflow_notifications_dispatched_total", Help: "Notification deliveries by channel and outcome"},
		[]string{"channel", "outcome"},
	)
	ReconcileChanges = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "gearflow_reconcile_changes_total", Help: "Gear rows rewritten by reconciliation passes"},
	)
	PushQueueProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gearflow_push_queue_processed_total", Help: "Push queue items processed by outcome"},
		[]string{"outcome"},
	)
)

func Register() {
	prometheus.MustRegister(HTTPRequests, NotificationsDispatched, ReconcileChanges, PushQueueProcessed)
}
