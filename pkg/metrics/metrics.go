package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DocumentLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "document_loads_total", Help: "Document reads by outcome (ok, missing, invalid, error)."},
		[]string{"result"},
	)
	DocumentSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "document_saves_total", Help: "Document writes by outcome (ok, invalid, error)."},
		[]string{"result"},
	)
	DocumentRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "jsoneditor", Name: "document_records", Help: "Number of records in the last saved document, -1 when it is not an array of objects."},
	)
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "exports_total", Help: "Export attempts by sink and outcome."},
		[]string{"sink", "result"},
	)
	AppPathWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "app_path_writes_total", Help: "App path config writes by outcome."},
		[]string{"result"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jsoneditor", Name: "http_requests_total", Help: "Editor HTTP requests by method, route and status code."},
		[]string{"method", "route", "code"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentLoads)
	reg.MustRegister(DocumentSaves)
	reg.MustRegister(DocumentRecords)
	reg.MustRegister(Exports)
	reg.MustRegister(AppPathWrites)
	reg.MustRegister(HTTPRequests)
}
