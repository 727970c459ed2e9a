// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names.
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelZone   = "zone"
	LabelResult = "result"
)

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wardrobe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wardrobe_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Planner metrics.
var (
	ZonePlacements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_zone_placements_total",
			Help: "Total number of items placed into a zone",
		},
		[]string{LabelZone},
	)

	ZoneClears = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_zone_clears_total",
			Help: "Total number of zone clear operations",
		},
		[]string{LabelZone},
	)

	PlannerResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_planner_resets_total",
			Help: "Total number of planner resets",
		},
	)

	InvalidZoneRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_invalid_zone_rejections_total",
			Help: "Total number of planner operations rejected for an invalid zone",
		},
	)

	PlannersOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wardrobe_planners_opened_total",
			Help: "Total number of planner views opened",
		},
	)
)

// Catalog metrics.
var (
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wardrobe_uploads_total",
			Help: "Total number of image uploads by result",
		},
		[]string{LabelResult},
	)
)

// RegisterOpenPlanners exports the number of open planner views, read from fn
// at scrape time. Call it once at startup.
func RegisterOpenPlanners(reg prometheus.Registerer, fn func() int) error {
	return reg.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "wardrobe_planners_open",
			Help: "Current number of open planner views",
		},
		func() float64 { return float64(fn()) },
	))
}
