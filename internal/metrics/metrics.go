package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	APIRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_api_requests_total",
			Help: "Total number of requests sent to the career API.",
		},
		[]string{"endpoint", "status"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_api_request_duration_seconds",
			Help:    "Duration of career API requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
	SessionRefreshCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_session_refreshes_total",
			Help: "Total number of silent session refresh attempts.",
		},
		[]string{"result"},
	)
	PageLoadsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_page_loads_total",
			Help: "Total number of page reads by outcome.",
		},
		[]string{"page", "outcome"},
	)
	ActiveWorkspacesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_active_workspaces",
			Help: "Number of visitor workspaces held in memory.",
		},
	)
)

var registerOnce sync.Once

func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(APIRequestsCounter)
		prometheus.MustRegister(APIRequestDuration)
		prometheus.MustRegister(SessionRefreshCounter)
		prometheus.MustRegister(PageLoadsCounter)
		prometheus.MustRegister(ActiveWorkspacesGauge)
	})
}

func StartMetricsServer(address string) {

	register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Infof("metrics server listening on %s", address)
		if err := http.ListenAndServe(address, mux); err != nil {
			log.Errorf("metrics server stopped: %v", err)
		}
	}()
}
