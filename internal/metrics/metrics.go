package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadetcorps", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "route", "code"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cadetcorps", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cadetcorps", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadetcorps", Name: "logins_total", Help: "Login attempts by outcome",
	}, []string{"outcome"})
	SubmissionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadetcorps", Name: "submission_transitions_total", Help: "Task submission state transitions",
	}, []string{"to"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, DBPing, Logins, SubmissionTransitions)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func CountRequest(method, route string, code int) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
