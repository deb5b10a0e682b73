package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leavesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_requests_created_total",
			Help: "Total number of leave requests created",
		},
		[]string{"leave_type"},
	)

	leaveDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_decisions_total",
			Help: "Total number of approve/reject actions applied",
		},
		[]string{"role", "decision", "status"},
	)

	leaveValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_validation_failures_total",
			Help: "Leave validations rejected, by error code",
		},
		[]string{"code"},
	)

	balanceDeductionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_balance_deductions_total",
			Help: "Balance deductions processed from approved leaves",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(leavesCreatedTotal)
	prometheus.MustRegister(leaveDecisionsTotal)
	prometheus.MustRegister(leaveValidationFailuresTotal)
	prometheus.MustRegister(balanceDeductionsTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method, path string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func RecordLeaveCreated(leaveType string) {
	leavesCreatedTotal.WithLabelValues(leaveType).Inc()
}

func RecordLeaveDecision(role, decision, status string) {
	leaveDecisionsTotal.WithLabelValues(role, decision, status).Inc()
}

func RecordValidationFailure(code string) {
	leaveValidationFailuresTotal.WithLabelValues(code).Inc()
}

// RecordBalanceDeduction result is one of applied, duplicate, failed.
func RecordBalanceDeduction(result string) {
	balanceDeductionsTotal.WithLabelValues(result).Inc()
}
