package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoa_login_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoa_register_total",
			Help: "Total number of user registrations",
		},
	)

	RefreshCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hoa_token_refresh_total",
			Help: "Total number of access-token refreshes",
		},
	)

	AssociationOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoa_association_operations_total",
			Help: "Total number of association operations",
		},
		[]string{"operation"}, // "create", "access", "update", "delete", "list"
	)

	MembershipOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoa_membership_operations_total",
			Help: "Total number of membership operations",
		},
		[]string{"operation"}, // "add", "remove", "list"
	)

	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoa_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoa_auth_errors_total",
			Help: "Total number of authentication and authorization errors",
		},
		[]string{"type"}, // "missing_token", "invalid_token", "role_denied" etc.
	)
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoa_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoa_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hoa_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hoa_info",
			Help: "Information about the housing-association service",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(RefreshCounter)
	prometheus.MustRegister(AssociationOperationCounter)
	prometheus.MustRegister(MembershipOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// DecreaseActiveTokens decrements the active tokens gauge
func DecreaseActiveTokens() {
	ActiveTokensGauge.Dec()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordAssociationOperation records an association operation
func RecordAssociationOperation(operation string) {
	AssociationOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordMembershipOperation records a membership operation
func RecordMembershipOperation(operation string) {
	MembershipOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}
