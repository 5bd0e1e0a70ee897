package observability

import "strconv"

// RequestMetrics adapts the HTTPRequestsTotal/HTTPRequestDuration vectors
// to the middleware.Metrics interface so every service's chain reports
// into the same two series.
type RequestMetrics struct{}

func (RequestMetrics) ObserveRequest(method, route string, status int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}
