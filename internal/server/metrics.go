// internal/server/metrics.go
package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "biostat_http_requests_total",
		Help: "HTTP requests by route and status.",
	},
	[]string{"method", "route", "status"},
)

var websocketMessages = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "biostat_websocket_messages_total",
		Help: "Websocket messages received by type.",
	},
	[]string{"type"},
)

// countRequests labels requests with the matched route pattern so path
// parameters do not multiply the series.
func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
