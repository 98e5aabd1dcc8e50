package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrometheusHandler exposes handler on a gin route, answering 503 until
// telemetry is initialized.
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	if handler == nil {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   http.StatusText(http.StatusServiceUnavailable),
				"message": "metrics are not initialized",
			})
		}
	}
	return gin.WrapH(handler)
}
