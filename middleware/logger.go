package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"caption-studio-server/pkg/logger"
)

// Logger writes one access entry per request. Server errors log at error
// level and client errors at warn; health checks are skipped.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
		Formatter: func(param gin.LogFormatterParams) string {
			entry := logger.WithFields(logrus.Fields{
				"client_ip":   param.ClientIP,
				"timestamp":   param.TimeStamp.Format(time.RFC3339),
				"method":      param.Method,
				"path":        param.Path,
				"status_code": param.StatusCode,
				"latency":     param.Latency,
				"user_agent":  param.Request.UserAgent(),
				"error":       param.ErrorMessage,
				"session_id":  param.Keys[sessionIDKey],
			})
			switch {
			case param.StatusCode >= http.StatusInternalServerError:
				entry.Error("HTTP Request")
			case param.StatusCode >= http.StatusBadRequest:
				entry.Warn("HTTP Request")
			default:
				entry.Info("HTTP Request")
			}
			return ""
		},
	})
}

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		fields := logrus.Fields{
			"error":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}
		if id, ok := GetSessionID(c); ok {
			fields["session_id"] = id
		}
		logger.WithFields(fields).Error("Panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	})
}
