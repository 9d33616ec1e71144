package middleware

import (
	"net/http"
	"time"

	"evidentia/backend/common"

	"github.com/gin-gonic/gin"
)

func rateLimitFactory(maxRequestNum int, duration time.Duration, mark string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := mark + ":" + c.ClientIP()
		if !common.RateLimitRequest(key, maxRequestNum, duration) {
			common.RespErrorStr(c, http.StatusTooManyRequests, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GlobalAPIRateLimit covers every /api route.
func GlobalAPIRateLimit() gin.HandlerFunc {
	return rateLimitFactory(common.GlobalApiRateLimitNum, common.GlobalApiRateLimitDuration, "GA")
}

// CriticalRateLimit covers auth and submission endpoints.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimitFactory(common.CriticalRateLimitNum, common.CriticalRateLimitDuration, "CT")
}

// GlobalWebRateLimit covers the static front end.
func GlobalWebRateLimit() gin.HandlerFunc {
	return rateLimitFactory(common.GlobalWebRateLimitNum, common.GlobalWebRateLimitDuration, "GW")
}
