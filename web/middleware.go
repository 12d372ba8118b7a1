package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mhpenta/autoblogger/ratelimiter"
)

// SecurityHeaders sets conservative browser security headers on every
// response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// RateLimit throttles clients per address using a sliding one-minute
// window. Denied requests get a 429 with a Retry-After hint and do not
// count against the client's window.
func RateLimit(limiter *ratelimiter.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.ClientIP()

		if !limiter.Allow(addr) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, try again later",
			})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(addr)))
		c.Next()
	}
}

// TokenAuth requires a valid bearer token signed with the server's secret
// key. The subject is stored in the context under "subject".
func TokenAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header required",
			})
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format",
			})
			return
		}

		subject, err := VerifyAccessToken(secretKey, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.Set("subject", subject)
		c.Next()
	}
}
