package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// proxyHeaders are consulted in order; the first one holding a parseable
// address wins.
var proxyHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// getClientIP keys the rate limiter and the request log. Header values that
// do not parse as an IP are skipped so a forged header cannot pick a bucket
// name at will.
func getClientIP(c *gin.Context) string {
	for _, h := range proxyHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
