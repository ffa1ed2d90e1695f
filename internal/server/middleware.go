package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const HeaderAdminToken = "X-Admin-Token"

// AdminTokenRequired compares the admin header with the configured token.
// Production always requires a token.
func (s *Server) AdminTokenRequired() gin.HandlerFunc {
	expected := strings.TrimSpace(s.cfg.AdminAPIToken)
	return func(c *gin.Context) {
		if expected == "" && !s.cfg.IsProduction() {
			c.Next()
			return
		}
		got := strings.TrimSpace(c.GetHeader(HeaderAdminToken))
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
