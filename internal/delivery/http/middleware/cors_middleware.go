package middleware

import (
	"strings"

	"go-agency-backend/config"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the marketing frontend to call the API from another
// origin.
//
// SECURITY: the allowlist is strict:
// - The configured site/frontend origins are always allowed
// - localhost is allowed only outside production
// - Vercel preview deployments are matched by project prefix
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := map[string]bool{
		cfg.SiteURL:     true,
		cfg.FrontendURL: true,
	}

	devOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
		"http://localhost:3001": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		isAllowed := allowed[origin]
		if !isAllowed && !cfg.IsProduction() && devOrigins[origin] {
			isAllowed = true
		}

		// Vercel preview deployments: codewave-*.vercel.app only, so an
		// unrelated project cannot piggyback on the suffix match.
		if !isAllowed && strings.HasSuffix(origin, ".vercel.app") {
			subdomain := strings.TrimPrefix(origin, "https://")
			subdomain = strings.TrimSuffix(subdomain, ".vercel.app")
			if strings.HasPrefix(subdomain, "codewave") || strings.Contains(subdomain, "-codewave-") {
				isAllowed = true
			}
		}

		// Same-origin requests carry no Origin header
		if origin == "" {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}

		// Caches must differentiate by Origin
		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
