package http

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// allowedOriginSchemes are the origins a caller of the message server can have:
// a local page or the browser extension.
var allowedOriginSchemes = map[string]bool{
	"http":                 true,
	"https":                true,
	"chrome-extension":     true,
	"moz-extension":        true,
	"safari-web-extension": true,
}

// createCORSMiddleware returns a CORS middleware for the message server, or nil
// when CORS is disabled or no usable origin is configured.
//
// The bearer token travels in the Authorization header, so credentials
// (cookies) are never allowed.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr, logger)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:           origins,
		AllowMethods:           []string{"GET", "POST"},
		AllowHeaders:           []string{"Authorization", "Content-Type"},
		ExposeHeaders:          []string{"X-Request-Id", "Retry-After"},
		AllowBrowserExtensions: true,
		MaxAge:                 12 * time.Hour,
	})
}

// parseOrigins splits a comma-separated origin list. Entries that are not a
// bare scheme://host origin with a known scheme are logged and skipped.
func parseOrigins(originsStr string, logger *slog.Logger) []string {
	var origins []string
	for _, part := range strings.Split(originsStr, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if !validOrigin(origin) {
			logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
			continue
		}
		origins = append(origins, strings.TrimSuffix(origin, "/"))
	}
	return origins
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return false
	}
	return allowedOriginSchemes[u.Scheme]
}
