package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"order-core/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	// browsers cannot check out without sending these
	apiRequestHeaders = []string{"Authorization", "Content-Type", "Idempotency-Key", SessionHeader, RequestIDHeader}
	// clients read replay and correlation info from these
	apiResponseHeaders = []string{"Idempotent-Replayed", RequestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, apiRequestHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, apiResponseHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"expose_headers", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := make([]string, 0, len(configured)+len(required))
	for _, h := range append(slices.Clone(configured), required...) {
		h = http.CanonicalHeaderKey(h)
		if h != "" && !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
