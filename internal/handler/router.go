package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"order-core/internal/handler/api"
	"order-core/internal/handler/middleware"
	"order-core/internal/infra/metrics"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Checkout *api.CheckoutHandler
	Orders   *api.OrderHandler
	Admin    *api.AdminHandler
	Webhook  *api.WebhookHandler
}

func NewHandlers(checkout *api.CheckoutHandler, orders *api.OrderHandler, admin *api.AdminHandler, webhook *api.WebhookHandler) Handlers {
	return Handlers{Checkout: checkout, Orders: orders, Admin: admin, Webhook: webhook}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics, logger *slog.Logger) {
	setupMiddleware(engine, cfg, m, logger)
	setupRoutes(engine, h, authMiddleware, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operator := authMiddleware.RequireRoleAtLeast(usecase.RoleOperator)
	admin := authMiddleware.RequireRoleAtLeast(usecase.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.Checkout, Mw: []gin.HandlerFunc{authMiddleware.RequireOwner()}},
			// signed by the gateway, not by a caller identity
			{Method: http.MethodPost, Path: "/webhooks/gateway", Handler: h.Webhook.Receive},
		})

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireOwner())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Orders.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Orders.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Orders.Cancel},
			})
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAuth())
		{
			addRoutes(adminGroup, []route{
				{Method: http.MethodPost, Path: "/orders/:id/ship", Handler: h.Admin.Ship, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/orders/:id/deliver", Handler: h.Admin.Deliver, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/orders/:id/refund", Handler: h.Admin.Refund, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/orders/:id/cancel", Handler: h.Admin.Cancel, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodGet, Path: "/outbox/dead-letters", Handler: h.Admin.DeadLetters, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPost, Path: "/outbox/:id/requeue", Handler: h.Admin.Requeue, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodGet, Path: "/stock", Handler: h.Admin.Stock, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPut, Path: "/stock/:product_id", Handler: h.Admin.SetStock, Mw: []gin.HandlerFunc{admin}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

// chainHandlers runs route-level middleware inline; it relies on each one
// calling c.Next() only as its last step.
func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
