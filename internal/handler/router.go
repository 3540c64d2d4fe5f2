package handler

import (
	"net/http"
	"storefront-service/internal/middleware"
	"storefront-service/internal/model"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter wires every route of the storefront and the admin panel
func NewRouter(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Order matters: request id first so the access log and metrics see the
	// request scoped logger
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(metrics.NewHTTPMetrics(h.serviceName).Middleware())
	e.Use(echomiddleware.BodyLimit("1M"))

	e.GET("/health", h.HealthCheck)
	e.GET(h.metricsPath, echo.WrapHandler(metrics.Handler()))

	requireAuth := middleware.JWTAuth(h.jwt, h.tokenCookie)

	api := e.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/session", h.Session, requireAuth)

	api.GET("/produtos", h.ListProducts)
	api.GET("/produtos/:id", h.GetProduct)
	api.GET("/categorias", h.ListCategories)
	api.GET("/categorias/:slug", h.GetCategoryBySlug)
	api.GET("/banners", h.ListActiveBanners)

	api.GET("/carrinho", h.GetCart)
	api.DELETE("/carrinho", h.ClearCart)
	api.POST("/carrinho/itens", h.AddCartItem)
	api.PUT("/carrinho/itens/:id", h.SetCartItem)
	api.DELETE("/carrinho/itens/:id", h.RemoveCartItem)
	api.POST("/checkout", h.Checkout)

	panel := e.Group("/painel", requireAuth, middleware.RequireRole(model.RoleAdmin))

	products := panel.Group("/produtos")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	categories := panel.Group("/categorias")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.PUT("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)

	banners := panel.Group("/banners")
	banners.GET("", h.ListBanners)
	banners.GET("/:id", h.GetBanner)
	banners.POST("", h.CreateBanner)
	banners.PUT("/:id", h.UpdateBanner)
	banners.DELETE("/:id", h.DeleteBanner)
	banners.POST("/:id/toggle", h.ToggleBanner)

	orders := panel.Group("/pedidos")
	orders.GET("", h.ListOrders)
	orders.GET("/:id", h.GetOrder)
	orders.POST("", h.CreateOrder)
	orders.PUT("/:id", h.UpdateOrder)
	orders.DELETE("/:id", h.DeleteOrder)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return fail(c, http.StatusNotFound, "Recurso não encontrado")
	})

	return e
}
