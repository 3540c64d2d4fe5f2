// Package handler exposes the storefront and admin panel over HTTP.
package handler

import (
	"storefront-service/internal/cart"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"
	"storefront-service/pkg/jwtutil"

	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	ServiceName   string
	DB            *gorm.DB
	Catalog       *service.Catalog
	Orders        *service.Orders
	Banners       *service.Banners
	Auth          *service.Auth
	Carts         *cart.Store
	Views         *revalidate.Registry
	JWT           *jwtutil.JWTUtil
	TokenCookie   string
	SecureCookies bool
	MetricsPath   string
}

// Handler holds the request handlers
type Handler struct {
	serviceName   string
	db            *gorm.DB
	catalog       *service.Catalog
	orders        *service.Orders
	banners       *service.Banners
	auth          *service.Auth
	carts         *cart.Store
	views         *revalidate.Registry
	jwt           *jwtutil.JWTUtil
	tokenCookie   string
	secureCookies bool
	metricsPath   string
}

// New builds the handler set. An empty MetricsPath serves metrics at /metrics.
func New(d Deps) *Handler {
	if d.MetricsPath == "" {
		d.MetricsPath = "/metrics"
	}
	return &Handler{
		serviceName:   d.ServiceName,
		db:            d.DB,
		catalog:       d.Catalog,
		orders:        d.Orders,
		banners:       d.Banners,
		auth:          d.Auth,
		carts:         d.Carts,
		views:         d.Views,
		jwt:           d.JWT,
		tokenCookie:   d.TokenCookie,
		secureCookies: d.SecureCookies,
		metricsPath:   d.MetricsPath,
	}
}
