package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"storefront-service/internal/cart"
	"storefront-service/internal/handler"
	"storefront-service/internal/report"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "storefront-service"

func main() {
	appConfig, err := config.Load(serviceName)
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting "+serviceName, appConfig.LogConfig()...)

	if err := run(appConfig, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func run(appConfig *config.Config, log *zap.Logger) error {
	db, err := database.Open(&appConfig.DB)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("Database connection established", zap.String("driver", appConfig.DB.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if rows, err := report.Stock(ctx, db, 0); err != nil {
		log.Warn("Failed to load stock levels", zap.Error(err))
	} else {
		report.PublishStock(rows)
	}

	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})

	views := revalidate.New()
	views.Subscribe(func(v revalidate.View) {
		log.Debug("View invalidated", zap.String("view", string(v)))
	})

	h := handler.New(handler.Deps{
		ServiceName:   appConfig.ServiceName,
		DB:            db,
		Catalog:       service.NewCatalog(db, views),
		Orders:        service.NewOrders(db, views),
		Banners:       service.NewBanners(db, views),
		Auth:          service.NewAuth(db, jwtUtil),
		Carts:         cart.NewStore([]byte(appConfig.Session.Key), appConfig.Session.CookieSecure),
		Views:         views,
		JWT:           jwtUtil,
		TokenCookie:   appConfig.JWT.CookieName,
		SecureCookies: appConfig.Session.CookieSecure,
		MetricsPath:   appConfig.Metrics.Path,
	})
	e := handler.NewRouter(h)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", zap.String("port", appConfig.Server.Port))
		if err := e.Start(":" + appConfig.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
