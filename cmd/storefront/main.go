// @title          Pickle House storefront
// @version        1.0
// @description    Form endpoints of the pickle and snack storefront.
// @BasePath       /
package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/pickles-ecom/internal/catalog"
	"github.com/MikeMC777/pickles-ecom/internal/checkout"
	"github.com/MikeMC777/pickles-ecom/internal/config"
	"github.com/MikeMC777/pickles-ecom/internal/health"
	"github.com/MikeMC777/pickles-ecom/internal/logging"
	"github.com/MikeMC777/pickles-ecom/internal/session"
	"github.com/MikeMC777/pickles-ecom/internal/storage"
	"github.com/MikeMC777/pickles-ecom/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	cfg.Log(logger)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	// AWS config is resolved at most once, and only when a driver needs it.
	var (
		awsOnce sync.Once
		awsConf aws.Config
		awsErr  error
	)
	awsCfg := func() (aws.Config, error) {
		awsOnce.Do(func() { awsConf, awsErr = storage.LoadAWS(ctx, cfg.AWSRegion) })
		return awsConf, awsErr
	}

	mon := health.NewMonitor(logger)

	st, err := openStores(ctx, cfg, awsCfg, mon, logger)
	if err != nil {
		return err
	}
	defer st.close()

	sessions, closeSessions, err := openSessions(ctx, cfg, mon)
	if err != nil {
		return err
	}
	defer closeSessions()

	notifier, err := newNotifier(cfg, awsCfg, logger)
	if err != nil {
		return err
	}

	router, err := newRouter(deps{
		Catalog:  cat,
		Users:    user.NewService(st.users, logger),
		Checkout: checkout.NewService(st.orders, notifier, logger),
		Sessions: sessions,
		Session: session.Options{
			CookieName: cfg.SessionCookie,
			MaxAge:     cfg.SessionTTL,
			Secure:     cfg.SessionSecure,
		},
		Health: mon,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	go mon.Run(ctx, 30*time.Second)

	if cfg.HealthGRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.HealthGRPCAddr)
		if err != nil {
			return err
		}
		gs, errc := mon.Serve(lis)
		defer gs.GracefulStop()
		go func() {
			if err := <-errc; err != nil {
				logger.Error("grpc health server stopped", zap.Error(err))
			}
		}()
		logger.Info("grpc health listening", zap.String("addr", cfg.HealthGRPCAddr))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
