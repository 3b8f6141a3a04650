// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	g "github.com/mahabubulhasibshawon/lojamix/internal/adapters/grpc"
	"github.com/mahabubulhasibshawon/lojamix/internal/adapters/redis"
	"github.com/mahabubulhasibshawon/lojamix/internal/adapters/repository"
	"github.com/mahabubulhasibshawon/lojamix/internal/adapters/web"
	"github.com/mahabubulhasibshawon/lojamix/internal/application"
	"github.com/mahabubulhasibshawon/lojamix/internal/config"
	"github.com/mahabubulhasibshawon/lojamix/internal/telemetry"
	"github.com/mahabubulhasibshawon/lojamix/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	telemetry.InitLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}

	cache := redis.NewCache(redis.Options{
		Addr:      cfg.RedisAddr,
		Username:  cfg.RedisUsername,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		TTL:       cfg.CacheTTL,
		KeyPrefix: "lojamix:",
	})
	defer cache.Close()
	if err := cache.Ping(pingCtx); err != nil {
		// The store still works without its cache.
		slog.Warn("redis unavailable, serving uncached", "addr", cfg.RedisAddr, "error", err)
	}

	repo := repository.NewPostgresRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	catalog := application.NewCatalogService(repo, cache)
	carts := application.NewCartService(repo)
	orders := application.NewOrderService(repo, cache)
	authService := application.NewAuthService(repo, tokens)
	checkout := application.NewCheckoutService(carts, repo, cache)

	gin.SetMode(gin.ReleaseMode)
	router, err := web.NewRouter(web.Deps{
		Catalog:  catalog,
		Carts:    carts,
		Checkout: checkout,
		Orders:   orders,
		Auth:     authService,
		Sessions: web.NewSessionStore([]byte(cfg.SessionSecret), cfg.CookieSecure),
		Health:   map[string]web.Pinger{"postgres": repo, "redis": cache},
	})
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(g.AuthInterceptor(tokens)))
	g.RegisterStorefrontServer(grpcServer, g.NewServer(authService, catalog, orders, tokens))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return err
		}
		slog.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		return grpcServer.Serve(lis)
	})
	eg.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
