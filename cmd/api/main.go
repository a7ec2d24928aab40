package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	redisadapter "ticket-fulfillment/internal/adapters/redis"
	"ticket-fulfillment/internal/catalog"
	"ticket-fulfillment/internal/config"
	httphandler "ticket-fulfillment/internal/http"
	"ticket-fulfillment/internal/ledger"
	"ticket-fulfillment/internal/match"
	"ticket-fulfillment/internal/members"
	"ticket-fulfillment/internal/observability"
	"ticket-fulfillment/internal/rateLimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := observability.SetupOTel(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdown()

	logger := observability.NewLogger()

	cat := catalog.Seed()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("failed to load catalog: %v", err)
		}
	}

	reg := members.Seed()
	if cfg.MembersPath != "" {
		reg, err = members.Load(cfg.MembersPath)
		if err != nil {
			log.Fatalf("failed to load members: %v", err)
		}
	}

	var rl *rateLimit.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		rl = rateLimit.NewRateLimiter(redisadapter.NewCache(redisClient))
	}

	matcher := match.New(cat, cfg.MatchThreshold)
	led := ledger.New()

	handlers := httphandler.NewHandlers(cfg, cat, reg, matcher, led, logger)
	r := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", cfg.Addr).Info("fulfillment webhook listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown Server ...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("Server exiting")
}
