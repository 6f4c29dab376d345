package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/account"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/catalog"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/platform/config"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/platform/httpserver"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/platform/logger"
	platformredis "github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/platform/redis"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/session/bridge"
	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/shopapi"
	httptransport "github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/transport/http"
)

const sessionTokenTTL = 24 * time.Hour

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal domain
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	api := shopapi.New(cfg.ShopAPIBaseURL, cfg.ShopAPITimeout, log)

	// Redirect intents live in redis when configured, memory otherwise.
	var intentStore bridge.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		intentStore = bridge.NewRedis(redisClient.Client)
		log.Info("redirect intents backed by redis")
	} else {
		intentStore = bridge.NewMemory()
	}

	enricher := cart.NewEnricher(api, log)
	syncService := cart.NewSyncService(api, enricher, log)

	sessions := session.NewRegistry()
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.SweepIdle(sweepCtx, time.Hour, sessionTokenTTL)
	tokens := session.NewTokenService(cfg.SessionSigningKey, sessionTokenTTL)
	intentBridge := bridge.New(intentStore, log)
	catalogService := catalog.New(api, log)
	accountService := account.New(api, log)

	handler := httptransport.NewHandler(sessions, tokens, syncService, enricher, catalogService, accountService, intentBridge, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting storefront gateway", "addr", cfg.Addr, "shop_api", cfg.ShopAPIBaseURL)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
