package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/config"
	"github.com/clipcart/clipcart/internal/probe"
	"github.com/clipcart/clipcart/internal/server"
	"github.com/clipcart/clipcart/internal/session"
	"github.com/clipcart/clipcart/internal/wizard"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration failed: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}
	log.Printf("catalog loaded: %d ads", cat.Len())

	store := session.NewStore(cfg.SessionSecret, cfg.SessionTTL, nil)
	defer store.Stop()

	wizardCfg := wizard.DefaultConfig()
	wizardCfg.ProgressInterval = cfg.UploadProgressInterval
	wizardCfg.TierDuration = cfg.TierDuration

	srv := server.New(server.Config{
		Catalog:        cat,
		Sessions:       store,
		BaseURL:        cfg.BaseURL,
		Probe:          probe.FFProbe{},
		Wizard:         wizardCfg,
		RateLimit:      cfg.RateLimit,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("clipcart listening on %s", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}
