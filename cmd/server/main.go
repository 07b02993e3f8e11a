package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"happy-badge/internal/api"
	"happy-badge/internal/config"
	"happy-badge/internal/service"
	"happy-badge/internal/storage"
	"happy-badge/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	badgeSvc := service.NewBadgeService(cfg, store, hub)

	router := api.NewRouter(cfg, hub, badgeSvc)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s canvas=%d output=%s", cfg.ListenAddr, cfg.Badge.CanvasSize, cfg.OutputDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	hub.Stop()
	if err := store.Save(); err != nil {
		log.Printf("save store: %v", err)
	}
}
