package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-api/internal/api"
	"employee-api/internal/config"
	"employee-api/internal/employee"
	"employee-api/internal/logger"
	"employee-api/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	client.Log = lg.With("component", "upstream")
	svc := employee.NewService(client, lg)

	srv := &http.Server{
		Addr: cfg.ServerAddr,
		Handler: api.NewRouter(svc, lg, api.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RequestTimeout: cfg.UpstreamTimeout + 5*time.Second,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("starting employee api", "addr", cfg.ServerAddr, "upstream", cfg.UpstreamBaseURL)
	if err := api.ListenAndServe(ctx, srv, cfg.ServerShutdownTimeout, lg); err != nil {
		lg.Fatal("server failed", "error", err)
	}
}
