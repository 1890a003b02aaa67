package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"employee-api/internal/api"
	"employee-api/internal/config"
	"employee-api/internal/logger"
	"employee-api/internal/upstream/upstreamtest"
)

func main() {
	var (
		rateLimit  = flag.Int("rate-limit", 0, "max requests per window before answering 429 (0 = unlimited)")
		rateWindow = flag.Duration("rate-window", 30*time.Second, "rate limit window")
		randSeed   = flag.Int64("rand-seed", time.Now().UnixNano(), "seed for generated records")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	var opts []upstreamtest.Option
	if *rateLimit > 0 {
		opts = append(opts, upstreamtest.WithRateLimit(*rateLimit, *rateWindow))
	}
	fake := upstreamtest.New(opts...)
	fake.Seed(cfg.MockUpstreamSeed, rand.New(rand.NewSource(*randSeed)))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount(api.BasePath, fake)

	srv := &http.Server{Addr: cfg.MockUpstreamAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("mock upstream ready", "addr", cfg.MockUpstreamAddr, "records", cfg.MockUpstreamSeed, "rate_limit", *rateLimit)
	if err := api.ListenAndServe(ctx, srv, cfg.ServerShutdownTimeout, lg); err != nil {
		lg.Fatal("mock upstream failed", "error", err)
	}
}
