package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stonepay_admin/config"
	"stonepay_admin/internal/app"
	"stonepay_admin/internal/console"
	"stonepay_admin/pkg/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("STONEPAY_CONFIG"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseLog := logger.NewQuietLogger(os.Stdout, "[StonePay]")
	a, err := app.Build(ctx, cfg, baseLog)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	srv, err := console.NewServer(console.Deps{
		Session:      a.Session,
		Client:       a.Client,
		Orders:       a.Orders,
		Products:     a.Products,
		Categories:   a.Categories,
		Users:        a.Users,
		Dashboard:    a.Dashboard,
		Uploader:     a.Uploader,
		Logger:       baseLog.WithPrefix("[Console]"),
		ItemsPerPage: cfg.Table.ItemsPerPage,
		ChartDays:    cfg.Dashboard.Days,
		CookieSecure: cfg.Server.CookieSecure,
	})
	if err != nil {
		log.Fatalf("Failed to build console: %v", err)
	}

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		log.Fatalf("Console stopped: %v", err)
	}
	baseLog.Log("Dispatched %d, failed %d, stale %d", a.Metrics.Dispatched.Load(), a.Metrics.Failed.Load(), a.Metrics.Stale.Load())
}
