// Command pecan runs the judge HTTP service: it prewarms a sandbox pool,
// exposes /v1/judge and /v1/manager over gin, and serves Prometheus metrics
// until it receives a shutdown signal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"pecan/internal/config"
	"pecan/internal/httpapi"
	"pecan/internal/logging"
	"pecan/internal/metrics"
	"pecan/internal/sandboxpool"
	"pecan/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}

	logging.Init()
	defer logging.Sync()
	log := logging.S()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	tool := buildTool(cfg.Service.SandboxType)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := service.New(ctx, service.Spec{
		EnableBgWorkerLoop:      cfg.Service.EnableBgWorkerLoop,
		MaxQueueSize:            cfg.Service.MaxQueueSize,
		MaxConcurrentExecutions: cfg.Service.MaxConcurrentExecutions,
		MaxPrewarmedSandboxes:   cfg.Service.MaxPrewarmedSandboxes,
		Tool:                    tool,
	})
	if err != nil {
		log.Fatalw("failed to start service", "error", err)
	}

	metrics.Get().SetBuildInfo("dev", "unknown", "unknown")

	collector := metrics.NewMetricsCollector(10*time.Second, svc)
	collector.Start()
	defer collector.Stop()

	rl := httpapi.NewIPRateLimiter(rate.Limit(1000.0/60.0), 50)
	router := httpapi.NewRouter(svc, rl)

	log.Infow("pecan judge service starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"sandbox_type", cfg.Service.SandboxType,
		"max_concurrent_executions", cfg.Service.MaxConcurrentExecutions,
	)

	if err := httpapi.Serve(ctx, cfg.Server.Host, cfg.Server.Port, router, svc); err != nil {
		log.Fatalw("server exited with error", "error", err)
	}
}

func buildTool(t config.SandboxType) sandboxpool.Tool {
	switch t {
	case config.SandboxIsolateCg:
		return sandboxpool.NewCgroupTool()
	default:
		return sandboxpool.NewPlainTool()
	}
}
