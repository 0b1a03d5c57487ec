package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"PnLBoard/internal/aggregator"
	"PnLBoard/internal/config"
	"PnLBoard/internal/loader"
	"PnLBoard/internal/logger"
	"PnLBoard/internal/server"
	"PnLBoard/internal/source"
)

func main() {
	cmd := &cli.Command{
		Name:  "dashboard",
		Usage: "P&L dashboard over a published trading sheet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the dashboard HTTP server",
				Action: runServe,
			},
			{
				Name:   "summary",
				Usage:  "fetch the sheet once and print the summary metrics",
				Action: runSummary,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cli.Command) (*config.Config, *loader.Loader, *logger.Logger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config validation: %w", err)
	}

	log, err := logger.NewLogger()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	fetcher := source.NewSheetFetcher(cfg.Source.SheetURL, cfg.Proxy)
	ld := loader.NewLoader(fetcher, cfg.Source.ReferenceYear, log)
	return cfg, ld, log, nil
}

func runServe(_ context.Context, cmd *cli.Command) error {
	cfg, ld, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cache := loader.NewCache(cfg.Cache.TTL.Std())
	srv := server.New(cfg, ld, cache, log)

	httpSrv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("dashboard listening",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.Duration("cache_ttl", cfg.Cache.TTL.Std()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("dashboard stopped")
	return nil
}

func runSummary(ctx context.Context, cmd *cli.Command) error {
	cfg, ld, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ds, err := ld.Load(ctx)
	if err != nil {
		return err
	}
	metrics, err := aggregator.Summarize(ds)
	if err != nil {
		return err
	}

	f := server.NewFormatter(cfg.Server.Currency)
	fmt.Printf("Records:          %d\n", len(ds))
	fmt.Printf("Total P&L:        %s\n", f.Display(metrics.TotalPnL))
	fmt.Printf("Current Balance:  %s\n", f.Display(metrics.CurrentBalance))
	fmt.Printf("Best Day:         %s (%s)\n", f.Display(metrics.BestDay.GainLoss), metrics.BestDay.Date.Format("02 Jan"))
	fmt.Printf("Worst Day:        %s (%s)\n", f.Display(metrics.WorstDay.GainLoss), metrics.WorstDay.Date.Format("02 Jan"))
	fmt.Printf("Total In / Out:   %s / %s\n", f.Display(metrics.TotalIn), f.Display(metrics.TotalOut))
	return nil
}
