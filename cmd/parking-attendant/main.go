package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"parking-attendant/internal/config"
	"parking-attendant/internal/logging"
	"parking-attendant/internal/parking"
	"parking-attendant/internal/server"
)

var (
	mode = flag.String("mode", "", "Mode to run: cli, server, or both (overrides MODE)")
	port = flag.String("port", "", "Port for HTTP server (overrides PORT)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Printf("parking-attendant: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *port != "" {
		cfg.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetryProvider, err := parking.NewTelemetryProvider(ctx, parking.TelemetryConfig{
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer shutdownTelemetry(telemetryProvider)

	logging.Init(cfg.OTelServiceName, cfg.Environment, os.Stderr)

	facility, err := openFacility(ctx, cfg, telemetryProvider)
	if err != nil {
		return fmt.Errorf("open facility: %w", err)
	}
	defer facility.Close()

	logging.Info(ctx, "facility ready", "attendant", cfg.AttendantID, "lots", len(cfg.Lots), "mode", cfg.Mode)

	switch cfg.Mode {
	case "cli":
		runCLI(ctx, telemetryProvider, facility)
	case "server":
		err = runServer(ctx, cfg, telemetryProvider, facility)
	case "both":
		err = runBoth(ctx, cfg, telemetryProvider, facility)
	default:
		err = fmt.Errorf("invalid mode %q: must be cli, server, or both", cfg.Mode)
	}

	if err != nil {
		logging.Error(ctx, "exited with error", "error", err)
	}
	return err
}

func openFacility(ctx context.Context, cfg *config.Config, telemetryProvider *parking.TelemetryProvider) (*parking.Facility, error) {
	specs := make([]parking.LotSpec, len(cfg.Lots))
	for i, lot := range cfg.Lots {
		specs[i] = parking.LotSpec{Name: lot.Name, Capacity: lot.Capacity}
	}

	facility := parking.NewFacility(telemetryProvider)
	if _, err := facility.Open(ctx, cfg.AttendantID, specs...); err != nil {
		return nil, err
	}
	return facility, nil
}

func runCLI(ctx context.Context, telemetryProvider *parking.TelemetryProvider, facility *parking.Facility) {
	shell := parking.NewShell(os.Stdin, os.Stdout, telemetryProvider, facility)
	shell.Run(ctx)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *server.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runServer(ctx context.Context, cfg *config.Config, telemetryProvider *parking.TelemetryProvider, facility *parking.Facility) error {
	srv := server.NewServer(cfg.Port, cfg.OTelServiceName, telemetryProvider, facility)
	return serve(ctx, srv)
}

// runBoth serves HTTP while the shell reads stdin, both over one facility.
// The shell reaching EOF stops the server; a signal stops the server without
// waiting on stdin.
func runBoth(ctx context.Context, cfg *config.Config, telemetryProvider *parking.TelemetryProvider, facility *parking.Facility) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := server.NewServer(cfg.Port, cfg.OTelServiceName, telemetryProvider, facility)

	go func() {
		runCLI(ctx, telemetryProvider, facility)
		logging.Info(ctx, "CLI exited")
		cancel()
	}()

	return serve(ctx, srv)
}

func shutdownTelemetry(telemetryProvider *parking.TelemetryProvider) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down telemetry: %v", err)
	}
}
