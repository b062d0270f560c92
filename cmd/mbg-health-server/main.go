package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/config"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/grpcapi"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/httpapi"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/logger"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mbg-health-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode, cfg.LogRedaction)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Services
	opts := []service.Option{service.WithLogger(log), service.WithMetrics(m)}
	directory := service.NewDirectory(st, opts...)
	screenings := service.NewScreeningRecorder(st, service.NewClearanceIssuer(opts...), opts...)
	validator := service.NewValidator(st, opts...)
	checkpoints := service.NewCheckpointRecorder(st, opts...)
	revoker := service.NewRevocationAuthority(st, opts...)
	audit := service.NewAuditLog(st, opts...)

	sweeper := service.NewExpirySweeper(st, cfg.ExpirySweepInterval, opts...)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:      log,
		Addr:        cfg.HTTPAddr,
		Metrics:     m,
		Gatherer:    reg,
		Directory:   directory,
		Screenings:  screenings,
		Validator:   validator,
		Checkpoints: checkpoints,
		Revoker:     revoker,
		Audit:       audit,
	})

	var grpcSrv *grpcapi.Server
	var grpcLis net.Listener
	if cfg.GRPCAddr != "" {
		grpcLis, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen grpc on %s: %w", cfg.GRPCAddr, err)
		}
		grpcSrv = grpcapi.NewServer(grpcapi.Dependencies{
			Logger:      log,
			Validator:   validator,
			Revoker:     revoker,
			Checkpoints: checkpoints,
		})
	} else {
		log.Info("grpc disabled")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http listening", "addr", cfg.HTTPAddr, "env", cfg.Env, "store", cfg.Store)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcSrv != nil {
		g.Go(func() error {
			return grpcSrv.Serve(gctx, grpcLis)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	return nil
}
