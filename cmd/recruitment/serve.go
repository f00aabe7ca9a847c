package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"jobmate/recruitment-service/internal/candidate"
	"jobmate/recruitment-service/internal/config"
	"jobmate/recruitment-service/internal/db"
	"jobmate/recruitment-service/internal/grpcserver"
	"jobmate/recruitment-service/internal/httpapi"
	"jobmate/recruitment-service/internal/legacy"
	"jobmate/recruitment-service/internal/logger"
	"jobmate/recruitment-service/internal/stats"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String(logger.FieldService, httpapi.ServiceName))

	// ── Database ────────────────────────────────────────────────────────────
	conn, closeDB, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer closeDB()
	log.Info("database connected", zap.String("driver", cfg.DBDriver))

	// ── Legacy sync ─────────────────────────────────────────────────────────
	var syncer candidate.Syncer = legacy.Nop{}
	if cfg.LegacyEnabled() {
		syncer = legacy.NewClient(cfg.Legacy(), log)
	} else {
		log.Warn("LEGACY_API_URL not set, legacy sync disabled")
	}

	// ── Redis ───────────────────────────────────────────────────────────────
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	var events candidate.Publisher = candidate.NopPublisher{}
	if rdb != nil {
		defer rdb.Close()
		events = candidate.NewRedisPublisher(rdb)
		log.Info("redis connected")
	} else {
		log.Warn("REDIS_URL not set, events and stats snapshots disabled")
	}

	svc := candidate.NewService(candidate.NewStore(conn), syncer, events, nil, log)

	// ── Stats scheduler ─────────────────────────────────────────────────────
	if rdb != nil {
		sched := stats.New(svc, stats.NewRedisSink(rdb), cfg.StatsSchedule, log)
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		defer sched.Stop()
	}

	// ── Servers ─────────────────────────────────────────────────────────────
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(svc, version, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	var grpcSrv *grpc.Server
	var grpcLis net.Listener
	if cfg.GRPCPort != "" {
		grpcLis, err = net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		grpcSrv = grpcserver.New(svc, log)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http listening", zap.String(logger.FieldAddress, httpSrv.Addr), zap.String("version", version))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcSrv != nil {
		g.Go(func() error {
			log.Info("grpc listening", zap.String(logger.FieldAddress, grpcLis.Addr().String()))
			if err := grpcSrv.Serve(grpcLis); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	// ── Graceful shutdown ───────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if grpcSrv != nil {
			grpcSrv.GracefulStop()
		}
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("stopped")
	return nil
}
