package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/internal/api"
	"github.com/d60-Lab/commentlog/internal/api/handler"
	"github.com/d60-Lab/commentlog/internal/api/middleware"
	"github.com/d60-Lab/commentlog/internal/events"
	"github.com/d60-Lab/commentlog/internal/service"
	"github.com/d60-Lab/commentlog/internal/store"
	"github.com/d60-Lab/commentlog/pkg/auth"
	"github.com/d60-Lab/commentlog/pkg/logger"
	"github.com/d60-Lab/commentlog/pkg/tracing"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			AttachStacktrace: true,
		}); err != nil {
			return err
		}
		defer middleware.FlushSentry()
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// 领域事件异步投递
	producer, err := events.NewProducer(cfg.Kafka)
	if err != nil {
		return err
	}
	defer producer.Close()
	dispatcher := events.NewDispatcher(producer, cfg.Kafka.QueueSize)
	stopDispatcher := dispatcher.Start(cfg.Kafka.Workers)

	emit := service.WithEmitter(dispatcher)
	wallet := service.NewWallet(st, emit)
	h := handler.New(
		service.NewPostService(st, emit),
		service.NewLikeService(st, emit),
		service.NewTipService(st, wallet, emit),
		wallet,
		service.NewRelationshipService(st, emit),
		service.NewProfileService(st),
	)
	signer := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(cfg, h, signer),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server starting", zap.String("addr", cfg.Server.Addr), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出：先停 HTTP，再排空事件队列
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown failed", zap.Error(err))
		}
		if err := stopDispatcher(shutdownCtx); err != nil {
			logger.Warn("event queue not drained", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
