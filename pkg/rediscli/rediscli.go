// Package rediscli 初始化 Redis 客户端
package rediscli

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/pkg/logger"
)

// New 创建客户端并 Ping 确认可用
func New(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	rdb.AddHook(slowHook{threshold: 50 * time.Millisecond})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// slowHook 记录慢命令与慢事务
type slowHook struct {
	threshold time.Duration
}

func (h slowHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			logger.Error("redis dial failed", zap.String("addr", addr), zap.Error(err))
		}
		return conn, err
	}
}

func (h slowHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, redis.TxFailedErr) {
			logger.Error("redis command failed", zap.String("cmd", cmd.Name()), zap.Error(err))
		}
		if d := time.Since(start); d > h.threshold {
			logger.Warn("redis slow command", zap.String("cmd", cmd.Name()), zap.Duration("elapsed", d))
		}
		return err
	}
}

func (h slowHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if d := time.Since(start); d > h.threshold {
			logger.Warn("redis slow pipeline", zap.Int("cmds", len(cmds)), zap.Duration("elapsed", d))
		}
		return err
	}
}
