package store

import (
	"context"
	"fmt"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/pkg/database"
	"github.com/d60-Lab/commentlog/pkg/rediscli"
)

// Open builds the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		rdb, err := rediscli.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisStore(rdb, cfg.Store.MaxRetries), nil
	case "sql":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s := NewGormStore(db, cfg.Store.MaxRetries)
		if err := s.InitSchema(); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
