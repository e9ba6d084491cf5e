// Package storetest builds throwaway record stores for tests.
package storetest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/commentlog/internal/store"
)

// NewRedis returns a RedisStore backed by an in-process miniredis.
func NewRedis(tb testing.TB) *store.RedisStore {
	tb.Helper()
	mr := miniredis.RunT(tb)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := store.NewRedisStore(rdb, 8)
	tb.Cleanup(func() { _ = s.Close() })
	return s
}

// OpenSQLite opens a silent gorm handle with duplicate-key translation on.
func OpenSQLite(tb testing.TB, dsn string, maxOpenConns int) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	return db
}

func newGormStore(tb testing.TB, db *gorm.DB) *store.GormStore {
	tb.Helper()
	s := store.NewGormStore(db, 8)
	if err := s.InitSchema(); err != nil {
		tb.Fatalf("init schema: %v", err)
	}
	tb.Cleanup(func() { _ = s.Close() })
	return s
}

// NewSQL returns a GormStore on a private in-memory sqlite database.
func NewSQL(tb testing.TB) *store.GormStore {
	tb.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return newGormStore(tb, OpenSQLite(tb, dsn, 1))
}

// NewSQLFile returns a GormStore on a file-backed sqlite database that is
// shared by several connections. Writers take the lock at BEGIN and wait
// on each other through the busy timeout.
func NewSQLFile(tb testing.TB, conns int) *store.GormStore {
	tb.Helper()
	dsn := filepath.Join(tb.TempDir(), "records.db") + "?_journal_mode=WAL&_busy_timeout=10000&_txlock=immediate"
	return newGormStore(tb, OpenSQLite(tb, dsn, conns))
}

// Backends lists the store constructors every contract test runs against.
func Backends() map[string]func(testing.TB) store.Store {
	return map[string]func(testing.TB) store.Store{
		"redis":    func(tb testing.TB) store.Store { return NewRedis(tb) },
		"sql":      func(tb testing.TB) store.Store { return NewSQL(tb) },
		"sql-file": func(tb testing.TB) store.Store { return NewSQLFile(tb, 8) },
	}
}
