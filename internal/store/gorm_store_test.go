package store_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/internal/store"
	"github.com/d60-Lab/commentlog/internal/store/storetest"
	"github.com/d60-Lab/commentlog/pkg/metrics"
)

func memoryDB(t *testing.T) *gorm.DB {
	return storetest.OpenSQLite(t, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), 1)
}

// 另一个事务抢先插入同一地址时，本次尝试整体重放
func TestGormCreateCollisionReplaysAttempt(t *testing.T) {
	db := memoryDB(t)
	s := store.NewGormStore(db, 4)
	require.NoError(t, s.InitSchema())
	a := address.Derive(testNS, []byte("contended"))

	injected := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:rival_insert", func(tx *gorm.DB) {
		row, ok := tx.Statement.Dest.(*model.RecordRow)
		if !ok || injected {
			return
		}
		injected = true
		now := time.Now()
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO records (address, namespace, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			row.Address, row.Namespace, counter(99), now, now)
		if err != nil {
			_ = tx.AddError(err)
		}
	}))

	before := testutil.ToFloat64(metrics.StoreConflicts.WithLabelValues("sql"))
	attempts := 0
	err := s.Update(context.Background(), []address.Address{a}, func(tx store.Tx) error {
		attempts++
		return tx.Create(a, testNS, counter(1))
	})
	require.NoError(t, err)
	assert.True(t, injected)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StoreConflicts.WithLabelValues("sql")))

	err = s.View(context.Background(), []address.Address{a}, func(tx store.Tx) error {
		data, err := tx.Get(a)
		require.NoError(t, err)
		assert.Equal(t, counter(1), data)
		return nil
	})
	require.NoError(t, err)
}

// 声明的记录按地址顺序读取（postgres 下即加锁顺序）
func TestGormLoadsInAddressOrder(t *testing.T) {
	db := memoryDB(t)
	s := store.NewGormStore(db, 4)
	require.NoError(t, s.InitSchema())

	var mu sync.Mutex
	var queries []string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		mu.Lock()
		defer mu.Unlock()
		queries = append(queries, tx.Statement.SQL.String())
	}))

	x := address.Derive(testNS, []byte("x"))
	y := address.Derive(testNS, []byte("y"))
	err := s.Update(context.Background(), []address.Address{y, x}, func(tx store.Tx) error {
		if err := tx.Create(x, testNS, counter(1)); err != nil {
			return err
		}
		return tx.Create(y, testNS, counter(2))
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, queries)
	for _, q := range queries {
		if strings.Contains(q, "IN") {
			assert.Contains(t, q, "ORDER BY")
		}
	}
}

// 多连接文件库上并发首次创建同一地址：只有一个成功
func TestGormConcurrentCreateOnSharedFile(t *testing.T) {
	s := storetest.NewSQLFile(t, 8)
	a := address.Derive(testNS, []byte("first"))

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Update(context.Background(), []address.Address{a}, func(tx store.Tx) error {
				return tx.Create(a, testNS, counter(uint64(i)))
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, store.ErrExists)
	}
	assert.Equal(t, 1, created)
}
