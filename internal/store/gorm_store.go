package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/internal/model"
	"github.com/d60-Lab/commentlog/pkg/metrics"
)

// GormStore keeps records in a single `records` table. Declared rows are
// locked FOR UPDATE on postgres; sqlite serialises writers on its own.
type GormStore struct {
	db         *gorm.DB
	maxRetries int
}

func NewGormStore(db *gorm.DB, maxRetries int) *GormStore {
	if maxRetries <= 0 {
		maxRetries = 8
	}
	return &GormStore{db: db, maxRetries: maxRetries}
}

// InitSchema 建表
func (s *GormStore) InitSchema() error {
	if err := s.db.AutoMigrate(&model.RecordRow{}); err != nil {
		return errors.Wrap(err, "gorm store: migrate records table")
	}
	return nil
}

// errRetry marks a duplicate key hit while committing: a concurrent
// transaction created one of our records first, so the attempt is replayed.
var errRetry = errors.New("gorm store: concurrent create")

func (s *GormStore) Update(ctx context.Context, addrs []address.Address, fn func(tx Tx) error) error {
	addrs = dedupe(addrs)
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
			tx := newBufferedTx(addrs, false)
			if err := s.load(db, addrs, tx, true); err != nil {
				return err
			}
			if err := fn(tx); err != nil {
				return err
			}
			for _, w := range tx.writes() {
				if err := applyGormWrite(db, w); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, errRetry) {
			metrics.StoreConflicts.WithLabelValues("sql").Inc()
			continue
		}
		return err
	}
	return ErrConflict
}

func applyGormWrite(db *gorm.DB, w write) error {
	key := w.addr.String()
	switch w.op {
	case opCreate:
		row := &model.RecordRow{Address: key, Namespace: w.namespace, Data: w.data}
		if err := db.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errRetry
			}
			return errors.Wrapf(err, "gorm store: create %s", key)
		}
	case opPut:
		err := db.Model(&model.RecordRow{}).
			Where("address = ?", key).
			Updates(map[string]any{"namespace": w.namespace, "data": w.data, "updated_at": time.Now()}).Error
		if err != nil {
			return errors.Wrapf(err, "gorm store: update %s", key)
		}
	case opDelete:
		if err := db.Where("address = ?", key).Delete(&model.RecordRow{}).Error; err != nil {
			return errors.Wrapf(err, "gorm store: delete %s", key)
		}
	}
	return nil
}

func (s *GormStore) View(ctx context.Context, addrs []address.Address, fn func(tx Tx) error) error {
	addrs = dedupe(addrs)
	tx := newBufferedTx(addrs, true)
	if err := s.load(s.db.WithContext(ctx), addrs, tx, false); err != nil {
		return err
	}
	return fn(tx)
}

func (s *GormStore) load(db *gorm.DB, addrs []address.Address, tx *bufferedTx, lock bool) error {
	if len(addrs) == 0 {
		return nil
	}
	// 固定加锁顺序，避免两个事务交叉等待
	q := db.Where("address IN ?", keys(addrs)).Order("address")
	if lock && db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []model.RecordRow
	if err := q.Find(&rows).Error; err != nil {
		return errors.Wrap(err, "gorm store: load records")
	}
	for _, r := range rows {
		a, err := address.Parse(r.Address)
		if err != nil {
			return errors.Wrapf(err, "gorm store: bad address %q", r.Address)
		}
		tx.load(a, r.Namespace, r.Data)
	}
	return nil
}

func (s *GormStore) Scan(ctx context.Context, namespace string) ([]Entry, error) {
	var rows []model.RecordRow
	if err := s.db.WithContext(ctx).Where("namespace = ?", namespace).Order("address").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "gorm store: scan %s", namespace)
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		a, err := address.Parse(r.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "gorm store: bad address %q", r.Address)
		}
		out = append(out, Entry{Address: a, Data: r.Data})
	}
	return out, nil
}

// Close 关闭数据库连接
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
