package store

import (
	"bytes"
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/metrics"
)

const (
	recordKeyPrefix    = "rec:"
	namespaceKeyPrefix = "ns:"

	fieldNamespace = "ns"
	fieldData      = "data"
)

func recordKey(a address.Address) string { return recordKeyPrefix + a.String() }

func namespaceKey(ns string) string { return namespaceKeyPrefix + ns }

// RedisStore keeps each record in a hash {ns, data} and indexes addresses per
// namespace in a set. Update uses WATCH/MULTI and re-runs the whole attempt
// when another client touched a declared record first.
type RedisStore struct {
	rdb        *redis.Client
	maxRetries int
}

func NewRedisStore(rdb *redis.Client, maxRetries int) *RedisStore {
	if maxRetries <= 0 {
		maxRetries = 8
	}
	return &RedisStore{rdb: rdb, maxRetries: maxRetries}
}

func (s *RedisStore) Update(ctx context.Context, addrs []address.Address, fn func(tx Tx) error) error {
	addrs = dedupe(addrs)
	watched := make([]string, len(addrs))
	for i, a := range addrs {
		watched[i] = recordKey(a)
	}

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(rtx *redis.Tx) error {
			tx := newBufferedTx(addrs, false)
			if err := s.load(ctx, rtx, addrs, tx); err != nil {
				return err
			}
			if err := fn(tx); err != nil {
				return err
			}
			pending := tx.writes()
			if len(pending) == 0 {
				return nil
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for _, w := range pending {
					applyRedisWrite(ctx, pipe, w)
				}
				return nil
			})
			return err
		}, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			metrics.StoreConflicts.WithLabelValues("redis").Inc()
			continue
		}
		return err
	}
	return ErrConflict
}

func applyRedisWrite(ctx context.Context, pipe redis.Pipeliner, w write) {
	key := recordKey(w.addr)
	switch w.op {
	case opCreate, opPut:
		pipe.HSet(ctx, key, fieldNamespace, w.namespace, fieldData, w.data)
		pipe.SAdd(ctx, namespaceKey(w.namespace), w.addr.String())
	case opDelete:
		pipe.Del(ctx, key)
		pipe.SRem(ctx, namespaceKey(w.namespace), w.addr.String())
	}
}

func (s *RedisStore) View(ctx context.Context, addrs []address.Address, fn func(tx Tx) error) error {
	addrs = dedupe(addrs)
	tx := newBufferedTx(addrs, true)
	if err := s.load(ctx, s.rdb, addrs, tx); err != nil {
		return err
	}
	return fn(tx)
}

func (s *RedisStore) load(ctx context.Context, c redis.Cmdable, addrs []address.Address, tx *bufferedTx) error {
	if len(addrs) == 0 {
		return nil
	}
	cmds := make([]*redis.SliceCmd, len(addrs))
	_, err := c.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, a := range addrs {
			cmds[i] = pipe.HMGet(ctx, recordKey(a), fieldNamespace, fieldData)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "redis store: load records")
	}
	for i, cmd := range cmds {
		vals := cmd.Val()
		if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
			continue
		}
		ns, _ := vals[0].(string)
		data, _ := vals[1].(string)
		tx.load(addrs[i], ns, []byte(data))
	}
	return nil
}

func (s *RedisStore) Scan(ctx context.Context, namespace string) ([]Entry, error) {
	members, err := s.rdb.SMembers(ctx, namespaceKey(namespace)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "redis store: members of %s", namespace)
	}
	addrs := make([]address.Address, 0, len(members))
	for _, m := range members {
		a, err := address.Parse(m)
		if err != nil {
			return nil, errors.Wrapf(err, "redis store: bad member in %s", namespace)
		}
		addrs = append(addrs, a)
	}
	tx := newBufferedTx(addrs, true)
	if err := s.load(ctx, s.rdb, addrs, tx); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(addrs))
	for _, a := range addrs {
		sl := tx.slots[a]
		if !sl.exists || sl.namespace != namespace {
			continue
		}
		out = append(out, Entry{Address: a, Data: sl.data})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Address[:], out[j].Address[:]) < 0
	})
	return out, nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
